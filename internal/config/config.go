// Package config loads application settings. GAMELIST_* environment
// variables override an optional gamelist.* file, which overrides defaults.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/plusk0/gamelist/internal/logger"
)

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

const (
	configName = "gamelist"
	envPrefix  = "GAMELIST"

	keyBackend        = "backend"
	keyDataFile       = "data_file"
	keySQLiteFile     = "sqlite_file"
	keyImagesDir      = "images_dir"
	keyExportFile     = "export_file"
	keyExportVariable = "export_variable"
	keyLogLevel       = "log_level"
	keyLogFormat      = "log_format"
)

// Config is the resolved application configuration.
type Config struct {
	Backend        string
	DataFile       string
	SQLiteFile     string
	ImagesDir      string
	ExportFile     string
	ExportVariable string
	LogLevel       string
	LogFormat      string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(keyBackend, BackendJSON)
	v.SetDefault(keyDataFile, "games.json")
	v.SetDefault(keySQLiteFile, "games.db")
	v.SetDefault(keyImagesDir, "imagenes")
	v.SetDefault(keyExportFile, "games_data.py")
	v.SetDefault(keyExportVariable, "games")
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyLogFormat, logger.FormatConsole)
}

// Load resolves the configuration. If path is empty, gamelist.{yaml,json,toml}
// is looked up in dir and its absence is not an error. An explicit path must
// exist.
func Load(path, dir string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{
		Backend:        strings.ToLower(v.GetString(keyBackend)),
		DataFile:       v.GetString(keyDataFile),
		SQLiteFile:     v.GetString(keySQLiteFile),
		ImagesDir:      v.GetString(keyImagesDir),
		ExportFile:     v.GetString(keyExportFile),
		ExportVariable: v.GetString(keyExportVariable),
		LogLevel:       v.GetString(keyLogLevel),
		LogFormat:      v.GetString(keyLogFormat),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail later at first use.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("unknown backend %q (want %s or %s)", c.Backend, BackendJSON, BackendSQLite)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case logger.FormatConsole, logger.FormatJSON:
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	for key, val := range map[string]string{
		keyDataFile:       c.DataFile,
		keySQLiteFile:     c.SQLiteFile,
		keyImagesDir:      c.ImagesDir,
		keyExportFile:     c.ExportFile,
		keyExportVariable: c.ExportVariable,
	} {
		if strings.TrimSpace(val) == "" {
			return fmt.Errorf("%s must not be empty", key)
		}
	}
	return nil
}
