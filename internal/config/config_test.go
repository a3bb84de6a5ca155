package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, Config{
		Backend:        BackendJSON,
		DataFile:       "games.json",
		SQLiteFile:     "games.db",
		ImagesDir:      "imagenes",
		ExportFile:     "games_data.py",
		ExportVariable: "games",
		LogLevel:       "info",
		LogFormat:      "console",
	}, cfg)
}

func TestLoad_FileInDir(t *testing.T) {
	dir := t.TempDir()
	yaml := "backend: sqlite\nimages_dir: covers\nlog_level: debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gamelist.yaml"), []byte(yaml), 0o644))

	cfg, err := Load("", dir)
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, "covers", cfg.ImagesDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "games.json", cfg.DataFile)
}

func TestLoad_ExplicitJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"export_file": "out.py", "export_variable": "catalog"}`), 0o644))

	cfg, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, "out.py", cfg.ExportFile)
	assert.Equal(t, "catalog", cfg.ExportVariable)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), "")
	assert.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gamelist.yaml"), []byte("data_file: from-file.json\n"), 0o644))
	t.Setenv("GAMELIST_DATA_FILE", "from-env.json")

	cfg, err := Load("", dir)
	require.NoError(t, err)
	assert.Equal(t, "from-env.json", cfg.DataFile)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("backend", func(t *testing.T) {
		t.Setenv("GAMELIST_BACKEND", "postgres")
		_, err := Load("", t.TempDir())
		assert.ErrorContains(t, err, "unknown backend")
	})
	t.Run("log level", func(t *testing.T) {
		t.Setenv("GAMELIST_LOG_LEVEL", "shouty")
		_, err := Load("", t.TempDir())
		assert.ErrorContains(t, err, "unknown log level")
	})
	t.Run("empty path", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "gamelist.yaml"), []byte("images_dir: \"\"\n"), 0o644))
		_, err := Load("", dir)
		assert.ErrorContains(t, err, "images_dir")
	})
}
