package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/plusk0/gamelist/internal/catalog"
	"github.com/plusk0/gamelist/internal/config"
	"github.com/plusk0/gamelist/internal/export"
	"github.com/plusk0/gamelist/internal/images"
	"github.com/plusk0/gamelist/internal/logger"
)

// application is the root context shared by the window and the CLI
// commands. It owns the store; handlers receive it explicitly.
type application struct {
	cfg      config.Config
	log      zerolog.Logger
	store    *catalog.Store
	intake   *images.Intake
	exporter *export.Exporter
}

func newApplication(cfg config.Config) (*application, error) {
	backend, err := openBackend(cfg)
	if err != nil {
		return nil, err
	}
	return newApplicationWith(cfg, backend)
}

// newApplicationWith assembles the application around an opened backend,
// closing it if the application cannot be built.
func newApplicationWith(cfg config.Config, backend catalog.Backend) (*application, error) {
	log, err := logger.NewStderr(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		backend.Close()
		return nil, err
	}
	log.Debug().Str("backend", cfg.Backend).Msg("backend opened")

	return &application{
		cfg:      cfg,
		log:      log,
		store:    catalog.Open(backend, logger.Component(log, "store")),
		intake:   images.NewIntake(cfg.ImagesDir, logger.Component(log, "images")),
		exporter: export.New(cfg.ExportFile, cfg.ExportVariable, logger.Component(log, "export")),
	}, nil
}

func openBackend(cfg config.Config) (catalog.Backend, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		b, err := catalog.OpenSQLite(cfg.SQLiteFile)
		if err != nil {
			return nil, fmt.Errorf("open sqlite backend: %w", err)
		}
		return b, nil
	default:
		return catalog.NewJSONFile(cfg.DataFile), nil
	}
}

func (a *application) Close() error {
	return a.store.Close()
}
