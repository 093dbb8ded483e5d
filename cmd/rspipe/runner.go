package main

import (
	"fmt"

	"rspipe/internal/config"
	"rspipe/internal/logging"
	"rspipe/internal/pipeline"
	"rspipe/internal/storage"
)

// newRunner wires config, storage and logging for one command invocation.
// The returned cleanup closes the database and flushes the logger.
func newRunner() (*pipeline.Runner, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogJSON)
	if err != nil {
		return nil, nil, fmt.Errorf("build logger: %w", err)
	}

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		_ = log.Sync()
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	cleanup := func() {
		_ = db.Close()
		_ = log.Sync()
	}
	return pipeline.NewRunner(cfg, db, log), cleanup, nil
}
