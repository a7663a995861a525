package main

import (
	"context"
	"fmt"

	"statutes/internal/config"
	"statutes/internal/database"
	"statutes/internal/logging"
	"statutes/internal/repository"
	"statutes/internal/repository/postgres"
	"statutes/internal/repository/postgrest"
)

// openStore builds the configured backend. The returned close function
// releases its resources.
func openStore(ctx context.Context, cfg *config.AppConfig, logger *logging.Logger) (repository.StatuteRepository, func() error, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		// Initialize PostgreSQL connection (with pooling via database/sql)
		db, err := database.Open(cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}

		vctx, cancel := context.WithTimeout(ctx, cfg.Store.Timeout())
		defer cancel()
		// An unreachable server or a mismatched table is logged; browse
		// requests then surface the store error.
		if err := db.PingContext(vctx); err != nil {
			logger.Error("store", "store_ping_failed", err, map[string]any{"driver": cfg.Store.Driver})
		} else {
			_ = database.VerifySchema(vctx, db, cfg.Store.Table, cfg.Store.JurisdictionField, logger)
		}

		return postgres.NewStatutePostgres(db, cfg.Store.Table, cfg.Store.JurisdictionField), db.Close, nil

	case config.DriverPostgREST:
		client, err := postgrest.New(postgrest.Options{
			URL:               cfg.Store.Supabase.URL,
			Key:               cfg.Store.Supabase.Key,
			Schema:            cfg.Store.Supabase.Schema,
			Table:             cfg.Store.Table,
			JurisdictionField: cfg.Store.JurisdictionField,
			BatchSize:         cfg.Store.Supabase.BatchSize,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("create postgrest client: %w", err)
		}

		pctx, cancel := context.WithTimeout(ctx, cfg.Store.Timeout())
		defer cancel()
		if err := client.Ping(pctx); err != nil {
			logger.Error("store", "store_ping_failed", err, map[string]any{"driver": cfg.Store.Driver})
		}
		return client, func() error { return nil }, nil
	}
	return nil, nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
}
