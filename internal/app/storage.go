package app

import (
	"context"
	"fmt"
	"time"

	"github.com/adanyl0v/go-task-manager/internal/config"
	"github.com/adanyl0v/go-task-manager/internal/storage"
	"github.com/adanyl0v/go-task-manager/internal/storage/postgres"
	"github.com/adanyl0v/go-task-manager/internal/storage/sqlite"
)

const migrateTimeout = time.Minute

var globalStore storage.Store

// MustOpenStore connects to the configured storage backend.
func MustOpenStore() {
	cfg := config.Global()

	switch cfg.StorageDriver {
	case storage.DriverPostgres:
		globalStore = postgres.New(mustConnectPostgres())
	case storage.DriverSQLite:
		store, err := sqlite.Open(context.Background(), cfg.SQLite.Path)
		if err != nil {
			globalLogger.Error().
				Err(err).
				Str("path", cfg.SQLite.Path).
				Msg("failed to open sqlite database")
			panic(err)
		}
		globalLogger.Info().
			Str("path", cfg.SQLite.Path).
			Msg("opened sqlite database")
		globalStore = store
	default:
		err := fmt.Errorf("unknown storage driver: %s", cfg.StorageDriver)
		globalLogger.Error().
			Err(err).
			Msg("failed to open store")
		panic(err)
	}
}

func MustMigrateStore() {
	ctx, cancel := context.WithTimeout(context.Background(), migrateTimeout)
	defer cancel()

	err := globalStore.Migrate(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to migrate store")
		panic(err)
	}
	globalLogger.Info().
		Str("storage_driver", config.Global().StorageDriver).
		Msg("migrated store")
}

func CloseStore() {
	if globalStore == nil {
		return
	}
	if err := globalStore.Close(); err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to close store")
		return
	}
	globalLogger.Info().Msg("closed store")
}
