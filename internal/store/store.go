package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fiscaldata/mts-tracker/internal/common"
)

// Store is a keyed blob store for processed artifacts. Keys are statement ids
// (plus the "_departments" suffix for department artifacts); values are JSON.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Exists(ctx context.Context, key string) (bool, error)
	Close() error
}

// New builds the backend named by cfg.Storage.Driver.
func New(cfg *common.Config, logger *slog.Logger) (Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch cfg.Storage.Driver {
	case "fs":
		return NewFSStore(cfg.Storage.ProcessedDir, logger)
	case "sqlite":
		return NewSQLiteStore(cfg.Storage.SQLitePath, logger)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Storage.Driver)
	}
}
