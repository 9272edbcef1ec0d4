package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/fiscaldata/mts-tracker/internal/common"
)

// SQLiteStore keeps artifacts in a single blobs table. Useful when the data
// directory cannot be shared between the batch runner and the server.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewSQLiteStore(path string, logger *slog.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite store %q: %w", path, err)
	}
	// Single writer; SQLite handles its own file locking.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS artifacts (
			key        TEXT PRIMARY KEY,
			data       BLOB NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing sqlite store: %w", err)
	}
	return &SQLiteStore{db: db, logger: logger}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM artifacts WHERE key = ?`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.WrapError(common.ErrNotFound, fmt.Sprintf("artifact %q", key), nil)
	}
	if err != nil {
		return nil, fmt.Errorf("reading artifact %q: %w", key, err)
	}
	return data, nil
}

func (s *SQLiteStore) Put(ctx context.Context, key string, data []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO artifacts (key, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		key, data, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("writing artifact %q: %w", key, err)
	}
	s.logger.Debug("store.put", "key", key, "bytes", len(data))
	return nil
}

func (s *SQLiteStore) Exists(ctx context.Context, key string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM artifacts WHERE key = ?`, key).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
