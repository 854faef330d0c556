// Package storage selects and opens the key-value backend holding
// marketplace state.
package storage

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/LeJamon/goRentald/internal/config"
	"github.com/LeJamon/goRentald/internal/storage/database"
	"github.com/LeJamon/goRentald/internal/storage/database/leveldb"
	"github.com/LeJamon/goRentald/internal/storage/database/pebble"
	"go.uber.org/zap"
)

const (
	BackendPebble  = "pebble"
	BackendLevelDB = "leveldb"
	BackendMemory  = "memory"
)

var (
	ErrUnknownBackend = errors.New("unknown database backend")
	ErrMissingPath    = errors.New("database path is required")
)

// OpenDatabase opens the backend named by cfg.Backend. Disk backends create
// cfg.Path if it does not exist.
func OpenDatabase(cfg config.DatabaseConfig, logger *zap.Logger) (database.DB, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	backend := strings.ToLower(cfg.Backend)
	switch backend {
	case BackendMemory:
		logger.Warn("using in-memory database, state will not survive a restart")
		return database.NewMemoryDB(), nil
	case BackendPebble, BackendLevelDB:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}

	if cfg.Path == "" {
		return nil, ErrMissingPath
	}
	if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	var (
		db  database.DB
		err error
	)
	if backend == BackendPebble {
		db, err = pebble.Open(cfg.Path, cfg.CacheSize, logger)
	} else {
		db, err = leveldb.Open(cfg.Path, cfg.CacheSize)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s database at %s: %w", backend, cfg.Path, err)
	}
	logger.Info("database opened", zap.String("backend", backend), zap.String("path", cfg.Path))
	return db, nil
}
