package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/LeJamon/goRentald/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestOpenDatabaseBackends(t *testing.T) {
	for _, backend := range []string{BackendMemory, BackendPebble, BackendLevelDB} {
		t.Run(backend, func(t *testing.T) {
			cfg := config.DatabaseConfig{
				Backend:   backend,
				Path:      filepath.Join(t.TempDir(), "state"),
				CacheSize: 1 << 20,
			}
			db, err := OpenDatabase(cfg, zaptest.NewLogger(t))
			require.NoError(t, err)
			defer db.Close()

			ctx := context.Background()
			require.NoError(t, db.Write(ctx, []byte("k"), []byte("v")))
			v, err := db.Read(ctx, []byte("k"))
			require.NoError(t, err)
			assert.Equal(t, []byte("v"), v)
		})
	}
}

func TestOpenDatabaseErrors(t *testing.T) {
	_, err := OpenDatabase(config.DatabaseConfig{Backend: "rocksdb"}, nil)
	assert.ErrorIs(t, err, ErrUnknownBackend)

	_, err = OpenDatabase(config.DatabaseConfig{Backend: BackendPebble}, nil)
	assert.ErrorIs(t, err, ErrMissingPath)
}
