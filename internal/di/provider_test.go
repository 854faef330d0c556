package di

import (
	"path/filepath"
	"testing"

	"github.com/LeJamon/goRentald/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadDefaults()
	require.NoError(t, err)
	cfg.Database.Backend = "memory"
	cfg.Events.Driver = "none"
	cfg.Server.Bind = "127.0.0.1"
	cfg.Server.Port = 0
	return cfg
}

func TestProviderWithoutEventLog(t *testing.T) {
	c := New()
	p := NewProvider(c, testConfig(t), zaptest.NewLogger(t), "test")
	require.NoError(t, p.RegisterAll())
	t.Cleanup(func() { assert.NoError(t, p.Close()) })

	for _, name := range []string{ServiceConfig, ServiceLogger, ServiceDatabase, ServiceState,
		ServiceStandalone, ServiceEventLog, ServiceEngine, ServiceRPC} {
		assert.True(t, c.Has(name), name)
	}
	assert.False(t, c.Built(ServiceEngine))

	log, err := p.EventLog()
	require.NoError(t, err)
	assert.Nil(t, log)

	svc, err := p.RPCService()
	require.NoError(t, err)
	require.NotNil(t, svc)
	assert.True(t, c.Built(ServiceEngine))
	assert.True(t, c.Built(ServiceDatabase))

	engine, err := p.Engine()
	require.NoError(t, err)
	assert.NotNil(t, engine)
	assert.Same(t, svc, c.MustGet(ServiceRPC))
}

func TestProviderWithSQLiteEventLog(t *testing.T) {
	cfg := testConfig(t)
	cfg.Events.Driver = "sqlite"
	cfg.Events.DSN = filepath.Join(t.TempDir(), "nested", "events.db")

	p := NewProvider(New(), cfg, zaptest.NewLogger(t), "test")
	require.NoError(t, p.RegisterAll())

	_, err := p.RPCService()
	require.NoError(t, err)
	log, err := p.EventLog()
	require.NoError(t, err)
	require.NotNil(t, log)
	assert.FileExists(t, cfg.Events.DSN)

	require.NoError(t, p.Close())
	// Close is idempotent once the closers have run.
	require.NoError(t, p.Close())
}

func TestProviderPebbleState(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database.Backend = "pebble"
	cfg.Database.Path = filepath.Join(t.TempDir(), "state")

	p := NewProvider(New(), cfg, nil, "test")
	require.NoError(t, p.RegisterAll())
	_, err := p.Engine()
	require.NoError(t, err)
	assert.DirExists(t, cfg.Database.Path)
	require.NoError(t, p.Close())
}

func TestProviderRequiresConfig(t *testing.T) {
	p := NewProvider(New(), nil, nil, "test")
	assert.Error(t, p.RegisterAll())
}

func TestProviderBadBackend(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database.Backend = "bogus"
	p := NewProvider(New(), cfg, nil, "test")
	require.NoError(t, p.RegisterAll())
	_, err := p.Engine()
	assert.Error(t, err)
}
