package di

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/LeJamon/goRentald/internal/config"
	"github.com/LeJamon/goRentald/internal/core/rental"
	"github.com/LeJamon/goRentald/internal/rpc"
	"github.com/LeJamon/goRentald/internal/standalone"
	"github.com/LeJamon/goRentald/internal/storage"
	"github.com/LeJamon/goRentald/internal/storage/database"
	"github.com/LeJamon/goRentald/internal/storage/eventlog"
	"github.com/LeJamon/goRentald/internal/storage/state"
	"go.uber.org/zap"
)

// Provider configures and registers services in the container.
type Provider struct {
	container *Container
	config    *config.Config
	logger    *zap.Logger
	version   string

	mu      sync.Mutex
	closers []func() error
}

// NewProvider creates a new service provider.
func NewProvider(container *Container, cfg *config.Config, logger *zap.Logger, version string) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provider{
		container: container,
		config:    cfg,
		logger:    logger,
		version:   version,
	}
}

// RegisterAll registers all services.
func (p *Provider) RegisterAll() error {
	if p.config == nil {
		return errors.New("di: provider requires a configuration")
	}
	p.container.Register(ServiceConfig, p.config)
	p.container.Register(ServiceLogger, p.logger)

	// Register builders for lazy instantiation
	p.registerStorageBuilders()
	p.registerEngineBuilders()
	p.registerRPCBuilders()

	return nil
}

// registerStorageBuilders registers storage service builders.
func (p *Provider) registerStorageBuilders() {
	p.container.RegisterBuilder(ServiceDatabase, func(c *Container) (interface{}, error) {
		db, err := storage.OpenDatabase(p.config.Database, p.logger)
		if err != nil {
			return nil, err
		}
		p.onClose(db.Close)
		return db, nil
	})

	p.container.RegisterBuilder(ServiceState, func(c *Container) (interface{}, error) {
		db, err := c.Get(ServiceDatabase)
		if err != nil {
			return nil, err
		}
		return state.NewStoreView(db.(database.DB), state.StoreViewConfig{
			CacheEntries: p.config.Database.StateCacheEntries,
		})
	})

	// The event log is optional; a nil *eventlog.Log is registered when
	// the driver is "none".
	p.container.RegisterBuilder(ServiceEventLog, func(c *Container) (interface{}, error) {
		driver := strings.ToLower(p.config.Events.Driver)
		if driver == "" || driver == "none" {
			return (*eventlog.Log)(nil), nil
		}
		if driver == "sqlite" {
			if dir := filepath.Dir(p.config.Events.DSN); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return nil, fmt.Errorf("create event log directory: %w", err)
				}
			}
		}
		log, err := eventlog.Open(context.Background(), p.config.Events, p.logger)
		if err != nil {
			return nil, err
		}
		p.onClose(log.Close)
		return log, nil
	})
}

// registerEngineBuilders registers the marketplace engine and the
// standalone collaborators it runs against.
func (p *Provider) registerEngineBuilders() {
	p.container.RegisterBuilder(ServiceStandalone, func(c *Container) (interface{}, error) {
		return standalone.New(rental.SystemClock{}, p.config)
	})

	p.container.RegisterBuilder(ServiceEngine, func(c *Container) (interface{}, error) {
		world, err := c.Get(ServiceStandalone)
		if err != nil {
			return nil, err
		}
		store, err := c.Get(ServiceState)
		if err != nil {
			return nil, err
		}
		log, err := p.EventLog()
		if err != nil {
			return nil, err
		}

		ec := world.(*standalone.Environment).EngineConfig(store.(*state.StoreView), p.logger)
		if log != nil {
			ec.Sinks = append(ec.Sinks, log)
		}
		return rental.NewEngine(ec)
	})
}

// registerRPCBuilders registers the transport. Building it subscribes the
// WebSocket hub to engine events.
func (p *Provider) registerRPCBuilders() {
	p.container.RegisterBuilder(ServiceRPC, func(c *Container) (interface{}, error) {
		engine, err := p.Engine()
		if err != nil {
			return nil, err
		}
		log, err := p.EventLog()
		if err != nil {
			return nil, err
		}

		services := &rpc.Services{
			Engine:    engine,
			Version:   p.version,
			StartedAt: time.Now(),
		}
		if log != nil {
			services.Events = log
		}
		svc := rpc.NewService(p.config.Server, services, p.logger)
		engine.AddSink(svc.Hub())
		return svc, nil
	})
}

// Engine returns the marketplace engine from the container.
func (p *Provider) Engine() (*rental.Engine, error) {
	svc, err := p.container.Get(ServiceEngine)
	if err != nil {
		return nil, err
	}
	return svc.(*rental.Engine), nil
}

// EventLog returns the event log, nil when disabled.
func (p *Provider) EventLog() (*eventlog.Log, error) {
	svc, err := p.container.Get(ServiceEventLog)
	if err != nil {
		return nil, err
	}
	return svc.(*eventlog.Log), nil
}

// Standalone returns the in-process collaborators.
func (p *Provider) Standalone() (*standalone.Environment, error) {
	svc, err := p.container.Get(ServiceStandalone)
	if err != nil {
		return nil, err
	}
	return svc.(*standalone.Environment), nil
}

// RPCService returns the HTTP and WebSocket front.
func (p *Provider) RPCService() (*rpc.Service, error) {
	svc, err := p.container.Get(ServiceRPC)
	if err != nil {
		return nil, err
	}
	return svc.(*rpc.Service), nil
}

// GetConfig returns the configuration from the container.
func (p *Provider) GetConfig() *config.Config {
	return p.config
}

func (p *Provider) onClose(fn func() error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closers = append(p.closers, fn)
}

// Close releases everything the builders opened, newest first.
func (p *Provider) Close() error {
	p.mu.Lock()
	closers := p.closers
	p.closers = nil
	p.mu.Unlock()

	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
