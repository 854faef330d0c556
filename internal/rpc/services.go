package rpc

import (
	"context"
	"time"

	"github.com/LeJamon/goRentald/internal/core/rental"
	"github.com/LeJamon/goRentald/internal/core/types"
	"github.com/LeJamon/goRentald/internal/storage/eventlog"
)

// EventStore answers event history queries. *eventlog.Log implements it.
type EventStore interface {
	ByOffer(ctx context.Context, hash types.Hash, after int64, limit int) ([]eventlog.Record, error)
	Recent(ctx context.Context, limit int) ([]eventlog.Record, error)
	Ping(ctx context.Context) error
}

// Services are the backends RPC methods operate on.
type Services struct {
	Engine *rental.Engine

	// Events is nil when no event log is configured; the history methods
	// then report notEnabled.
	Events EventStore

	// Clock times signed request expiry; the wall clock when nil.
	Clock rental.Clock

	Version   string
	StartedAt time.Time
}
