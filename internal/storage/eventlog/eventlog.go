// Package eventlog keeps a relational audit trail of committed marketplace
// events. Each event is stored as an LZ4-compressed JSON payload indexed by
// offer hash, in SQLite or PostgreSQL.
package eventlog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/LeJamon/goRentald/internal/config"
	"github.com/LeJamon/goRentald/internal/core/rental"
	"github.com/LeJamon/goRentald/internal/core/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultTimeout = 5 * time.Second
	// MaxLimit bounds a single query.
	MaxLimit = 1000
)

// Record is a stored event.
type Record struct {
	ID    uuid.UUID    `json:"id"`
	Seq   int64        `json:"seq"`
	Event rental.Event `json:"event"`
}

// Log is an event sink backed by a SQL database.
type Log struct {
	mu      sync.RWMutex
	db      *sql.DB
	dialect dialect
	logger  *zap.Logger
	timeout time.Duration
}

var _ rental.EventSink = (*Log)(nil)

// Open connects to the database named by cfg and creates the schema.
func Open(ctx context.Context, cfg config.EventsConfig, logger *zap.Logger) (*Log, error) {
	d, err := dialectFor(cfg.Driver)
	if err != nil {
		return nil, newError(ErrorTypeConfiguration, "open", "invalid driver", err)
	}
	if cfg.DSN == "" {
		return nil, newError(ErrorTypeConfiguration, "open", "invalid dsn", ErrMissingDSN)
	}

	db, err := sql.Open(d.driver, cfg.DSN)
	if err != nil {
		return nil, newError(ErrorTypeConnection, "open", "failed to open database connection", err)
	}
	db.SetMaxOpenConns(d.maxConns)

	pingCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, newError(ErrorTypeConnection, "open", "failed to ping database", err)
	}

	l := New(db, d.name, logger)
	if err := l.Init(ctx); err != nil {
		db.Close()
		return nil, err
	}
	l.logger.Info("event log opened", zap.String("driver", d.name))
	return l, nil
}

// New wraps an open database. driver is "sqlite" or "postgres" and selects
// the SQL dialect; an unknown driver falls back to sqlite.
func New(db *sql.DB, driver string, logger *zap.Logger) *Log {
	d, err := dialectFor(driver)
	if err != nil {
		d = dialects["sqlite"]
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Log{db: db, dialect: d, logger: logger.Named("eventlog"), timeout: defaultTimeout}
}

// Init creates the events table and its index if missing.
func (l *Log) Init(ctx context.Context) error {
	db, err := l.conn()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()
	for _, stmt := range l.dialect.schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return newError(ErrorTypeSchema, "init", "failed to initialize schema", err)
		}
	}
	return nil
}

// Publish stores events in one transaction, in order.
func (l *Log) Publish(ctx context.Context, events []rental.Event) error {
	if len(events) == 0 {
		return nil
	}
	db, err := l.conn()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return newError(ErrorTypeConnection, "publish", "failed to begin transaction", err)
	}
	defer tx.Rollback()

	insert := l.dialect.bind(`INSERT INTO rental_events (id, offer_hash, event_type, ts, payload) VALUES (?, ?, ?, ?, ?)`)
	for _, ev := range events {
		payload, err := encodeEvent(ev)
		if err != nil {
			return newError(ErrorTypeData, "publish", "failed to encode event", err)
		}
		id, err := uuid.NewV7()
		if err != nil {
			return newError(ErrorTypeData, "publish", "failed to generate id", err)
		}
		if _, err := tx.ExecContext(ctx, insert, id.String(), offerHashArg(ev.OfferHash), string(ev.Type), int64(ev.Timestamp), payload); err != nil {
			return newError(ErrorTypeQuery, "publish", "failed to insert event", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return newError(ErrorTypeQuery, "publish", "failed to commit events", err)
	}
	l.logger.Debug("events stored", zap.Int("count", len(events)))
	return nil
}

// ByOffer returns up to limit events of the offer, oldest first, starting
// after sequence number after.
func (l *Log) ByOffer(ctx context.Context, hash types.Hash, after int64, limit int) ([]Record, error) {
	if limit <= 0 || limit > MaxLimit {
		return nil, ErrInvalidLimit
	}
	query := l.dialect.bind(`SELECT seq, id, payload FROM rental_events WHERE offer_hash = ? AND seq > ? ORDER BY seq LIMIT ?`)
	return l.query(ctx, "by_offer", query, hash.String(), after, limit)
}

// Recent returns up to limit of the latest events, newest first.
func (l *Log) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 || limit > MaxLimit {
		return nil, ErrInvalidLimit
	}
	query := l.dialect.bind(`SELECT seq, id, payload FROM rental_events ORDER BY seq DESC LIMIT ?`)
	return l.query(ctx, "recent", query, limit)
}

func (l *Log) query(ctx context.Context, op, query string, args ...any) ([]Record, error) {
	db, err := l.conn()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, newError(ErrorTypeQuery, op, "query failed", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			rec     Record
			id      string
			payload []byte
		)
		if err := rows.Scan(&rec.Seq, &id, &payload); err != nil {
			return nil, newError(ErrorTypeQuery, op, "failed to scan row", err)
		}
		if rec.ID, err = uuid.Parse(id); err != nil {
			return nil, newError(ErrorTypeData, op, "invalid event id", err)
		}
		if rec.Event, err = decodeEvent(payload); err != nil {
			return nil, newError(ErrorTypeData, op, "failed to decode event", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, newError(ErrorTypeQuery, op, "row iteration failed", err)
	}
	return out, nil
}

// Ping checks the connection.
func (l *Log) Ping(ctx context.Context) error {
	db, err := l.conn()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return newError(ErrorTypeConnection, "ping", "database ping failed", err)
	}
	return nil
}

// Close closes the database. Further calls fail with ErrLogClosed.
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.db == nil {
		return nil
	}
	err := l.db.Close()
	l.db = nil
	if err != nil {
		return newError(ErrorTypeConnection, "close", "failed to close database connection", err)
	}
	return nil
}

func (l *Log) conn() (*sql.DB, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.db == nil {
		return nil, ErrLogClosed
	}
	return l.db, nil
}

func offerHashArg(h *types.Hash) any {
	if h == nil {
		return nil
	}
	return h.String()
}

func encodeEvent(ev rental.Event) ([]byte, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return nil, err
	}
	return compress(data)
}

func decodeEvent(payload []byte) (rental.Event, error) {
	var ev rental.Event
	data, err := decompress(payload)
	if err != nil {
		return ev, err
	}
	if err := json.Unmarshal(data, &ev); err != nil {
		return ev, fmt.Errorf("%w: %v", ErrCorruptPayload, err)
	}
	return ev, nil
}
