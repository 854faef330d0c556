package eventlog

import (
	"fmt"
	"strings"

	_ "github.com/lib/pq" // PostgreSQL driver
	_ "modernc.org/sqlite"
)

// dialect holds the SQL that differs between backends.
type dialect struct {
	name       string
	driver     string
	schema     []string
	maxConns   int
	positional bool
}

var dialects = map[string]dialect{
	"sqlite": {
		name:   "sqlite",
		driver: "sqlite",
		schema: []string{
			`CREATE TABLE IF NOT EXISTS rental_events (
				seq        INTEGER PRIMARY KEY AUTOINCREMENT,
				id         TEXT NOT NULL UNIQUE,
				offer_hash TEXT,
				event_type TEXT NOT NULL,
				ts         INTEGER NOT NULL,
				payload    BLOB NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS rental_events_offer ON rental_events (offer_hash, seq)`,
		},
		// a single connection keeps in-memory databases shared
		maxConns: 1,
	},
	"postgres": {
		name:   "postgres",
		driver: "postgres",
		schema: []string{
			`CREATE TABLE IF NOT EXISTS rental_events (
				seq        BIGSERIAL PRIMARY KEY,
				id         UUID NOT NULL UNIQUE,
				offer_hash CHAR(64),
				event_type TEXT NOT NULL,
				ts         BIGINT NOT NULL,
				payload    BYTEA NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS rental_events_offer ON rental_events (offer_hash, seq)`,
		},
		maxConns:   10,
		positional: true,
	},
}

func dialectFor(driver string) (dialect, error) {
	d, ok := dialects[strings.ToLower(driver)]
	if !ok {
		return dialect{}, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
	return d, nil
}

// bind rewrites ? placeholders for backends using $n.
func (d dialect) bind(query string) string {
	if !d.positional {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
