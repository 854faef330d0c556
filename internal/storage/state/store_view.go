// Package state binds the keylet-addressed ledger view to a key-value
// database.
package state

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/LeJamon/goRentald/internal/core/ledger/keylet"
	"github.com/LeJamon/goRentald/internal/core/ledger/view"
	"github.com/LeJamon/goRentald/internal/storage/database"
	lru "github.com/hashicorp/golang-lru/v2"
)

// StoreViewConfig holds configuration for the view
type StoreViewConfig struct {
	// CacheEntries is the number of entries to keep in memory
	CacheEntries int
}

// StoreView is the committed state. Reads go through an LRU cache in front
// of the database; CommitChanges writes one atomic batch.
type StoreView struct {
	mu sync.RWMutex
	db database.DB

	cache *lru.Cache[[32]byte, []byte]

	// Metrics
	hits   atomic.Uint64
	misses atomic.Uint64
}

var _ view.LedgerView = (*StoreView)(nil)
var _ view.Committer = (*StoreView)(nil)

// NewStoreView creates a view over db.
func NewStoreView(db database.DB, config StoreViewConfig) (*StoreView, error) {
	if config.CacheEntries <= 0 {
		config.CacheEntries = 4096 // Default cache size
	}
	cache, err := lru.New[[32]byte, []byte](config.CacheEntries)
	if err != nil {
		return nil, err
	}
	return &StoreView{db: db, cache: cache}, nil
}

// Read returns the entry bytes, or nil when absent.
func (v *StoreView) Read(k keylet.Keylet) ([]byte, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.read(k.Key)
}

func (v *StoreView) read(key [32]byte) ([]byte, error) {
	if data, ok := v.cache.Get(key); ok {
		v.hits.Add(1)
		return bytes.Clone(data), nil
	}
	v.misses.Add(1)

	data, err := v.db.Read(context.Background(), key[:])
	if errors.Is(err, database.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("state read %x: %w", key[:8], err)
	}
	v.cache.Add(key, bytes.Clone(data))
	return data, nil
}

func (v *StoreView) Exists(k keylet.Keylet) (bool, error) {
	data, err := v.Read(k)
	return data != nil, err
}

func (v *StoreView) Insert(k keylet.Keylet, data []byte) error {
	exists, err := v.Exists(k)
	if err != nil {
		return err
	}
	if exists {
		return view.ErrEntryExists
	}
	return v.CommitChanges([]view.Change{{Action: view.ActionInsert, Key: k.Key, Data: data}})
}

func (v *StoreView) Update(k keylet.Keylet, data []byte) error {
	exists, err := v.Exists(k)
	if err != nil {
		return err
	}
	if !exists {
		return view.ErrEntryNotFound
	}
	return v.CommitChanges([]view.Change{{Action: view.ActionModify, Key: k.Key, Data: data}})
}

func (v *StoreView) Erase(k keylet.Keylet) error {
	return v.CommitChanges([]view.Change{{Action: view.ActionErase, Key: k.Key}})
}

// CommitChanges writes all changes in one database batch and refreshes the
// cache only once the batch succeeded.
func (v *StoreView) CommitChanges(changes []view.Change) error {
	if len(changes) == 0 {
		return nil
	}

	ops := make([]database.BatchOperation, 0, len(changes))
	for _, ch := range changes {
		key := append([]byte(nil), ch.Key[:]...)
		if ch.Action == view.ActionErase {
			ops = append(ops, database.BatchOperation{Type: database.BatchDelete, Key: key})
		} else {
			ops = append(ops, database.BatchOperation{Type: database.BatchPut, Key: key, Value: ch.Data})
		}
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.db.Batch(context.Background(), ops); err != nil {
		// The cache may now disagree with whatever the backend kept.
		v.cache.Purge()
		return fmt.Errorf("state commit: %w", err)
	}
	for _, ch := range changes {
		if ch.Action == view.ActionErase {
			v.cache.Remove(ch.Key)
		} else {
			v.cache.Add(ch.Key, bytes.Clone(ch.Data))
		}
	}
	return nil
}

// Stats returns cache hit and miss counts.
func (v *StoreView) Stats() (hits, misses uint64) {
	return v.hits.Load(), v.misses.Load()
}
