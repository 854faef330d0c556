package state

import (
	"context"
	"errors"
	"testing"

	"github.com/LeJamon/goRentald/internal/core/ledger/keylet"
	"github.com/LeJamon/goRentald/internal/core/ledger/view"
	"github.com/LeJamon/goRentald/internal/core/types"
	"github.com/LeJamon/goRentald/internal/storage/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lender = types.MustParseAccountID("0x1111111111111111111111111111111111111111")

func newView(t *testing.T) (*StoreView, *database.MemoryDB) {
	t.Helper()
	db := database.NewMemoryDB()
	v, err := NewStoreView(db, StoreViewConfig{CacheEntries: 8})
	require.NoError(t, err)
	return v, db
}

func TestStoreViewReadMissing(t *testing.T) {
	v, _ := newView(t)
	data, err := v.Read(keylet.NonceDeadline(lender, 1))
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestStoreViewCommitAndCache(t *testing.T) {
	v, db := newView(t)
	k := keylet.NonceDeadline(lender, 1)

	require.NoError(t, v.Insert(k, []byte("a")))
	assert.ErrorIs(t, v.Insert(k, []byte("b")), view.ErrEntryExists)

	stored, err := db.Read(context.Background(), k.Key[:])
	require.NoError(t, err)
	assert.Equal(t, []byte("a"), stored)

	got, err := v.Read(k)
	require.NoError(t, err)
	assert.Equal(t, []byte("a"), got)
	hits, _ := v.Stats()
	assert.Equal(t, uint64(1), hits)

	require.NoError(t, v.Update(k, []byte("b")))
	got, err = v.Read(k)
	require.NoError(t, err)
	assert.Equal(t, []byte("b"), got)

	require.NoError(t, v.Erase(k))
	got, err = v.Read(k)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStoreViewWithApplyStateTable(t *testing.T) {
	v, db := newView(t)
	table := view.NewApplyStateTable(v)

	require.NoError(t, table.Insert(keylet.NonceDeadline(lender, 1), []byte("a")))
	require.NoError(t, table.Insert(keylet.NonceDeadline(lender, 2), []byte("b")))

	k1 := keylet.NonceDeadline(lender, 1)
	_, err := db.Read(context.Background(), k1.Key[:])
	assert.ErrorIs(t, err, database.ErrKeyNotFound)

	_, err = table.Apply()
	require.NoError(t, err)

	k2 := keylet.NonceDeadline(lender, 2)
	got, err := db.Read(context.Background(), k2.Key[:])
	require.NoError(t, err)
	assert.Equal(t, []byte("b"), got)
}

// failingDB fails every batch.
type failingDB struct {
	*database.MemoryDB
}

func (failingDB) Batch(context.Context, []database.BatchOperation) error {
	return errors.New("disk full")
}

func TestStoreViewFailedCommitLeavesNothing(t *testing.T) {
	db := failingDB{database.NewMemoryDB()}
	v, err := NewStoreView(db, StoreViewConfig{})
	require.NoError(t, err)

	k := keylet.NonceDeadline(lender, 1)
	require.Error(t, v.Insert(k, []byte("a")))

	got, err := v.Read(k)
	require.NoError(t, err)
	assert.Nil(t, got)
}
