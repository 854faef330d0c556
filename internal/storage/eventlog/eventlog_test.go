package eventlog

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/LeJamon/goRentald/internal/config"
	"github.com/LeJamon/goRentald/internal/core/rental"
	"github.com/LeJamon/goRentald/internal/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func openSQLite(t *testing.T) *Log {
	t.Helper()
	cfg := config.EventsConfig{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "events.db")}
	l, err := Open(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

func hashOf(b byte) types.Hash {
	var h types.Hash
	for i := range h {
		h[i] = b
	}
	return h
}

func TestCompressRoundTrip(t *testing.T) {
	inputs := [][]byte{
		{},
		[]byte("x"),
		bytes.Repeat([]byte("rental_started "), 200),
	}
	for _, in := range inputs {
		out, err := compress(in)
		require.NoError(t, err)
		back, err := decompress(out)
		require.NoError(t, err)
		assert.Equal(t, in, back)
	}

	large := bytes.Repeat([]byte{0xAB}, 4096)
	out, err := compress(large)
	require.NoError(t, err)
	assert.Less(t, len(out), len(large))
}

func TestDecompressRejectsGarbage(t *testing.T) {
	_, err := decompress(nil)
	assert.ErrorIs(t, err, ErrCorruptPayload)

	payload, err := compress(bytes.Repeat([]byte("abc"), 100))
	require.NoError(t, err)
	_, err = decompress(payload[:len(payload)-3])
	assert.ErrorIs(t, err, ErrCorruptPayload)
}

func TestBindPlaceholders(t *testing.T) {
	q := `SELECT * FROM t WHERE a = ? AND b = ?`
	assert.Equal(t, q, dialects["sqlite"].bind(q))
	assert.Equal(t, `SELECT * FROM t WHERE a = $1 AND b = $2`, dialects["postgres"].bind(q))
}

func TestOpenRejectsBadConfig(t *testing.T) {
	_, err := Open(context.Background(), config.EventsConfig{Driver: "mysql", DSN: "x"}, nil)
	assert.ErrorIs(t, err, ErrUnsupportedDriver)

	_, err = Open(context.Background(), config.EventsConfig{Driver: "sqlite"}, nil)
	assert.ErrorIs(t, err, ErrMissingDSN)
}

func TestPublishAndQueryByOffer(t *testing.T) {
	l := openSQLite(t)
	ctx := context.Background()
	a, b := hashOf(0x0A), hashOf(0x0B)
	lender := types.AccountID{1}

	require.NoError(t, l.Publish(ctx, []rental.Event{
		{Type: rental.EventOfferCreated, Variant: types.VariantNFT, Timestamp: 100, OfferHash: &a, Lender: &lender, Nonce: 7, Roles: []types.RoleID{types.RoleFromName("UNIQUE_ROLE")}},
		{Type: rental.EventOfferCreated, Variant: types.VariantSFT, Timestamp: 100, OfferHash: &b, CommitmentID: 3},
	}))
	require.NoError(t, l.Publish(ctx, []rental.Event{
		{Type: rental.EventRentalStarted, Timestamp: 200, OfferHash: &a, ExpirationDate: 3800,
			Fees: &rental.FeeSplit{Total: 3600, Marketplace: 180, Royalty: 360, Lender: 3060}},
		{Type: rental.EventTokensReleased, Timestamp: 300, CommitmentID: 3},
	}))

	recs, err := l.ByOffer(ctx, a, 0, 10)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, rental.EventOfferCreated, recs[0].Event.Type)
	assert.Equal(t, types.VariantNFT, recs[0].Event.Variant)
	assert.Equal(t, lender, *recs[0].Event.Lender)
	assert.Equal(t, uint64(7), recs[0].Event.Nonce)
	assert.Equal(t, []types.RoleID{types.RoleFromName("UNIQUE_ROLE")}, recs[0].Event.Roles)
	assert.Equal(t, rental.EventRentalStarted, recs[1].Event.Type)
	assert.Equal(t, uint64(3060), recs[1].Event.Fees.Lender)
	assert.Less(t, recs[0].Seq, recs[1].Seq)
	assert.NotEqual(t, recs[0].ID, recs[1].ID)

	// paging
	recs, err = l.ByOffer(ctx, a, recs[0].Seq, 10)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, rental.EventRentalStarted, recs[0].Event.Type)

	recent, err := l.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, rental.EventTokensReleased, recent[0].Event.Type)
	assert.Nil(t, recent[0].Event.OfferHash)
}

func TestQueryLimits(t *testing.T) {
	l := openSQLite(t)
	_, err := l.ByOffer(context.Background(), hashOf(1), 0, 0)
	assert.ErrorIs(t, err, ErrInvalidLimit)
	_, err = l.Recent(context.Background(), MaxLimit+1)
	assert.ErrorIs(t, err, ErrInvalidLimit)
}

func TestClosedLog(t *testing.T) {
	l := openSQLite(t)
	require.NoError(t, l.Close())
	require.NoError(t, l.Close())

	err := l.Publish(context.Background(), []rental.Event{{Type: rental.EventOfferCreated}})
	assert.ErrorIs(t, err, ErrLogClosed)
	_, err = l.Recent(context.Background(), 1)
	assert.ErrorIs(t, err, ErrLogClosed)
}

func TestReopenKeepsEvents(t *testing.T) {
	cfg := config.EventsConfig{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "events.db")}
	ctx := context.Background()
	h := hashOf(0x0C)

	l, err := Open(ctx, cfg, nil)
	require.NoError(t, err)
	require.NoError(t, l.Publish(ctx, []rental.Event{{Type: rental.EventOfferCancelled, OfferHash: &h, HadActiveRental: true}}))
	require.NoError(t, l.Close())

	l, err = Open(ctx, cfg, nil)
	require.NoError(t, err)
	defer l.Close()
	recs, err := l.ByOffer(ctx, h, 0, 10)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.True(t, recs[0].Event.HadActiveRental)
}
