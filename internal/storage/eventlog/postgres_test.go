package eventlog

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/LeJamon/goRentald/internal/core/rental"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockLog(t *testing.T) (*Log, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db, "postgres", nil), mock
}

func TestPostgresInitCreatesSchema(t *testing.T) {
	l, mock := newMockLog(t)
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS rental_events")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("CREATE INDEX IF NOT EXISTS rental_events_offer")).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, l.Init(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresPublishUsesOneTransaction(t *testing.T) {
	l, mock := newMockLog(t)
	h := hashOf(0x0D)
	insert := regexp.QuoteMeta("INSERT INTO rental_events (id, offer_hash, event_type, ts, payload) VALUES ($1, $2, $3, $4, $5)")

	mock.ExpectBegin()
	mock.ExpectExec(insert).
		WithArgs(sqlmock.AnyArg(), h.String(), "offer_created", int64(10), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(insert).
		WithArgs(sqlmock.AnyArg(), nil, "role_granted", int64(11), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	err := l.Publish(context.Background(), []rental.Event{
		{Type: rental.EventOfferCreated, Timestamp: 10, OfferHash: &h},
		{Type: rental.EventRoleGranted, Timestamp: 11},
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresPublishRollsBackOnFailure(t *testing.T) {
	l, mock := newMockLog(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO rental_events").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := l.Publish(context.Background(), []rental.Event{{Type: rental.EventOfferCreated}})
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, ErrorTypeQuery, e.Type)
	assert.Contains(t, err.Error(), "disk full")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresByOffer(t *testing.T) {
	l, mock := newMockLog(t)
	h := hashOf(0x0E)
	id := uuid.New()
	payload, err := encodeEvent(rental.Event{Type: rental.EventRentalEnded, Timestamp: 42, OfferHash: &h})
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT seq, id, payload FROM rental_events WHERE offer_hash = $1 AND seq > $2 ORDER BY seq LIMIT $3")).
		WithArgs(h.String(), int64(0), 50).
		WillReturnRows(sqlmock.NewRows([]string{"seq", "id", "payload"}).AddRow(int64(9), id.String(), payload))

	recs, err := l.ByOffer(context.Background(), h, 0, 50)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, int64(9), recs[0].Seq)
	assert.Equal(t, id, recs[0].ID)
	assert.Equal(t, rental.EventRentalEnded, recs[0].Event.Type)
	assert.Equal(t, h, *recs[0].Event.OfferHash)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCorruptPayload(t *testing.T) {
	l, mock := newMockLog(t)
	mock.ExpectQuery("SELECT seq, id, payload FROM rental_events").
		WillReturnRows(sqlmock.NewRows([]string{"seq", "id", "payload"}).AddRow(int64(1), uuid.New().String(), []byte{0xFF}))

	_, err := l.Recent(context.Background(), 1)
	assert.ErrorIs(t, err, ErrCorruptPayload)
}
