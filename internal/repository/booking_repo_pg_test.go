package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Domenick1991/planepal/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

func TestNewBookingRepository(t *testing.T) {
	pool := &pgxpool.Pool{}
	repo := NewBookingRepository(pool)
	assert.NotNil(t, repo)
}

// fakeTx records every statement so tests can assert what the booking insert
// runs and in what order.
type fakeTx struct {
	pgx.Tx
	statements []string
	quantities []int
	inserted   bool
}

func (tx *fakeTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	tx.statements = append(tx.statements, sql)
	return pgconn.CommandTag{}, nil
}

func (tx *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	tx.statements = append(tx.statements, sql)
	return &fakeRows{quantities: tx.quantities}, nil
}

func (tx *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	tx.statements = append(tx.statements, sql)
	tx.inserted = true
	return fakeIDRow{}
}

type fakeRows struct {
	pgx.Rows
	quantities []int
	pos        int
}

func (r *fakeRows) Close()     {}
func (r *fakeRows) Err() error { return nil }

func (r *fakeRows) Next() bool {
	return r.pos < len(r.quantities)
}

func (r *fakeRows) Scan(dest ...any) error {
	*dest[0].(*int) = r.quantities[r.pos]
	r.pos++
	return nil
}

type fakeIDRow struct{}

func (fakeIDRow) Scan(dest ...any) error {
	*dest[0].(*int64) = 1
	return nil
}

func testBooking(quantity int) *domain.BookedFlight {
	return &domain.BookedFlight{
		UserEmail:      "test@example.com",
		DepartureDate:  time.Date(2026, 9, 14, 8, 30, 0, 0, time.UTC),
		FlightIcao:     "ASL431",
		TicketQuantity: quantity,
		ArrivalDate:    time.Date(2026, 9, 14, 10, 35, 0, 0, time.UTC),
	}
}

// Two concurrent first-time bookings read zero rows, so row locks alone never
// conflict; the occurrence must be serialized by an advisory lock taken
// before the quantity read.
func TestCreateBooking_LocksOccurrenceBeforeRead(t *testing.T) {
	tx := &fakeTx{}

	err := createWithCapacityCheck(context.Background(), tx, testBooking(3))

	assert.NoError(t, err)
	if assert.GreaterOrEqual(t, len(tx.statements), 3) {
		assert.Contains(t, tx.statements[0], "pg_advisory_xact_lock")
		assert.Contains(t, tx.statements[1], "ticket_quantity")
		assert.Contains(t, tx.statements[2], "INSERT INTO booked_flights")
	}
	assert.True(t, tx.inserted)
}

func TestCreateBooking_CapacityRecheckRejectsOverflow(t *testing.T) {
	tx := &fakeTx{quantities: []int{3, 2}}

	err := createWithCapacityCheck(context.Background(), tx, testBooking(1))

	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.False(t, tx.inserted)
}

func TestCreateBooking_SumsExistingQuantities(t *testing.T) {
	tx := &fakeTx{quantities: []int{2, 1}}

	err := createWithCapacityCheck(context.Background(), tx, testBooking(2))

	assert.NoError(t, err)
	assert.True(t, tx.inserted)
}

func TestOccurrenceLockKeysAllThreeFields(t *testing.T) {
	for _, param := range []string{"$1", "$2", "$3"} {
		assert.True(t, strings.Contains(occurrenceLockSQL, param), "lock key must include %s", param)
	}
	assert.Contains(t, occurrenceLockSQL, "pg_advisory_xact_lock")
}
