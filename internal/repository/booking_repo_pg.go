package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Domenick1991/planepal/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.BookedFlight) error
	GetByID(ctx context.Context, id int64) (*domain.BookedFlight, error)
	UpdateQuantity(ctx context.Context, id int64, quantity int) error
	Cancel(ctx context.Context, id int64) error
	ListByUser(ctx context.Context, email string) ([]domain.BookedFlight, error)
	ListByUserFlightAndDate(ctx context.Context, email, icao string, departure time.Time) ([]domain.BookedFlight, error)
	ListFutureByUser(ctx context.Context, email string) ([]domain.BookedFlight, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `id, user_email, departure_date, flight_status, departure_airport, arrival_airport, flight_icao, ticket_quantity, arrival_date, is_canceled`

func scanBooking(row pgx.Row) (*domain.BookedFlight, error) {
	var b domain.BookedFlight
	var status int
	if err := row.Scan(&b.ID, &b.UserEmail, &b.DepartureDate, &status, &b.DepartureAirport,
		&b.ArrivalAirport, &b.FlightIcao, &b.TicketQuantity, &b.ArrivalDate, &b.IsCanceled); err != nil {
		return nil, err
	}
	b.FlightStatus = domain.FlightStatus(status)
	return &b, nil
}

// Row locks alone cannot serialize two first-time bookings: with no existing
// rows the FOR UPDATE select locks nothing and both inserts pass the cap
// check. The occurrence key is locked for the transaction's lifetime instead,
// so concurrent Creates for the same (user, icao, departure) run one at a time.
const occurrenceLockSQL = `SELECT pg_advisory_xact_lock(hashtextextended($1::text || '|' || $2::text || '|' || $3::text, 0))`

// Create inserts the booking inside a transaction that re-checks the
// per-(user, icao, departure) ticket sum under the occurrence lock, so the
// 5-ticket cap holds even when both requests passed the service-level
// pre-check.
func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.BookedFlight) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := createWithCapacityCheck(ctx, tx, booking); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func createWithCapacityCheck(ctx context.Context, tx pgx.Tx, booking *domain.BookedFlight) error {
	if _, err := tx.Exec(ctx, occurrenceLockSQL,
		booking.UserEmail, booking.FlightIcao, booking.DepartureDate); err != nil {
		return err
	}

	rows, err := tx.Query(ctx, `SELECT ticket_quantity FROM booked_flights
		WHERE user_email=$1 AND flight_icao=$2 AND departure_date=$3 AND is_canceled=false`,
		booking.UserEmail, booking.FlightIcao, booking.DepartureDate)
	if err != nil {
		return err
	}

	existing := 0
	for rows.Next() {
		var quantity int
		if err := rows.Scan(&quantity); err != nil {
			rows.Close()
			return err
		}
		existing += quantity
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	if existing+booking.TicketQuantity > domain.MaxTicketsPerFlight {
		return ErrCapacityExceeded
	}

	return tx.QueryRow(ctx, `INSERT INTO booked_flights (user_email, departure_date, flight_status, departure_airport, arrival_airport, flight_icao, ticket_quantity, arrival_date, is_canceled)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		booking.UserEmail, booking.DepartureDate, int(booking.FlightStatus), booking.DepartureAirport,
		booking.ArrivalAirport, booking.FlightIcao, booking.TicketQuantity, booking.ArrivalDate, booking.IsCanceled).
		Scan(&booking.ID)
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id int64) (*domain.BookedFlight, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM booked_flights WHERE id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *PGBookingRepository) UpdateQuantity(ctx context.Context, id int64, quantity int) error {
	res, err := r.db.Exec(ctx, `UPDATE booked_flights SET ticket_quantity=$1 WHERE id=$2`, quantity, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

// Cancel flips the flag and keeps the row.
func (r *PGBookingRepository) Cancel(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `UPDATE booked_flights SET is_canceled=true WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

func (r *PGBookingRepository) ListByUser(ctx context.Context, email string) ([]domain.BookedFlight, error) {
	return r.list(ctx, `SELECT `+bookingColumns+` FROM booked_flights WHERE user_email=$1 ORDER BY departure_date`, email)
}

func (r *PGBookingRepository) ListByUserFlightAndDate(ctx context.Context, email, icao string, departure time.Time) ([]domain.BookedFlight, error) {
	return r.list(ctx, `SELECT `+bookingColumns+` FROM booked_flights
		WHERE user_email=$1 AND flight_icao=$2 AND departure_date=$3 AND is_canceled=false`, email, icao, departure)
}

func (r *PGBookingRepository) ListFutureByUser(ctx context.Context, email string) ([]domain.BookedFlight, error) {
	return r.list(ctx, `SELECT `+bookingColumns+` FROM booked_flights
		WHERE user_email=$1 AND departure_date >= now() AND is_canceled=false ORDER BY departure_date`, email)
}

func (r *PGBookingRepository) list(ctx context.Context, query string, args ...any) ([]domain.BookedFlight, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.BookedFlight, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

var _ BookingRepository = (*PGBookingRepository)(nil)
