package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/planepal/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CatalogRepository interface {
	CreateAirline(ctx context.Context, airline *domain.Airline) error
	CreateAirport(ctx context.Context, airport *domain.Airport) error
	CreateFlight(ctx context.Context, flight *domain.ScheduledFlight) error
	ListAirlines(ctx context.Context) ([]domain.Airline, error)
	ListAirports(ctx context.Context) ([]domain.Airport, error)
	ListFlights(ctx context.Context) ([]domain.ScheduledFlight, error)
	GetFlightByID(ctx context.Context, id int64) (*domain.ScheduledFlight, error)
}

type PGCatalogRepository struct {
	db *pgxpool.Pool
}

func NewCatalogRepository(db *pgxpool.Pool) CatalogRepository {
	return &PGCatalogRepository{db: db}
}

func (r *PGCatalogRepository) CreateAirline(ctx context.Context, airline *domain.Airline) error {
	return r.db.QueryRow(ctx, `INSERT INTO airlines (name, iata, country) VALUES ($1, $2, $3) RETURNING id`,
		airline.Name, airline.Iata, airline.Country).Scan(&airline.ID)
}

func (r *PGCatalogRepository) CreateAirport(ctx context.Context, airport *domain.Airport) error {
	return r.db.QueryRow(ctx, `INSERT INTO airports (name, time_zone, icao, country) VALUES ($1, $2, $3, $4) RETURNING id`,
		airport.Name, airport.TimeZone, airport.Icao, airport.Country).Scan(&airport.ID)
}

// CreateFlight inserts the four owned sub-records and the flight row in one
// transaction so a half-written flight never becomes visible.
func (r *PGCatalogRepository) CreateFlight(ctx context.Context, flight *domain.ScheduledFlight) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx, `INSERT INTO departures (airport, timezone, iata, terminal, gate, scheduled)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		flight.Departure.Airport, flight.Departure.Timezone, flight.Departure.Iata,
		flight.Departure.Terminal, flight.Departure.Gate, flight.Departure.Scheduled).
		Scan(&flight.Departure.ID); err != nil {
		return err
	}

	if err := tx.QueryRow(ctx, `INSERT INTO arrivals (airport, timezone, iata, terminal, gate, scheduled)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		flight.Arrival.Airport, flight.Arrival.Timezone, flight.Arrival.Iata,
		flight.Arrival.Terminal, flight.Arrival.Gate, flight.Arrival.Scheduled).
		Scan(&flight.Arrival.ID); err != nil {
		return err
	}

	if err := tx.QueryRow(ctx, `INSERT INTO flight_airlines (name, iata) VALUES ($1, $2) RETURNING id`,
		flight.Airline.Name, flight.Airline.Iata).Scan(&flight.Airline.ID); err != nil {
		return err
	}

	if err := tx.QueryRow(ctx, `INSERT INTO flight_codes (number, iata, icao) VALUES ($1, $2, $3) RETURNING id`,
		flight.Flight.Number, flight.Flight.Iata, flight.Flight.Icao).Scan(&flight.Flight.ID); err != nil {
		return err
	}

	if err := tx.QueryRow(ctx, `INSERT INTO scheduled_flights (flight_date, flight_status, departure_id, arrival_id, airline_id, flight_id)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		flight.FlightDate, int(flight.FlightStatus), flight.Departure.ID, flight.Arrival.ID,
		flight.Airline.ID, flight.Flight.ID).Scan(&flight.ID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PGCatalogRepository) ListAirlines(ctx context.Context) ([]domain.Airline, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, iata, country FROM airlines ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airlines := make([]domain.Airline, 0)
	for rows.Next() {
		var a domain.Airline
		if err := rows.Scan(&a.ID, &a.Name, &a.Iata, &a.Country); err != nil {
			return nil, err
		}
		airlines = append(airlines, a)
	}
	return airlines, rows.Err()
}

func (r *PGCatalogRepository) ListAirports(ctx context.Context) ([]domain.Airport, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, time_zone, icao, country FROM airports ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airports := make([]domain.Airport, 0)
	for rows.Next() {
		var a domain.Airport
		if err := rows.Scan(&a.ID, &a.Name, &a.TimeZone, &a.Icao, &a.Country); err != nil {
			return nil, err
		}
		airports = append(airports, a)
	}
	return airports, rows.Err()
}

const flightSelect = `SELECT sf.id, sf.flight_date, sf.flight_status,
	d.id, d.airport, d.timezone, d.iata, d.terminal, d.gate, d.scheduled,
	a.id, a.airport, a.timezone, a.iata, a.terminal, a.gate, a.scheduled,
	fa.id, fa.name, fa.iata,
	fc.id, fc.number, fc.iata, fc.icao
	FROM scheduled_flights sf
	JOIN departures d ON d.id = sf.departure_id
	JOIN arrivals a ON a.id = sf.arrival_id
	JOIN flight_airlines fa ON fa.id = sf.airline_id
	JOIN flight_codes fc ON fc.id = sf.flight_id`

func scanFlight(row pgx.Row) (*domain.ScheduledFlight, error) {
	var f domain.ScheduledFlight
	var status int
	if err := row.Scan(&f.ID, &f.FlightDate, &status,
		&f.Departure.ID, &f.Departure.Airport, &f.Departure.Timezone, &f.Departure.Iata,
		&f.Departure.Terminal, &f.Departure.Gate, &f.Departure.Scheduled,
		&f.Arrival.ID, &f.Arrival.Airport, &f.Arrival.Timezone, &f.Arrival.Iata,
		&f.Arrival.Terminal, &f.Arrival.Gate, &f.Arrival.Scheduled,
		&f.Airline.ID, &f.Airline.Name, &f.Airline.Iata,
		&f.Flight.ID, &f.Flight.Number, &f.Flight.Iata, &f.Flight.Icao); err != nil {
		return nil, err
	}
	f.FlightStatus = domain.FlightStatus(status)
	return &f, nil
}

func (r *PGCatalogRepository) ListFlights(ctx context.Context) ([]domain.ScheduledFlight, error) {
	rows, err := r.db.Query(ctx, flightSelect+` ORDER BY sf.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.ScheduledFlight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, *f)
	}
	return flights, rows.Err()
}

func (r *PGCatalogRepository) GetFlightByID(ctx context.Context, id int64) (*domain.ScheduledFlight, error) {
	f, err := scanFlight(r.db.QueryRow(ctx, flightSelect+` WHERE sf.id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

var _ CatalogRepository = (*PGCatalogRepository)(nil)
