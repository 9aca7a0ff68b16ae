package repository

import (
	"context"
	"errors"
	"time"

	"github.com/emirhankarahan/flyticket/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FlightRepository interface {
	List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error)
	GetByID(ctx context.Context, id string) (*domain.Flight, error)
	Create(ctx context.Context, flight *domain.Flight) error
	Update(ctx context.Context, flight *domain.Flight) error
	SoftDelete(ctx context.Context, id string) error

	// Scheduling-conflict queries. Both exclude soft-deleted flights and,
	// when excludeID is non-empty, the flight being updated.
	CountDeparturesInWindow(ctx context.Context, fromCity string, windowStart, windowEnd time.Time, excludeID string) (int, error)
	CountArrivalsAt(ctx context.Context, toCity string, arrival time.Time, excludeID string) (int, error)
}

const flightColumns = `flight_id, from_city, to_city, departure_time, arrival_time, price, seats_total, seats_available, is_deleted`

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

func scanFlight(row pgx.Row) (*domain.Flight, error) {
	var f domain.Flight
	err := row.Scan(&f.ID, &f.FromCity, &f.ToCity, &f.DepartureTime, &f.ArrivalTime, &f.Price, &f.SeatsTotal, &f.SeatsAvailable, &f.IsDeleted)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *PGFlightRepository) List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights
		WHERE is_deleted = FALSE
		  AND ($1 = '' OR from_city = $1)
		  AND ($2 = '' OR to_city = $2)
		  AND ($3 = '' OR departure_time::date = NULLIF($3, '')::date)
		ORDER BY departure_time ASC`,
		filter.FromCity, filter.ToCity, filter.Date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, *f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE flight_id=$1 AND is_deleted = FALSE`, id)
	f, err := scanFlight(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFlightNotFound
		}
		return nil, err
	}
	return f, nil
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	_, err := r.db.Exec(ctx, `INSERT INTO flights (flight_id, from_city, to_city, departure_time, arrival_time, price, seats_total, seats_available, is_deleted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE)`,
		flight.ID, flight.FromCity, flight.ToCity, flight.DepartureTime, flight.ArrivalTime, flight.Price, flight.SeatsTotal, flight.SeatsAvailable)
	return err
}

// Update is a full-field replace; callers supply the complete record so a
// partial edit cannot clobber fields it never read.
func (r *PGFlightRepository) Update(ctx context.Context, flight *domain.Flight) error {
	cmd, err := r.db.Exec(ctx, `UPDATE flights SET
			from_city=$2, to_city=$3, departure_time=$4, arrival_time=$5, price=$6, seats_total=$7, seats_available=$8
		WHERE flight_id=$1 AND is_deleted = FALSE`,
		flight.ID, flight.FromCity, flight.ToCity, flight.DepartureTime, flight.ArrivalTime, flight.Price, flight.SeatsTotal, flight.SeatsAvailable)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrFlightNotFound
	}
	return nil
}

// SoftDelete is unconditional and idempotent: deleting an already-deleted
// flight is not an error. Tickets keep referencing the row.
func (r *PGFlightRepository) SoftDelete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `UPDATE flights SET is_deleted = TRUE WHERE flight_id=$1`, id)
	return err
}

func (r *PGFlightRepository) CountDeparturesInWindow(ctx context.Context, fromCity string, windowStart, windowEnd time.Time, excludeID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM flights
		WHERE is_deleted = FALSE
		  AND from_city = $1
		  AND departure_time >= $2 AND departure_time < $3
		  AND ($4 = '' OR flight_id <> $4)`,
		fromCity, windowStart, windowEnd, excludeID).Scan(&count)
	return count, err
}

func (r *PGFlightRepository) CountArrivalsAt(ctx context.Context, toCity string, arrival time.Time, excludeID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM flights
		WHERE is_deleted = FALSE
		  AND to_city = $1
		  AND arrival_time = $2
		  AND ($3 = '' OR flight_id <> $3)`,
		toCity, arrival, excludeID).Scan(&count)
	return count, err
}

var _ FlightRepository = (*PGFlightRepository)(nil)
