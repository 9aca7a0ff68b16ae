package repository

import (
	"context"
	"errors"

	"github.com/emirhankarahan/flyticket/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TicketRepository interface {
	// Book inserts the ticket and decrements the flight's seat counter in
	// one transaction. It fails with ErrFlightNotFound, ErrNoSeatsAvailable,
	// ErrSeatTaken or ErrPassengerAlreadyBooked; on any failure nothing is
	// written.
	Book(ctx context.Context, ticket *domain.Ticket) error

	// Cancel soft-deletes the ticket and restores one seat to its flight in
	// one transaction. A soft-deleted flight is skipped silently; the seat
	// counter never exceeds seats_total.
	Cancel(ctx context.Context, ticketID string) error

	FindByID(ctx context.Context, id string) (*domain.Ticket, error)
	FindByEmail(ctx context.Context, email string) ([]domain.Ticket, error)
	ListAll(ctx context.Context) ([]domain.Ticket, error)
}

const ticketColumns = `ticket_id, passenger_name, passenger_surname, passenger_email, flight_id, COALESCE(seat_number, ''), booked_at, is_deleted`

type PGTicketRepository struct {
	db *pgxpool.Pool
}

func NewTicketRepository(db *pgxpool.Pool) TicketRepository {
	return &PGTicketRepository{db: db}
}

func (r *PGTicketRepository) Book(ctx context.Context, ticket *domain.Ticket) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// Conditional decrement: zero rows means the flight is gone, deleted,
	// or out of seats. Doing this first serializes concurrent bookings on
	// the flight row.
	cmd, err := tx.Exec(ctx, `UPDATE flights SET seats_available = seats_available - 1
		WHERE flight_id=$1 AND is_deleted = FALSE AND seats_available > 0`, ticket.FlightID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM flights WHERE flight_id=$1 AND is_deleted = FALSE)`, ticket.FlightID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.ErrFlightNotFound
		}
		return domain.ErrNoSeatsAvailable
	}

	if ticket.SeatNumber != "" {
		var taken bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM tickets
			WHERE flight_id=$1 AND seat_number=$2 AND is_deleted = FALSE)`,
			ticket.FlightID, ticket.SeatNumber).Scan(&taken); err != nil {
			return err
		}
		if taken {
			return domain.ErrSeatTaken
		}
	}

	var duplicate bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM tickets
		WHERE flight_id=$1 AND passenger_name=$2 AND passenger_surname=$3 AND is_deleted = FALSE)`,
		ticket.FlightID, ticket.PassengerName, ticket.PassengerSurname).Scan(&duplicate); err != nil {
		return err
	}
	if duplicate {
		return domain.ErrPassengerAlreadyBooked
	}

	var seat any
	if ticket.SeatNumber != "" {
		seat = ticket.SeatNumber
	}
	err = tx.QueryRow(ctx, `INSERT INTO tickets (ticket_id, passenger_name, passenger_surname, passenger_email, flight_id, seat_number, booked_at, is_deleted)
		VALUES ($1, $2, $3, $4, $5, $6, now(), FALSE)
		RETURNING booked_at`,
		ticket.ID, ticket.PassengerName, ticket.PassengerSurname, ticket.PassengerEmail, ticket.FlightID, seat).
		Scan(&ticket.BookedAt)
	if err != nil {
		// The partial unique indexes backstop the pre-checks when two
		// transactions race past them.
		return mapTicketConstraint(err)
	}

	return tx.Commit(ctx)
}

func (r *PGTicketRepository) Cancel(ctx context.Context, ticketID string) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var flightID string
	err = tx.QueryRow(ctx, `UPDATE tickets SET is_deleted = TRUE
		WHERE ticket_id=$1 AND is_deleted = FALSE
		RETURNING flight_id`, ticketID).Scan(&flightID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrTicketNotFound
		}
		return err
	}

	// Compensating increment, clamped so repeated cancellations of other
	// tickets can never push the counter past seats_total. Zero rows means
	// the flight was soft-deleted in the meantime; the cancellation still
	// stands.
	_, err = tx.Exec(ctx, `UPDATE flights SET seats_available = LEAST(seats_available + 1, seats_total)
		WHERE flight_id=$1 AND is_deleted = FALSE`, flightID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PGTicketRepository) FindByID(ctx context.Context, id string) (*domain.Ticket, error) {
	row := r.db.QueryRow(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE ticket_id=$1 AND is_deleted = FALSE`, id)
	var t domain.Ticket
	if err := row.Scan(&t.ID, &t.PassengerName, &t.PassengerSurname, &t.PassengerEmail, &t.FlightID, &t.SeatNumber, &t.BookedAt, &t.IsDeleted); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTicketNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *PGTicketRepository) FindByEmail(ctx context.Context, email string) ([]domain.Ticket, error) {
	rows, err := r.db.Query(ctx, `SELECT `+ticketColumns+` FROM tickets
		WHERE passenger_email=$1 AND is_deleted = FALSE
		ORDER BY booked_at DESC`, email)
	if err != nil {
		return nil, err
	}
	return collectTickets(rows)
}

func (r *PGTicketRepository) ListAll(ctx context.Context) ([]domain.Ticket, error) {
	rows, err := r.db.Query(ctx, `SELECT `+ticketColumns+` FROM tickets
		WHERE is_deleted = FALSE
		ORDER BY booked_at DESC`)
	if err != nil {
		return nil, err
	}
	return collectTickets(rows)
}

func collectTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	defer rows.Close()
	tickets := make([]domain.Ticket, 0)
	for rows.Next() {
		var t domain.Ticket
		if err := rows.Scan(&t.ID, &t.PassengerName, &t.PassengerSurname, &t.PassengerEmail, &t.FlightID, &t.SeatNumber, &t.BookedAt, &t.IsDeleted); err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

func mapTicketConstraint(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "tickets_active_seat_idx":
			return domain.ErrSeatTaken
		case "tickets_active_passenger_idx":
			return domain.ErrPassengerAlreadyBooked
		}
	}
	return err
}

var _ TicketRepository = (*PGTicketRepository)(nil)
