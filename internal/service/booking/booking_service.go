package booking

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/emirhankarahan/flyticket/internal/domain"
	"github.com/emirhankarahan/flyticket/internal/kafka"
	"github.com/emirhankarahan/flyticket/internal/repository"
	"github.com/google/uuid"
)

type BookingUseCase interface {
	BookTicket(ctx context.Context, input BookTicketInput) (*domain.Ticket, error)
	CancelTicket(ctx context.Context, ticketID string) error
	FindTicket(ctx context.Context, query string) ([]domain.Ticket, error)
	ListTickets(ctx context.Context) ([]domain.Ticket, error)
}

type Cache interface {
	AcquireSeatLock(ctx context.Context, flightID, seatNumber string, ttl time.Duration) (bool, error)
	ReleaseSeatLock(ctx context.Context, flightID, seatNumber string) error
	InvalidateFlights(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookTicketInput struct {
	FlightID         string `json:"flight_id"`
	PassengerName    string `json:"passenger_name"`
	PassengerSurname string `json:"passenger_surname"`
	PassengerEmail   string `json:"passenger_email"`
	SeatNumber       string `json:"seat_number"`
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithSeatLockTTL(ttl time.Duration) BookingServiceOption {
	return func(s *BookingService) {
		s.seatLockTTL = ttl
	}
}

type BookingService struct {
	tickets            repository.TicketRepository
	flights            repository.FlightRepository
	cache              Cache
	producer           Producer
	eventsTopic        string
	notificationsTopic string
	seatLockTTL        time.Duration
}

func NewBookingService(
	tickets repository.TicketRepository,
	flights repository.FlightRepository,
	cache Cache,
	producer Producer,
	eventsTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		tickets:     tickets,
		flights:     flights,
		cache:       cache,
		producer:    producer,
		eventsTopic: eventsTopic,
		seatLockTTL: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// BookTicket reserves a seat on a flight. The flight lookup gives the
// caller a precise error up front; the repository transaction re-checks
// everything, so two concurrent bookings cannot both take the last seat or
// the same seat.
func (s *BookingService) BookTicket(ctx context.Context, input BookTicketInput) (*domain.Ticket, error) {
	if input.FlightID == "" {
		return nil, fmt.Errorf("%w: flight_id is required", domain.ErrValidation)
	}
	if input.PassengerName == "" || input.PassengerSurname == "" {
		return nil, fmt.Errorf("%w: passenger name and surname are required", domain.ErrValidation)
	}
	if input.PassengerEmail == "" || !strings.Contains(input.PassengerEmail, "@") {
		return nil, fmt.Errorf("%w: a valid passenger email is required", domain.ErrValidation)
	}

	flight, err := s.flights.GetByID(ctx, input.FlightID)
	if err != nil {
		return nil, err
	}
	if flight.SeatsAvailable <= 0 {
		return nil, domain.ErrNoSeatsAvailable
	}

	// The lock only covers the window between the checks and the commit;
	// once the transaction lands, the row itself is the truth.
	if s.cache != nil && input.SeatNumber != "" {
		ok, err := s.cache.AcquireSeatLock(ctx, input.FlightID, input.SeatNumber, s.seatLockTTL)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrSeatTaken
		}
		defer func() {
			_ = s.cache.ReleaseSeatLock(ctx, input.FlightID, input.SeatNumber)
		}()
	}

	ticket := &domain.Ticket{
		ID:               uuid.NewString(),
		PassengerName:    input.PassengerName,
		PassengerSurname: input.PassengerSurname,
		PassengerEmail:   input.PassengerEmail,
		FlightID:         input.FlightID,
		SeatNumber:       input.SeatNumber,
	}
	if err := s.tickets.Book(ctx, ticket); err != nil {
		return nil, err
	}

	s.invalidateFlights(ctx)
	s.publish(ctx, kafka.EventTicketBooked, ticket)
	return ticket, nil
}

// CancelTicket soft-deletes a ticket and gives its seat back. A cancelled
// ticket stays cancelled; cancelling it again reports NotFound. The seat
// restore is skipped silently when the flight is gone.
func (s *BookingService) CancelTicket(ctx context.Context, ticketID string) error {
	ticket, err := s.tickets.FindByID(ctx, ticketID)
	if err != nil {
		return err
	}

	if err := s.tickets.Cancel(ctx, ticketID); err != nil {
		return err
	}

	s.invalidateFlights(ctx)
	s.publish(ctx, kafka.EventTicketCancelled, ticket)
	return nil
}

// FindTicket treats the query token as an email when it contains "@",
// otherwise as a ticket id. Email lookup may match several tickets, id
// lookup at most one.
func (s *BookingService) FindTicket(ctx context.Context, query string) ([]domain.Ticket, error) {
	if strings.Contains(query, "@") {
		return s.tickets.FindByEmail(ctx, query)
	}

	ticket, err := s.tickets.FindByID(ctx, query)
	if err != nil {
		return nil, err
	}
	return []domain.Ticket{*ticket}, nil
}

func (s *BookingService) ListTickets(ctx context.Context) ([]domain.Ticket, error) {
	return s.tickets.ListAll(ctx)
}

func (s *BookingService) invalidateFlights(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateFlights(ctx)
	}
}

// publish is best-effort: the booking already committed, a lost event must
// not fail it.
func (s *BookingService) publish(ctx context.Context, eventType string, ticket *domain.Ticket) {
	if s.producer == nil || s.eventsTopic == "" {
		return
	}
	event := kafka.TicketEvent{
		Type:           eventType,
		TicketID:       ticket.ID,
		FlightID:       ticket.FlightID,
		SeatNumber:     ticket.SeatNumber,
		PassengerEmail: ticket.PassengerEmail,
		BookedAt:       ticket.BookedAt,
	}
	if err := s.producer.Publish(ctx, s.eventsTopic, ticket.ID, event); err != nil {
		log.Printf("publish %s for ticket %s: %v", eventType, ticket.ID, err)
		return
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, ticket.ID, event); err != nil {
			log.Printf("publish notification for ticket %s: %v", ticket.ID, err)
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)
