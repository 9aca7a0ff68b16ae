package flights

import (
	"context"
	"fmt"
	"time"

	"github.com/emirhankarahan/flyticket/internal/domain"
	"github.com/emirhankarahan/flyticket/internal/repository"
	"github.com/google/uuid"
)

type FlightUseCase interface {
	List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error)
	GetByID(ctx context.Context, id string) (*domain.Flight, error)
	Create(ctx context.Context, input FlightInput) (string, error)
	Update(ctx context.Context, id string, input FlightInput) error
	Delete(ctx context.Context, id string) error
}

type Cache interface {
	GetFlights(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error)
	SetFlights(ctx context.Context, filter domain.FlightFilter, flights []domain.Flight) error
	InvalidateFlights(ctx context.Context) error
}

type FlightInput struct {
	FromCity       string
	ToCity         string
	DepartureTime  time.Time
	ArrivalTime    time.Time
	Price          float64
	SeatsTotal     int
	SeatsAvailable int
}

func (in FlightInput) validate() error {
	switch {
	case in.FromCity == "":
		return fmt.Errorf("%w: from_city is required", domain.ErrValidation)
	case in.ToCity == "":
		return fmt.Errorf("%w: to_city is required", domain.ErrValidation)
	case in.DepartureTime.IsZero() || in.ArrivalTime.IsZero():
		return fmt.Errorf("%w: departure_time and arrival_time are required", domain.ErrValidation)
	case !in.ArrivalTime.After(in.DepartureTime):
		return fmt.Errorf("%w: arrival_time must be after departure_time", domain.ErrValidation)
	case in.Price < 0:
		return fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
	case in.SeatsTotal < 0:
		return fmt.Errorf("%w: seats_total must not be negative", domain.ErrValidation)
	case in.SeatsAvailable < 0 || in.SeatsAvailable > in.SeatsTotal:
		return fmt.Errorf("%w: seats_available must be between 0 and seats_total", domain.ErrValidation)
	}
	return nil
}

type FlightService struct {
	repo  repository.FlightRepository
	cache Cache
}

func NewFlightService(repo repository.FlightRepository, cache Cache) *FlightService {
	return &FlightService{repo: repo, cache: cache}
}

func (s *FlightService) List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx, filter); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetFlights(ctx, filter, flights)
	}
	return flights, nil
}

func (s *FlightService) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *FlightService) Create(ctx context.Context, input FlightInput) (string, error) {
	if err := input.validate(); err != nil {
		return "", err
	}
	if err := s.validateSchedule(ctx, input, ""); err != nil {
		return "", err
	}

	flight := &domain.Flight{
		ID:             uuid.NewString(),
		FromCity:       input.FromCity,
		ToCity:         input.ToCity,
		DepartureTime:  input.DepartureTime,
		ArrivalTime:    input.ArrivalTime,
		Price:          input.Price,
		SeatsTotal:     input.SeatsTotal,
		SeatsAvailable: input.SeatsAvailable,
	}
	if err := s.repo.Create(ctx, flight); err != nil {
		return "", err
	}
	s.invalidate(ctx)
	return flight.ID, nil
}

func (s *FlightService) Update(ctx context.Context, id string, input FlightInput) error {
	if err := input.validate(); err != nil {
		return err
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.validateSchedule(ctx, input, id); err != nil {
		return err
	}

	flight := &domain.Flight{
		ID:             id,
		FromCity:       input.FromCity,
		ToCity:         input.ToCity,
		DepartureTime:  input.DepartureTime,
		ArrivalTime:    input.ArrivalTime,
		Price:          input.Price,
		SeatsTotal:     input.SeatsTotal,
		SeatsAvailable: input.SeatsAvailable,
	}
	if err := s.repo.Update(ctx, flight); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *FlightService) Delete(ctx context.Context, id string) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// validateSchedule enforces the two exclusivity rules before anything is
// written. excludeID is the flight being updated, so a flight never
// conflicts with itself.
//
// Rule A: no other active flight departs from the same city within the same
// wall-clock hour of the same date. Rule B: no other active flight arrives
// at the same city at the exact same instant.
func (s *FlightService) validateSchedule(ctx context.Context, input FlightInput, excludeID string) error {
	windowStart := hourStart(input.DepartureTime)
	windowEnd := windowStart.Add(time.Hour)

	count, err := s.repo.CountDeparturesInWindow(ctx, input.FromCity, windowStart, windowEnd, excludeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrDepartureConflict
	}

	count, err = s.repo.CountArrivalsAt(ctx, input.ToCity, input.ArrivalTime, excludeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrArrivalConflict
	}
	return nil
}

// hourStart truncates t to the top of its hour in t's own location, so the
// rule follows the origin's wall clock even for zones with fractional
// offsets.
func hourStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
}

func (s *FlightService) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateFlights(ctx)
	}
}

var _ FlightUseCase = (*FlightService)(nil)
