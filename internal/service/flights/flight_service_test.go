package flights

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/emirhankarahan/flyticket/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// memFlightRepo keeps flights in memory and answers the conflict queries
// with the same semantics as the SQL: active flights only, half-open
// departure window, exact arrival instant, excluded id skipped.
type memFlightRepo struct {
	mu      sync.Mutex
	flights map[string]*domain.Flight
}

func newMemFlightRepo() *memFlightRepo {
	return &memFlightRepo{flights: make(map[string]*domain.Flight)}
}

func (r *memFlightRepo) List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Flight
	for _, f := range r.flights {
		if f.IsDeleted {
			continue
		}
		if filter.FromCity != "" && f.FromCity != filter.FromCity {
			continue
		}
		if filter.ToCity != "" && f.ToCity != filter.ToCity {
			continue
		}
		if filter.Date != "" && f.DepartureTime.Format("2006-01-02") != filter.Date {
			continue
		}
		out = append(out, *f)
	}
	return out, nil
}

func (r *memFlightRepo) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.flights[id]
	if !ok || f.IsDeleted {
		return nil, domain.ErrFlightNotFound
	}
	copied := *f
	return &copied, nil
}

func (r *memFlightRepo) Create(ctx context.Context, flight *domain.Flight) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *flight
	r.flights[flight.ID] = &copied
	return nil
}

func (r *memFlightRepo) Update(ctx context.Context, flight *domain.Flight) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.flights[flight.ID]
	if !ok || existing.IsDeleted {
		return domain.ErrFlightNotFound
	}
	copied := *flight
	r.flights[flight.ID] = &copied
	return nil
}

func (r *memFlightRepo) SoftDelete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.flights[id]; ok {
		f.IsDeleted = true
	}
	return nil
}

func (r *memFlightRepo) CountDeparturesInWindow(ctx context.Context, fromCity string, windowStart, windowEnd time.Time, excludeID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, f := range r.flights {
		if f.IsDeleted || f.ID == excludeID || f.FromCity != fromCity {
			continue
		}
		if !f.DepartureTime.Before(windowStart) && f.DepartureTime.Before(windowEnd) {
			count++
		}
	}
	return count, nil
}

func (r *memFlightRepo) CountArrivalsAt(ctx context.Context, toCity string, arrival time.Time, excludeID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, f := range r.flights {
		if f.IsDeleted || f.ID == excludeID || f.ToCity != toCity {
			continue
		}
		if f.ArrivalTime.Equal(arrival) {
			count++
		}
	}
	return count, nil
}

func validInput(dep, arr time.Time) FlightInput {
	return FlightInput{
		FromCity:       "city-a",
		ToCity:         "city-b",
		DepartureTime:  dep,
		ArrivalTime:    arr,
		Price:          100,
		SeatsTotal:     2,
		SeatsAvailable: 2,
	}
}

func TestFlightService_CreateAndGet_RoundTrip(t *testing.T) {
	repo := newMemFlightRepo()
	service := NewFlightService(repo, nil)
	ctx := context.Background()

	dep := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	arr := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	id, err := service.Create(ctx, validInput(dep, arr))
	assert.NoError(t, err)
	assert.NotEmpty(t, id)

	flight, err := service.GetByID(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, "city-a", flight.FromCity)
	assert.Equal(t, "city-b", flight.ToCity)
	assert.True(t, flight.DepartureTime.Equal(dep))
	assert.True(t, flight.ArrivalTime.Equal(arr))
	assert.Equal(t, float64(100), flight.Price)
	assert.Equal(t, 2, flight.SeatsTotal)
	assert.Equal(t, 2, flight.SeatsAvailable)
	assert.False(t, flight.IsDeleted)
}

func TestFlightService_Create_DepartureHourConflict(t *testing.T) {
	repo := newMemFlightRepo()
	service := NewFlightService(repo, nil)
	ctx := context.Background()

	day := func(h, m int) time.Time { return time.Date(2025, 6, 1, h, m, 0, 0, time.UTC) }

	_, err := service.Create(ctx, validInput(day(10, 5), day(12, 0)))
	assert.NoError(t, err)

	// 10:45 shares the 10 o'clock hour with 10:05.
	_, err = service.Create(ctx, validInput(day(10, 45), day(13, 0)))
	assert.ErrorIs(t, err, domain.ErrDepartureConflict)

	// 11:05 is the next hour.
	_, err = service.Create(ctx, validInput(day(11, 5), day(14, 0)))
	assert.NoError(t, err)

	// Same clock hour on another date is fine.
	nextDay := validInput(
		time.Date(2025, 6, 2, 10, 30, 0, 0, time.UTC),
		time.Date(2025, 6, 2, 12, 30, 0, 0, time.UTC))
	_, err = service.Create(ctx, nextDay)
	assert.NoError(t, err)
}

func TestFlightService_Create_ArrivalInstantConflict(t *testing.T) {
	repo := newMemFlightRepo()
	service := NewFlightService(repo, nil)
	ctx := context.Background()

	arr := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	first := validInput(time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC), arr)
	_, err := service.Create(ctx, first)
	assert.NoError(t, err)

	// Different origin, same destination, identical arrival instant.
	second := validInput(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC), arr)
	second.FromCity = "city-c"
	_, err = service.Create(ctx, second)
	assert.ErrorIs(t, err, domain.ErrArrivalConflict)

	// One second apart is allowed.
	third := validInput(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC), arr.Add(time.Second))
	third.FromCity = "city-c"
	_, err = service.Create(ctx, third)
	assert.NoError(t, err)
}

func TestFlightService_Update_ExcludesSelf(t *testing.T) {
	repo := newMemFlightRepo()
	service := NewFlightService(repo, nil)
	ctx := context.Background()

	dep := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	arr := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	id, err := service.Create(ctx, validInput(dep, arr))
	assert.NoError(t, err)

	// Re-saving the same schedule must not conflict with itself.
	updated := validInput(dep, arr)
	updated.Price = 150
	assert.NoError(t, service.Update(ctx, id, updated))

	flight, err := service.GetByID(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, float64(150), flight.Price)
}

func TestFlightService_Update_NotFound(t *testing.T) {
	repo := newMemFlightRepo()
	service := NewFlightService(repo, nil)
	ctx := context.Background()

	dep := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	err := service.Update(ctx, "missing", validInput(dep, dep.Add(2*time.Hour)))
	assert.ErrorIs(t, err, domain.ErrFlightNotFound)
}

func TestFlightService_Delete_FreesSchedule(t *testing.T) {
	repo := newMemFlightRepo()
	service := NewFlightService(repo, nil)
	ctx := context.Background()

	dep := time.Date(2025, 6, 1, 10, 5, 0, 0, time.UTC)
	arr := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	id, err := service.Create(ctx, validInput(dep, arr))
	assert.NoError(t, err)

	assert.NoError(t, service.Delete(ctx, id))
	// Idempotent.
	assert.NoError(t, service.Delete(ctx, id))

	_, err = service.GetByID(ctx, id)
	assert.ErrorIs(t, err, domain.ErrFlightNotFound)

	// A deleted flight's slot is reusable.
	_, err = service.Create(ctx, validInput(dep.Add(10*time.Minute), arr))
	assert.NoError(t, err)
}

func TestFlightService_Create_ValidationErrors(t *testing.T) {
	service := NewFlightService(newMemFlightRepo(), nil)
	ctx := context.Background()

	dep := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	arr := dep.Add(2 * time.Hour)

	testCases := []struct {
		name   string
		mutate func(*FlightInput)
	}{
		{"missing from_city", func(in *FlightInput) { in.FromCity = "" }},
		{"missing to_city", func(in *FlightInput) { in.ToCity = "" }},
		{"arrival before departure", func(in *FlightInput) { in.ArrivalTime = dep.Add(-time.Hour) }},
		{"negative price", func(in *FlightInput) { in.Price = -1 }},
		{"negative seats", func(in *FlightInput) { in.SeatsTotal = -1 }},
		{"available above total", func(in *FlightInput) { in.SeatsAvailable = 3 }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput(dep, arr)
			tc.mutate(&input)
			_, err := service.Create(ctx, input)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestFlightService_List_Filters(t *testing.T) {
	repo := newMemFlightRepo()
	service := NewFlightService(repo, nil)
	ctx := context.Background()

	mk := func(from, to string, h int) {
		in := validInput(
			time.Date(2025, 6, 1, h, 0, 0, 0, time.UTC),
			time.Date(2025, 6, 1, h+2, 30, 0, 0, time.UTC))
		in.FromCity, in.ToCity = from, to
		_, err := service.Create(ctx, in)
		assert.NoError(t, err)
	}
	mk("city-a", "city-b", 8)
	mk("city-a", "city-c", 9)
	mk("city-b", "city-c", 10)

	flights, err := service.List(ctx, domain.FlightFilter{FromCity: "city-a"})
	assert.NoError(t, err)
	assert.Len(t, flights, 2)

	flights, err = service.List(ctx, domain.FlightFilter{FromCity: "city-a", ToCity: "city-c"})
	assert.NoError(t, err)
	assert.Len(t, flights, 1)

	flights, err = service.List(ctx, domain.FlightFilter{Date: "2025-06-02"})
	assert.NoError(t, err)
	assert.Empty(t, flights)
}

type MockFlightCache struct {
	mock.Mock
}

func (m *MockFlightCache) GetFlights(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightCache) SetFlights(ctx context.Context, filter domain.FlightFilter, flights []domain.Flight) error {
	args := m.Called(ctx, filter, flights)
	return args.Error(0)
}

func (m *MockFlightCache) InvalidateFlights(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestFlightService_List_CacheHit(t *testing.T) {
	repo := newMemFlightRepo()
	mockCache := &MockFlightCache{}
	service := NewFlightService(repo, mockCache)
	ctx := context.Background()

	cached := []domain.Flight{{ID: "flight-1", FromCity: "city-a"}}
	filter := domain.FlightFilter{FromCity: "city-a"}
	mockCache.On("GetFlights", ctx, filter).Return(cached, nil).Once()

	flights, err := service.List(ctx, filter)
	assert.NoError(t, err)
	assert.Equal(t, cached, flights)
	mockCache.AssertExpectations(t)
}

func TestHourStart_WallClock(t *testing.T) {
	// Wall-clock truncation must hold in zones with fractional offsets.
	kathmandu := time.FixedZone("UTC+5:45", (5*60+45)*60)
	tm := time.Date(2025, 6, 1, 10, 45, 30, 0, kathmandu)
	start := hourStart(tm)
	assert.Equal(t, 10, start.Hour())
	assert.Equal(t, 0, start.Minute())
	assert.Equal(t, kathmandu, start.Location())
}
