package flights

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *MockFlightRepository) Update(ctx context.Context, flight *domain.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *MockFlightRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFlightRepository) TakenPlaces(ctx context.Context, flightID int64) ([]domain.Place, error) {
	args := m.Called(ctx, flightID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Place), args.Error(1)
}

type MockRouteRepository struct {
	mock.Mock
}

func (m *MockRouteRepository) List(ctx context.Context, filter domain.RouteFilter) ([]domain.Route, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Route), args.Error(1)
}

func (m *MockRouteRepository) GetByID(ctx context.Context, id int64) (*domain.Route, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Route), args.Error(1)
}

func (m *MockRouteRepository) Create(ctx context.Context, route *domain.Route) error {
	return m.Called(ctx, route).Error(0)
}

func (m *MockRouteRepository) Update(ctx context.Context, route *domain.Route) error {
	return m.Called(ctx, route).Error(0)
}

func (m *MockRouteRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) List(ctx context.Context, filter domain.FlightCrewMemberFilter) ([]domain.FlightCrewMember, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.FlightCrewMember), args.Error(1)
}

func (m *MockMemberRepository) GetByID(ctx context.Context, id int64) (*domain.FlightCrewMember, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FlightCrewMember), args.Error(1)
}

func (m *MockMemberRepository) Create(ctx context.Context, member *domain.FlightCrewMember) error {
	args := m.Called(ctx, member)
	if args.Error(0) == nil {
		member.ID = 1
	}
	return args.Error(0)
}

func (m *MockMemberRepository) Update(ctx context.Context, member *domain.FlightCrewMember) error {
	return m.Called(ctx, member).Error(0)
}

func (m *MockMemberRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Version(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCache) Get(ctx context.Context, version int64, key string, dst any) (bool, error) {
	args := m.Called(ctx, version, key, dst)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, version int64, key string, value any) error {
	return m.Called(ctx, version, key, value).Error(0)
}

func (m *MockCache) Invalidate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

var (
	staff    = domain.Identity{UserID: 1, Email: "admin@example.com", IsStaff: true}
	customer = domain.Identity{UserID: 2, Email: "user@example.com"}
)

func sampleFlight() *domain.Flight {
	departure := time.Date(2024, 1, 22, 10, 0, 0, 0, time.UTC)
	return &domain.Flight{
		ID:            4,
		RouteID:       1,
		AirplaneID:    2,
		DepartureTime: departure,
		ArrivalTime:   departure.Add(3 * time.Hour),
		Airplane:      domain.Airplane{ID: 2, Name: "A320", Rows: 10, SeatsInRow: 6},
	}
}

func newService(repo *MockFlightRepository, routes *MockRouteRepository, members *MockMemberRepository, cache *MockCache) *FlightService {
	if cache == nil {
		return NewFlightService(repo, routes, nil, members, nil, logger.NewNop())
	}
	return NewFlightService(repo, routes, nil, members, cache, logger.NewNop())
}

type MockAirplaneRepository struct {
	mock.Mock
}

func (m *MockAirplaneRepository) List(ctx context.Context, filter domain.AirplaneFilter) ([]domain.Airplane, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Airplane), args.Error(1)
}

func (m *MockAirplaneRepository) GetByID(ctx context.Context, id int64) (*domain.Airplane, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airplane), args.Error(1)
}

func (m *MockAirplaneRepository) Create(ctx context.Context, airplane *domain.Airplane) error {
	return m.Called(ctx, airplane).Error(0)
}

func (m *MockAirplaneRepository) Update(ctx context.Context, airplane *domain.Airplane) error {
	return m.Called(ctx, airplane).Error(0)
}

func (m *MockAirplaneRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAirplaneRepository) SoldExtent(ctx context.Context, id int64) (domain.Place, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Place), args.Error(1)
}

func TestFlightService_ListFlights_CacheMiss(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := newService(mockRepo, nil, nil, mockCache)

	ctx := context.Background()
	day := time.Date(2024, 1, 22, 0, 0, 0, 0, time.UTC)
	filter := domain.FlightFilter{Source: "Heathrow", DepartureDay: &day}
	flights := []domain.Flight{*sampleFlight()}
	key := "flights?departure_day=2024-01-22&source=Heathrow"

	mockCache.On("Version", ctx).Return(int64(3), nil)
	mockCache.On("Get", ctx, int64(3), key, mock.Anything).Return(false, nil)
	mockRepo.On("List", ctx, filter).Return(flights, nil)
	mockCache.On("Set", ctx, int64(3), key, flights).Return(nil)

	result, err := service.ListFlights(ctx, customer, filter)

	require.NoError(t, err)
	assert.Equal(t, flights, result)
	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestFlightService_ListFlights_CacheHit(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := newService(mockRepo, nil, nil, mockCache)

	ctx := context.Background()
	mockCache.On("Version", ctx).Return(int64(3), nil)
	mockCache.On("Get", ctx, int64(3), "flights?", mock.Anything).Return(true, nil)

	_, err := service.ListFlights(ctx, customer, domain.FlightFilter{})

	require.NoError(t, err)
	mockRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestFlightService_ListFlights_CacheErrorFallsBackToRepository(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := newService(mockRepo, nil, nil, mockCache)

	ctx := context.Background()
	flights := []domain.Flight{*sampleFlight()}
	mockCache.On("Version", ctx).Return(int64(3), nil)
	mockCache.On("Get", ctx, int64(3), "flights?", mock.Anything).Return(false, errors.New("redis down"))
	mockRepo.On("List", ctx, domain.FlightFilter{}).Return(flights, nil)
	mockCache.On("Set", ctx, int64(3), "flights?", flights).Return(errors.New("redis down"))

	result, err := service.ListFlights(ctx, customer, domain.FlightFilter{})

	require.NoError(t, err)
	assert.Len(t, result, 1)
}

func TestFlightService_ListFlights_Anonymous(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	service := newService(mockRepo, nil, nil, nil)

	_, err := service.ListFlights(context.Background(), domain.Identity{}, domain.FlightFilter{})

	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	mockRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestFlightService_GetFlight_TicketsAvailable(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	service := newService(mockRepo, nil, nil, nil)

	ctx := context.Background()
	taken := []domain.Place{{Row: 1, Seat: 1}, {Row: 2, Seat: 3}}
	mockRepo.On("GetByID", ctx, int64(4)).Return(sampleFlight(), nil)
	mockRepo.On("TakenPlaces", ctx, int64(4)).Return(taken, nil)

	details, err := service.GetFlight(ctx, customer, 4)

	require.NoError(t, err)
	assert.Equal(t, taken, details.TakenPlaces)
	assert.Equal(t, 58, details.TicketsAvailable())
	mockRepo.AssertExpectations(t)
}

func TestFlightService_GetFlight_NotFound(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	service := newService(mockRepo, nil, nil, nil)

	ctx := context.Background()
	mockRepo.On("GetByID", ctx, int64(999)).Return(nil, domain.NotFound("flight", 999))

	details, err := service.GetFlight(ctx, customer, 999)

	assert.Nil(t, details)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	mockRepo.AssertNotCalled(t, "TakenPlaces", mock.Anything, mock.Anything)
}

func TestFlightService_CreateFlight(t *testing.T) {
	departure := time.Date(2024, 1, 22, 10, 0, 0, 0, time.UTC)
	input := FlightInput{RouteID: 1, AirplaneID: 2, DepartureTime: departure, ArrivalTime: departure.Add(time.Hour)}

	t.Run("customer is forbidden", func(t *testing.T) {
		mockRepo := &MockFlightRepository{}
		service := newService(mockRepo, nil, nil, nil)

		_, err := service.CreateFlight(context.Background(), customer, input)

		assert.ErrorIs(t, err, domain.ErrForbidden)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("staff creates and invalidates cache", func(t *testing.T) {
		mockRepo := &MockFlightRepository{}
		mockCache := &MockCache{}
		service := newService(mockRepo, nil, nil, mockCache)
		ctx := context.Background()

		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Flight")).
			Run(func(args mock.Arguments) { args.Get(1).(*domain.Flight).ID = 4 }).
			Return(nil)
		mockRepo.On("GetByID", ctx, int64(4)).Return(sampleFlight(), nil)
		mockCache.On("Invalidate", ctx).Return(nil)

		flight, err := service.CreateFlight(ctx, staff, input)

		require.NoError(t, err)
		assert.Equal(t, int64(4), flight.ID)
		mockRepo.AssertExpectations(t)
		mockCache.AssertExpectations(t)
	})

	t.Run("arrival before departure", func(t *testing.T) {
		mockRepo := &MockFlightRepository{}
		service := newService(mockRepo, nil, nil, nil)
		bad := input
		bad.ArrivalTime = departure.Add(-time.Hour)

		_, err := service.CreateFlight(context.Background(), staff, bad)

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "arrival_time")
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestFlightService_UpdateFlight_Patch(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockAirplanes := &MockAirplaneRepository{}
	service := NewFlightService(mockRepo, nil, mockAirplanes, nil, nil, logger.NewNop())
	ctx := context.Background()

	newAirplane := int64(7)
	mockRepo.On("GetByID", ctx, int64(4)).Return(sampleFlight(), nil)
	mockAirplanes.On("GetByID", ctx, int64(7)).Return(&domain.Airplane{ID: 7, Rows: 30, SeatsInRow: 6}, nil)
	mockRepo.On("TakenPlaces", ctx, int64(4)).Return([]domain.Place{{Row: 10, Seat: 6}}, nil)
	mockRepo.On("Update", ctx, mock.MatchedBy(func(f *domain.Flight) bool {
		return f.AirplaneID == 7 && f.RouteID == 1
	})).Return(nil)

	_, err := service.UpdateFlight(ctx, staff, 4, FlightPatch{AirplaneID: &newAirplane})

	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestFlightService_UpdateFlight_AirplaneTooSmallForSoldTickets(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockAirplanes := &MockAirplaneRepository{}
	service := NewFlightService(mockRepo, nil, mockAirplanes, nil, nil, logger.NewNop())
	ctx := context.Background()

	smaller := int64(8)
	mockRepo.On("GetByID", ctx, int64(4)).Return(sampleFlight(), nil)
	mockAirplanes.On("GetByID", ctx, int64(8)).Return(&domain.Airplane{ID: 8, Rows: 5, SeatsInRow: 6}, nil)
	mockRepo.On("TakenPlaces", ctx, int64(4)).Return([]domain.Place{{Row: 2, Seat: 1}, {Row: 9, Seat: 3}}, nil)

	_, err := service.UpdateFlight(ctx, staff, 4, FlightPatch{AirplaneID: &smaller})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"airplane 8 has no room for tickets already sold on this flight"}, verr.Fields["airplane"])
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestFlightService_UpdateFlight_SameAirplaneSkipsSoldCheck(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockAirplanes := &MockAirplaneRepository{}
	service := NewFlightService(mockRepo, nil, mockAirplanes, nil, nil, logger.NewNop())
	ctx := context.Background()

	same := int64(2)
	mockRepo.On("GetByID", ctx, int64(4)).Return(sampleFlight(), nil)
	mockRepo.On("Update", ctx, mock.Anything).Return(nil)

	_, err := service.UpdateFlight(ctx, staff, 4, FlightPatch{AirplaneID: &same})

	require.NoError(t, err)
	mockAirplanes.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "TakenPlaces", mock.Anything, mock.Anything)
}

func TestFlightService_DeleteFlight(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	service := newService(mockRepo, nil, nil, nil)
	ctx := context.Background()

	mockRepo.On("Delete", ctx, int64(4)).Return(domain.NotFound("flight", 4))

	err := service.DeleteFlight(ctx, staff, 4)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFlightService_RouteFlights(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockRoutes := &MockRouteRepository{}
	service := newService(mockRepo, mockRoutes, nil, nil)
	ctx := context.Background()

	mockRoutes.On("GetByID", ctx, int64(1)).Return(&domain.Route{ID: 1}, nil)
	mockRepo.On("List", ctx, domain.FlightFilter{RouteID: 1}).Return([]domain.Flight{*sampleFlight()}, nil)

	flights, err := service.RouteFlights(ctx, customer, 1)

	require.NoError(t, err)
	assert.Len(t, flights, 1)

	mockRoutes.On("GetByID", ctx, int64(2)).Return(nil, domain.NotFound("route", 2))
	_, err = service.RouteFlights(ctx, customer, 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFlightService_FlightCrew(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockMembers := &MockMemberRepository{}
	service := newService(mockRepo, nil, mockMembers, nil)
	ctx := context.Background()

	members := []domain.FlightCrewMember{{ID: 1, FlightID: 4, CrewID: 3}}
	mockRepo.On("GetByID", ctx, int64(4)).Return(sampleFlight(), nil)
	mockMembers.On("List", ctx, domain.FlightCrewMemberFilter{FlightID: 4}).Return(members, nil)

	result, err := service.FlightCrew(ctx, customer, 4)

	require.NoError(t, err)
	assert.Equal(t, members, result)
}
