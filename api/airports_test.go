package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/logger"
	"github.com/Domenick1991/airport/internal/service/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAirportRepository struct {
	mock.Mock
}

func (m *MockAirportRepository) List(ctx context.Context, filter domain.AirportFilter) ([]domain.Airport, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Airport), args.Error(1)
}

func (m *MockAirportRepository) GetByID(ctx context.Context, id int64) (*domain.Airport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airport), args.Error(1)
}

func (m *MockAirportRepository) Create(ctx context.Context, airport *domain.Airport) error {
	args := m.Called(ctx, airport)
	if args.Error(0) == nil {
		airport.ID = 1
	}
	return args.Error(0)
}

func (m *MockAirportRepository) Update(ctx context.Context, airport *domain.Airport) error {
	return m.Called(ctx, airport).Error(0)
}

func (m *MockAirportRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func newAirportRouter(repo *MockAirportRepository) http.Handler {
	service := catalog.NewCatalogService(repo, nil, nil, nil, nil, logger.NewNop())
	return newTestRouter("/airports", NewAirportHandler(service))
}

func TestAirportHandler_Access(t *testing.T) {
	heathrow := domain.Airport{ID: 1, Name: "Heathrow", ClosestBigCity: "London"}
	payload := map[string]any{"name": "Heathrow", "closest_big_city": "London"}

	t.Run("anonymous list", func(t *testing.T) {
		repo := &MockAirportRepository{}
		w := perform(t, newAirportRouter(repo), http.MethodGet, "/airports", nil, nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})

	t.Run("customer list", func(t *testing.T) {
		repo := &MockAirportRepository{}
		repo.On("List", mock.Anything, domain.AirportFilter{City: "London"}).Return([]domain.Airport{heathrow}, nil)

		w := perform(t, newAirportRouter(repo), http.MethodGet, "/airports?city=London", aliceUser, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var body []airportResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, []airportResponse{{ID: 1, Name: "Heathrow", ClosestBigCity: "London"}}, body)
		repo.AssertExpectations(t)
	})

	t.Run("customer create", func(t *testing.T) {
		repo := &MockAirportRepository{}
		w := perform(t, newAirportRouter(repo), http.MethodPost, "/airports", aliceUser, payload)

		assert.Equal(t, http.StatusForbidden, w.Code)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("customer create with invalid body is still forbidden", func(t *testing.T) {
		repo := &MockAirportRepository{}
		w := perform(t, newAirportRouter(repo), http.MethodPost, "/airports", aliceUser, map[string]any{})

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("staff create then retrieve", func(t *testing.T) {
		repo := &MockAirportRepository{}
		repo.On("Create", mock.Anything, &domain.Airport{Name: "Heathrow", ClosestBigCity: "London"}).Return(nil)
		repo.On("GetByID", mock.Anything, int64(1)).Return(&heathrow, nil)
		router := newAirportRouter(repo)

		w := perform(t, router, http.MethodPost, "/airports", staffUser, payload)
		assert.Equal(t, http.StatusCreated, w.Code)

		w = perform(t, router, http.MethodGet, "/airports/1", aliceUser, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":1,"name":"Heathrow","closest_big_city":"London"}`, w.Body.String())
		repo.AssertExpectations(t)
	})
}

func TestAirportHandler_CreateValidation(t *testing.T) {
	repo := &MockAirportRepository{}

	w := perform(t, newAirportRouter(repo), http.MethodPost, "/airports", staffUser, map[string]any{"name": "Heathrow"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, map[string][]string{"closest_big_city": {"this field is required"}}, decodeErrors(t, w))
}

func TestAirportHandler_NotFound(t *testing.T) {
	repo := &MockAirportRepository{}
	repo.On("GetByID", mock.Anything, int64(7)).Return(nil, domain.NotFound("airport", 7))
	router := newAirportRouter(repo)

	w := perform(t, router, http.MethodGet, "/airports/7", aliceUser, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = perform(t, router, http.MethodGet, "/airports/abc", aliceUser, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAirportHandler_PatchAndDelete(t *testing.T) {
	repo := &MockAirportRepository{}
	repo.On("GetByID", mock.Anything, int64(1)).Return(&domain.Airport{ID: 1, Name: "Heathrow", ClosestBigCity: "London"}, nil)
	repo.On("Update", mock.Anything, &domain.Airport{ID: 1, Name: "Heathrow", ClosestBigCity: "Greater London"}).Return(nil)
	repo.On("Delete", mock.Anything, int64(1)).Return(nil)
	router := newAirportRouter(repo)

	w := perform(t, router, http.MethodPatch, "/airports/1", staffUser, map[string]any{"closest_big_city": "Greater London"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(t, router, http.MethodDelete, "/airports/1", aliceUser, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = perform(t, router, http.MethodDelete, "/airports/1", staffUser, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	repo.AssertExpectations(t)
}
