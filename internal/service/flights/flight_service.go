package flights

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/logger"
	"github.com/Domenick1991/airport/internal/policy"
	"github.com/Domenick1991/airport/internal/repository"
	"github.com/Domenick1991/airport/internal/service/catalog"
)

const dayLayout = "2006-01-02"

type FlightUseCase interface {
	ListFlights(ctx context.Context, identity domain.Identity, filter domain.FlightFilter) ([]domain.Flight, error)
	GetFlight(ctx context.Context, identity domain.Identity, id int64) (*FlightDetails, error)
	CreateFlight(ctx context.Context, identity domain.Identity, input FlightInput) (*domain.Flight, error)
	UpdateFlight(ctx context.Context, identity domain.Identity, id int64, patch FlightPatch) (*domain.Flight, error)
	DeleteFlight(ctx context.Context, identity domain.Identity, id int64) error
	RouteFlights(ctx context.Context, identity domain.Identity, routeID int64) ([]domain.Flight, error)
	FlightCrew(ctx context.Context, identity domain.Identity, flightID int64) ([]domain.FlightCrewMember, error)
}

// FlightDetails is a flight with its occupied places.
type FlightDetails struct {
	domain.Flight
	TakenPlaces []domain.Place
}

// TicketsAvailable is the airplane capacity minus occupied places.
func (d *FlightDetails) TicketsAvailable() int {
	return d.Airplane.Capacity() - len(d.TakenPlaces)
}

type FlightInput struct {
	RouteID       int64
	AirplaneID    int64
	DepartureTime time.Time
	ArrivalTime   time.Time
}

type FlightPatch struct {
	RouteID       *int64
	AirplaneID    *int64
	DepartureTime *time.Time
	ArrivalTime   *time.Time
}

type FlightService struct {
	repo      repository.FlightRepository
	routes    repository.RouteRepository
	airplanes repository.AirplaneRepository
	members   repository.FlightCrewMemberRepository
	cache     catalog.Cache
	log       *logger.Logger
}

func NewFlightService(
	repo repository.FlightRepository,
	routes repository.RouteRepository,
	airplanes repository.AirplaneRepository,
	members repository.FlightCrewMemberRepository,
	cache catalog.Cache,
	log *logger.Logger,
) *FlightService {
	return &FlightService{repo: repo, routes: routes, airplanes: airplanes, members: members, cache: cache, log: log}
}

func (s *FlightService) ListFlights(ctx context.Context, identity domain.Identity, filter domain.FlightFilter) ([]domain.Flight, error) {
	if err := policy.Authorize(policy.AuthenticatedReadStaffWrite, identity, policy.ActionList, nil); err != nil {
		return nil, err
	}
	key := catalog.ListKey("flights",
		"source", filter.Source,
		"destination", filter.Destination,
		"departure_day", formatDay(filter.DepartureDay),
		"arrival_day", formatDay(filter.ArrivalDay),
	)
	return catalog.CachedList(ctx, s.cache, s.log, key, func() ([]domain.Flight, error) {
		return s.repo.List(ctx, filter)
	})
}

// GetFlight is never cached: taken places change with every ticket write.
func (s *FlightService) GetFlight(ctx context.Context, identity domain.Identity, id int64) (*FlightDetails, error) {
	if err := policy.Authorize(policy.AuthenticatedReadStaffWrite, identity, policy.ActionRetrieve, nil); err != nil {
		return nil, err
	}
	flight, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	taken, err := s.repo.TakenPlaces(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("taken places for flight %d: %w", id, err)
	}
	return &FlightDetails{Flight: *flight, TakenPlaces: taken}, nil
}

func (s *FlightService) CreateFlight(ctx context.Context, identity domain.Identity, input FlightInput) (*domain.Flight, error) {
	if err := policy.Authorize(policy.AuthenticatedReadStaffWrite, identity, policy.ActionCreate, nil); err != nil {
		return nil, err
	}
	flight := &domain.Flight{
		RouteID:       input.RouteID,
		AirplaneID:    input.AirplaneID,
		DepartureTime: input.DepartureTime,
		ArrivalTime:   input.ArrivalTime,
	}
	if err := validateFlight(flight); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, flight); err != nil {
		return nil, fmt.Errorf("create flight: %w", err)
	}
	s.invalidate(ctx)
	return s.repo.GetByID(ctx, flight.ID)
}

func (s *FlightService) UpdateFlight(ctx context.Context, identity domain.Identity, id int64, patch FlightPatch) (*domain.Flight, error) {
	if err := policy.Authorize(policy.AuthenticatedReadStaffWrite, identity, policy.ActionUpdate, nil); err != nil {
		return nil, err
	}
	flight, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	previousAirplane := flight.AirplaneID
	if patch.RouteID != nil {
		flight.RouteID = *patch.RouteID
	}
	if patch.AirplaneID != nil {
		flight.AirplaneID = *patch.AirplaneID
	}
	if patch.DepartureTime != nil {
		flight.DepartureTime = *patch.DepartureTime
	}
	if patch.ArrivalTime != nil {
		flight.ArrivalTime = *patch.ArrivalTime
	}
	if err := validateFlight(flight); err != nil {
		return nil, err
	}
	if flight.AirplaneID != previousAirplane {
		if err := s.checkSoldPlacesFit(ctx, flight); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Update(ctx, flight); err != nil {
		return nil, fmt.Errorf("update flight: %w", err)
	}
	s.invalidate(ctx)
	return s.repo.GetByID(ctx, id)
}

func (s *FlightService) DeleteFlight(ctx context.Context, identity domain.Identity, id int64) error {
	if err := policy.Authorize(policy.AuthenticatedReadStaffWrite, identity, policy.ActionDelete, nil); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete flight: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *FlightService) RouteFlights(ctx context.Context, identity domain.Identity, routeID int64) ([]domain.Flight, error) {
	if err := policy.Authorize(policy.AuthenticatedReadStaffWrite, identity, policy.ActionRetrieve, nil); err != nil {
		return nil, err
	}
	if _, err := s.routes.GetByID(ctx, routeID); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, domain.FlightFilter{RouteID: routeID})
}

// FlightCrew is readable by any authenticated user, unlike the crew resources themselves.
func (s *FlightService) FlightCrew(ctx context.Context, identity domain.Identity, flightID int64) ([]domain.FlightCrewMember, error) {
	if err := policy.Authorize(policy.AuthenticatedReadStaffWrite, identity, policy.ActionRetrieve, nil); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetByID(ctx, flightID); err != nil {
		return nil, err
	}
	return s.members.List(ctx, domain.FlightCrewMemberFilter{FlightID: flightID})
}

func (s *FlightService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.WithError(err).Warn("failed to invalidate flight cache")
	}
}

// checkSoldPlacesFit rejects moving a flight to an airplane that lacks a
// row or seat already sold on it.
func (s *FlightService) checkSoldPlacesFit(ctx context.Context, flight *domain.Flight) error {
	airplane, err := s.airplanes.GetByID(ctx, flight.AirplaneID)
	if err != nil {
		return err
	}
	taken, err := s.repo.TakenPlaces(ctx, flight.ID)
	if err != nil {
		return fmt.Errorf("taken places: %w", err)
	}
	if domain.CheckExtent(domain.PlaceExtent(taken), *airplane).Empty() {
		return nil
	}
	return domain.NewValidationError("airplane",
		fmt.Sprintf("airplane %d has no room for tickets already sold on this flight", airplane.ID))
}

func validateFlight(f *domain.Flight) error {
	verr := &domain.ValidationError{}
	if f.RouteID <= 0 {
		verr.Add("route", "this field is required")
	}
	if f.AirplaneID <= 0 {
		verr.Add("airplane", "this field is required")
	}
	if f.DepartureTime.IsZero() {
		verr.Add("departure_time", "this field is required")
	}
	if f.ArrivalTime.IsZero() {
		verr.Add("arrival_time", "this field is required")
	}
	if !f.DepartureTime.IsZero() && !f.ArrivalTime.IsZero() && !f.ArrivalTime.After(f.DepartureTime) {
		verr.Add("arrival_time", "arrival must be after departure")
	}
	return verr.Err()
}

func formatDay(day *time.Time) string {
	if day == nil {
		return ""
	}
	return day.UTC().Format(dayLayout)
}

func requireName(verr *domain.ValidationError, field, value string) {
	if strings.TrimSpace(value) == "" {
		verr.Add(field, "this field may not be blank")
	}
}

var _ FlightUseCase = (*FlightService)(nil)
