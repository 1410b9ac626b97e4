package catalog

import (
	"context"
	"fmt"
	"net/url"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/logger"
	"github.com/Domenick1991/airport/internal/policy"
	"github.com/Domenick1991/airport/internal/repository"
)

type CatalogUseCase interface {
	ListAirports(ctx context.Context, identity domain.Identity, filter domain.AirportFilter) ([]domain.Airport, error)
	GetAirport(ctx context.Context, identity domain.Identity, id int64) (*domain.Airport, error)
	CreateAirport(ctx context.Context, identity domain.Identity, input AirportInput) (*domain.Airport, error)
	UpdateAirport(ctx context.Context, identity domain.Identity, id int64, patch AirportPatch) (*domain.Airport, error)
	DeleteAirport(ctx context.Context, identity domain.Identity, id int64) error
	AirportArrivals(ctx context.Context, identity domain.Identity, id int64) ([]domain.Route, error)
	AirportDepartures(ctx context.Context, identity domain.Identity, id int64) ([]domain.Route, error)

	ListRoutes(ctx context.Context, identity domain.Identity, filter domain.RouteFilter) ([]domain.Route, error)
	GetRoute(ctx context.Context, identity domain.Identity, id int64) (*domain.Route, error)
	CreateRoute(ctx context.Context, identity domain.Identity, input RouteInput) (*domain.Route, error)
	UpdateRoute(ctx context.Context, identity domain.Identity, id int64, patch RoutePatch) (*domain.Route, error)
	DeleteRoute(ctx context.Context, identity domain.Identity, id int64) error

	ListAirplaneTypes(ctx context.Context, identity domain.Identity, filter domain.AirplaneTypeFilter) ([]domain.AirplaneType, error)
	GetAirplaneType(ctx context.Context, identity domain.Identity, id int64) (*domain.AirplaneType, error)
	CreateAirplaneType(ctx context.Context, identity domain.Identity, input AirplaneTypeInput) (*domain.AirplaneType, error)
	UpdateAirplaneType(ctx context.Context, identity domain.Identity, id int64, patch AirplaneTypePatch) (*domain.AirplaneType, error)
	DeleteAirplaneType(ctx context.Context, identity domain.Identity, id int64) error

	ListAirplanes(ctx context.Context, identity domain.Identity, filter domain.AirplaneFilter) ([]domain.Airplane, error)
	GetAirplane(ctx context.Context, identity domain.Identity, id int64) (*domain.Airplane, error)
	CreateAirplane(ctx context.Context, identity domain.Identity, input AirplaneInput) (*domain.Airplane, error)
	UpdateAirplane(ctx context.Context, identity domain.Identity, id int64, patch AirplanePatch) (*domain.Airplane, error)
	DeleteAirplane(ctx context.Context, identity domain.Identity, id int64) error
}

// Cache holds list responses until the next catalog write. Entries are
// read and written under an explicit version so a list loaded before a
// write can never be stored where readers after the write look.
type Cache interface {
	Version(ctx context.Context) (int64, error)
	Get(ctx context.Context, version int64, key string, dst any) (bool, error)
	Set(ctx context.Context, version int64, key string, value any) error
	Invalidate(ctx context.Context) error
}

const accessPolicy = policy.AuthenticatedReadStaffWrite

type CatalogService struct {
	airports      repository.AirportRepository
	routes        repository.RouteRepository
	airplaneTypes repository.AirplaneTypeRepository
	airplanes     repository.AirplaneRepository
	cache         Cache
	log           *logger.Logger
}

func NewCatalogService(
	airports repository.AirportRepository,
	routes repository.RouteRepository,
	airplaneTypes repository.AirplaneTypeRepository,
	airplanes repository.AirplaneRepository,
	cache Cache,
	log *logger.Logger,
) *CatalogService {
	return &CatalogService{
		airports:      airports,
		routes:        routes,
		airplaneTypes: airplaneTypes,
		airplanes:     airplanes,
		cache:         cache,
		log:           log,
	}
}

func (s *CatalogService) ListAirports(ctx context.Context, identity domain.Identity, filter domain.AirportFilter) ([]domain.Airport, error) {
	if err := policy.Authorize(accessPolicy, identity, policy.ActionList, nil); err != nil {
		return nil, err
	}
	key := listKey("airports", "name", filter.Name, "city", filter.City)
	return cachedList(ctx, s, key, func() ([]domain.Airport, error) {
		return s.airports.List(ctx, filter)
	})
}

func (s *CatalogService) GetAirport(ctx context.Context, identity domain.Identity, id int64) (*domain.Airport, error) {
	if err := policy.Authorize(accessPolicy, identity, policy.ActionRetrieve, nil); err != nil {
		return nil, err
	}
	return s.airports.GetByID(ctx, id)
}

func (s *CatalogService) CreateAirport(ctx context.Context, identity domain.Identity, input AirportInput) (*domain.Airport, error) {
	if err := policy.Authorize(accessPolicy, identity, policy.ActionCreate, nil); err != nil {
		return nil, err
	}
	airport := &domain.Airport{Name: input.Name, ClosestBigCity: input.ClosestBigCity}
	if err := validateAirport(airport); err != nil {
		return nil, err
	}
	if err := s.airports.Create(ctx, airport); err != nil {
		return nil, fmt.Errorf("create airport: %w", err)
	}
	s.invalidate(ctx)
	return airport, nil
}

func (s *CatalogService) UpdateAirport(ctx context.Context, identity domain.Identity, id int64, patch AirportPatch) (*domain.Airport, error) {
	if err := policy.Authorize(accessPolicy, identity, policy.ActionUpdate, nil); err != nil {
		return nil, err
	}
	airport, err := s.airports.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	setIfPresent(&airport.Name, patch.Name)
	setIfPresent(&airport.ClosestBigCity, patch.ClosestBigCity)
	if err := validateAirport(airport); err != nil {
		return nil, err
	}
	if err := s.airports.Update(ctx, airport); err != nil {
		return nil, fmt.Errorf("update airport: %w", err)
	}
	s.invalidate(ctx)
	return airport, nil
}

func (s *CatalogService) DeleteAirport(ctx context.Context, identity domain.Identity, id int64) error {
	if err := policy.Authorize(accessPolicy, identity, policy.ActionDelete, nil); err != nil {
		return err
	}
	if err := s.airports.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete airport: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

// AirportArrivals lists routes that end at the airport.
func (s *CatalogService) AirportArrivals(ctx context.Context, identity domain.Identity, id int64) ([]domain.Route, error) {
	return s.airportRoutes(ctx, identity, id, domain.RouteFilter{DestinationID: id})
}

// AirportDepartures lists routes that start at the airport.
func (s *CatalogService) AirportDepartures(ctx context.Context, identity domain.Identity, id int64) ([]domain.Route, error) {
	return s.airportRoutes(ctx, identity, id, domain.RouteFilter{SourceID: id})
}

func (s *CatalogService) airportRoutes(ctx context.Context, identity domain.Identity, id int64, filter domain.RouteFilter) ([]domain.Route, error) {
	if err := policy.Authorize(accessPolicy, identity, policy.ActionRetrieve, nil); err != nil {
		return nil, err
	}
	if _, err := s.airports.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.routes.List(ctx, filter)
}

func (s *CatalogService) ListRoutes(ctx context.Context, identity domain.Identity, filter domain.RouteFilter) ([]domain.Route, error) {
	if err := policy.Authorize(accessPolicy, identity, policy.ActionList, nil); err != nil {
		return nil, err
	}
	key := listKey("routes", "source", filter.Source, "destination", filter.Destination)
	return cachedList(ctx, s, key, func() ([]domain.Route, error) {
		return s.routes.List(ctx, filter)
	})
}

func (s *CatalogService) GetRoute(ctx context.Context, identity domain.Identity, id int64) (*domain.Route, error) {
	if err := policy.Authorize(accessPolicy, identity, policy.ActionRetrieve, nil); err != nil {
		return nil, err
	}
	return s.routes.GetByID(ctx, id)
}

func (s *CatalogService) CreateRoute(ctx context.Context, identity domain.Identity, input RouteInput) (*domain.Route, error) {
	if err := policy.Authorize(accessPolicy, identity, policy.ActionCreate, nil); err != nil {
		return nil, err
	}
	route := &domain.Route{SourceID: input.SourceID, DestinationID: input.DestinationID, Distance: input.Distance}
	if err := validateRoute(route); err != nil {
		return nil, err
	}
	if err := s.routes.Create(ctx, route); err != nil {
		return nil, fmt.Errorf("create route: %w", err)
	}
	s.invalidate(ctx)
	return s.routes.GetByID(ctx, route.ID)
}

func (s *CatalogService) UpdateRoute(ctx context.Context, identity domain.Identity, id int64, patch RoutePatch) (*domain.Route, error) {
	if err := policy.Authorize(accessPolicy, identity, policy.ActionUpdate, nil); err != nil {
		return nil, err
	}
	route, err := s.routes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	setIfPresent(&route.SourceID, patch.SourceID)
	setIfPresent(&route.DestinationID, patch.DestinationID)
	setIfPresent(&route.Distance, patch.Distance)
	if err := validateRoute(route); err != nil {
		return nil, err
	}
	if err := s.routes.Update(ctx, route); err != nil {
		return nil, fmt.Errorf("update route: %w", err)
	}
	s.invalidate(ctx)
	return s.routes.GetByID(ctx, id)
}

func (s *CatalogService) DeleteRoute(ctx context.Context, identity domain.Identity, id int64) error {
	if err := policy.Authorize(accessPolicy, identity, policy.ActionDelete, nil); err != nil {
		return err
	}
	if err := s.routes.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete route: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *CatalogService) ListAirplaneTypes(ctx context.Context, identity domain.Identity, filter domain.AirplaneTypeFilter) ([]domain.AirplaneType, error) {
	if err := policy.Authorize(accessPolicy, identity, policy.ActionList, nil); err != nil {
		return nil, err
	}
	key := listKey("airplane_types", "name", filter.Name)
	return cachedList(ctx, s, key, func() ([]domain.AirplaneType, error) {
		return s.airplaneTypes.List(ctx, filter)
	})
}

func (s *CatalogService) GetAirplaneType(ctx context.Context, identity domain.Identity, id int64) (*domain.AirplaneType, error) {
	if err := policy.Authorize(accessPolicy, identity, policy.ActionRetrieve, nil); err != nil {
		return nil, err
	}
	return s.airplaneTypes.GetByID(ctx, id)
}

func (s *CatalogService) CreateAirplaneType(ctx context.Context, identity domain.Identity, input AirplaneTypeInput) (*domain.AirplaneType, error) {
	if err := policy.Authorize(accessPolicy, identity, policy.ActionCreate, nil); err != nil {
		return nil, err
	}
	airplaneType := &domain.AirplaneType{Name: input.Name}
	if err := validateAirplaneType(airplaneType); err != nil {
		return nil, err
	}
	if err := s.airplaneTypes.Create(ctx, airplaneType); err != nil {
		return nil, fmt.Errorf("create airplane type: %w", err)
	}
	s.invalidate(ctx)
	return airplaneType, nil
}

func (s *CatalogService) UpdateAirplaneType(ctx context.Context, identity domain.Identity, id int64, patch AirplaneTypePatch) (*domain.AirplaneType, error) {
	if err := policy.Authorize(accessPolicy, identity, policy.ActionUpdate, nil); err != nil {
		return nil, err
	}
	airplaneType, err := s.airplaneTypes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	setIfPresent(&airplaneType.Name, patch.Name)
	if err := validateAirplaneType(airplaneType); err != nil {
		return nil, err
	}
	if err := s.airplaneTypes.Update(ctx, airplaneType); err != nil {
		return nil, fmt.Errorf("update airplane type: %w", err)
	}
	s.invalidate(ctx)
	return airplaneType, nil
}

func (s *CatalogService) DeleteAirplaneType(ctx context.Context, identity domain.Identity, id int64) error {
	if err := policy.Authorize(accessPolicy, identity, policy.ActionDelete, nil); err != nil {
		return err
	}
	if err := s.airplaneTypes.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete airplane type: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *CatalogService) ListAirplanes(ctx context.Context, identity domain.Identity, filter domain.AirplaneFilter) ([]domain.Airplane, error) {
	if err := policy.Authorize(accessPolicy, identity, policy.ActionList, nil); err != nil {
		return nil, err
	}
	key := listKey("airplanes", "name", filter.Name, "airplane_type", filter.AirplaneType)
	return cachedList(ctx, s, key, func() ([]domain.Airplane, error) {
		return s.airplanes.List(ctx, filter)
	})
}

func (s *CatalogService) GetAirplane(ctx context.Context, identity domain.Identity, id int64) (*domain.Airplane, error) {
	if err := policy.Authorize(accessPolicy, identity, policy.ActionRetrieve, nil); err != nil {
		return nil, err
	}
	return s.airplanes.GetByID(ctx, id)
}

func (s *CatalogService) CreateAirplane(ctx context.Context, identity domain.Identity, input AirplaneInput) (*domain.Airplane, error) {
	if err := policy.Authorize(accessPolicy, identity, policy.ActionCreate, nil); err != nil {
		return nil, err
	}
	airplane := &domain.Airplane{
		Name:           input.Name,
		Rows:           input.Rows,
		SeatsInRow:     input.SeatsInRow,
		AirplaneTypeID: input.AirplaneTypeID,
	}
	if err := validateAirplane(airplane); err != nil {
		return nil, err
	}
	if err := s.airplanes.Create(ctx, airplane); err != nil {
		return nil, fmt.Errorf("create airplane: %w", err)
	}
	s.invalidate(ctx)
	return s.airplanes.GetByID(ctx, airplane.ID)
}

func (s *CatalogService) UpdateAirplane(ctx context.Context, identity domain.Identity, id int64, patch AirplanePatch) (*domain.Airplane, error) {
	if err := policy.Authorize(accessPolicy, identity, policy.ActionUpdate, nil); err != nil {
		return nil, err
	}
	airplane, err := s.airplanes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	setIfPresent(&airplane.Name, patch.Name)
	setIfPresent(&airplane.Rows, patch.Rows)
	setIfPresent(&airplane.SeatsInRow, patch.SeatsInRow)
	setIfPresent(&airplane.AirplaneTypeID, patch.AirplaneTypeID)
	if err := validateAirplane(airplane); err != nil {
		return nil, err
	}
	if patch.Rows != nil || patch.SeatsInRow != nil {
		extent, err := s.airplanes.SoldExtent(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("sold places: %w", err)
		}
		if err := domain.CheckExtent(extent, *airplane).Err(); err != nil {
			return nil, err
		}
	}
	if err := s.airplanes.Update(ctx, airplane); err != nil {
		return nil, fmt.Errorf("update airplane: %w", err)
	}
	s.invalidate(ctx)
	return s.airplanes.GetByID(ctx, id)
}

func (s *CatalogService) DeleteAirplane(ctx context.Context, identity domain.Identity, id int64) error {
	if err := policy.Authorize(accessPolicy, identity, policy.ActionDelete, nil); err != nil {
		return err
	}
	if err := s.airplanes.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete airplane: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *CatalogService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.WithError(err).Warn("failed to invalidate catalog cache")
	}
}

func cachedList[T any](ctx context.Context, s *CatalogService, key string, load func() ([]T, error)) ([]T, error) {
	return CachedList(ctx, s.cache, s.log, key, load)
}

// CachedList serves key from cache when possible and stores fresh results.
// Cache failures are logged and never fail the request.
func CachedList[T any](ctx context.Context, cache Cache, log *logger.Logger, key string, load func() ([]T, error)) ([]T, error) {
	if cache == nil {
		return load()
	}

	version, err := cache.Version(ctx)
	if err != nil {
		log.WithError(err).WithField("key", key).Warn("catalog cache unavailable")
		return load()
	}

	var cached []T
	ok, err := cache.Get(ctx, version, key, &cached)
	if err != nil {
		log.WithError(err).WithField("key", key).Warn("catalog cache read failed")
	}
	if ok {
		return cached, nil
	}

	items, err := load()
	if err != nil {
		return nil, err
	}
	if err := cache.Set(ctx, version, key, items); err != nil {
		log.WithError(err).WithField("key", key).Warn("catalog cache write failed")
	}
	return items, nil
}

// listKey builds a stable key from resource and name/value pairs.
func listKey(resource string, pairs ...string) string {
	values := url.Values{}
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] != "" {
			values.Set(pairs[i], pairs[i+1])
		}
	}
	return resource + "?" + values.Encode()
}

// ListKey is listKey for other services sharing the catalog cache.
func ListKey(resource string, pairs ...string) string {
	return listKey(resource, pairs...)
}

var _ CatalogUseCase = (*CatalogService)(nil)
