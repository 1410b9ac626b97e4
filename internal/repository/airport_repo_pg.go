package repository

import (
	"context"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AirportRepository interface {
	List(ctx context.Context, filter domain.AirportFilter) ([]domain.Airport, error)
	GetByID(ctx context.Context, id int64) (*domain.Airport, error)
	Create(ctx context.Context, airport *domain.Airport) error
	Update(ctx context.Context, airport *domain.Airport) error
	Delete(ctx context.Context, id int64) error
}

type PGAirportRepository struct {
	db *pgxpool.Pool
}

func NewAirportRepository(db *pgxpool.Pool) AirportRepository {
	return &PGAirportRepository{db: db}
}

func airportListQuery(filter domain.AirportFilter) (string, []any) {
	var w where
	w.contains(filter.Name, "a.name")
	w.contains(filter.City, "a.closest_big_city")
	return `SELECT DISTINCT ` + airportColumns + ` FROM airports a` + w.String() + ` ORDER BY a.id`, w.args
}

func (r *PGAirportRepository) List(ctx context.Context, filter domain.AirportFilter) ([]domain.Airport, error) {
	query, args := airportListQuery(filter)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airports := make([]domain.Airport, 0)
	for rows.Next() {
		a, err := scanAirport(rows)
		if err != nil {
			return nil, err
		}
		airports = append(airports, *a)
	}
	return airports, rows.Err()
}

func (r *PGAirportRepository) GetByID(ctx context.Context, id int64) (*domain.Airport, error) {
	a, err := scanAirport(r.db.QueryRow(ctx, `SELECT `+airportColumns+` FROM airports a WHERE a.id=$1`, id))
	if err != nil {
		return nil, mapError(err, "airport", id)
	}
	return a, nil
}

func (r *PGAirportRepository) Create(ctx context.Context, airport *domain.Airport) error {
	err := r.db.QueryRow(ctx, `INSERT INTO airports (name, closest_big_city) VALUES ($1, $2) RETURNING id`,
		airport.Name, airport.ClosestBigCity).Scan(&airport.ID)
	return mapError(err, "airport", 0)
}

func (r *PGAirportRepository) Update(ctx context.Context, airport *domain.Airport) error {
	cmd, err := r.db.Exec(ctx, `UPDATE airports SET name=$1, closest_big_city=$2 WHERE id=$3`,
		airport.Name, airport.ClosestBigCity, airport.ID)
	if err != nil {
		return mapError(err, "airport", airport.ID)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("airport", airport.ID)
	}
	return nil
}

// Delete removes the airport together with every route touching it and,
// through the schema cascade, their flights, tickets and crew assignments.
func (r *PGAirportRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "airports", "airport", id)
}

var _ AirportRepository = (*PGAirportRepository)(nil)

type RouteRepository interface {
	List(ctx context.Context, filter domain.RouteFilter) ([]domain.Route, error)
	GetByID(ctx context.Context, id int64) (*domain.Route, error)
	Create(ctx context.Context, route *domain.Route) error
	Update(ctx context.Context, route *domain.Route) error
	Delete(ctx context.Context, id int64) error
}

type PGRouteRepository struct {
	db *pgxpool.Pool
}

func NewRouteRepository(db *pgxpool.Pool) RouteRepository {
	return &PGRouteRepository{db: db}
}

func routeListQuery(filter domain.RouteFilter) (string, []any) {
	var w where
	w.contains(filter.Source, "s.name")
	w.contains(filter.Destination, "d.name")
	if filter.SourceID != 0 {
		w.eq("r.source_id", filter.SourceID)
	}
	if filter.DestinationID != 0 {
		w.eq("r.destination_id", filter.DestinationID)
	}
	return `SELECT DISTINCT ` + routeColumns + ` FROM routes r` + routeJoins + w.String() + ` ORDER BY r.id`, w.args
}

func (r *PGRouteRepository) List(ctx context.Context, filter domain.RouteFilter) ([]domain.Route, error) {
	query, args := routeListQuery(filter)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	routes := make([]domain.Route, 0)
	for rows.Next() {
		route, err := scanRoute(rows)
		if err != nil {
			return nil, err
		}
		routes = append(routes, *route)
	}
	return routes, rows.Err()
}

func (r *PGRouteRepository) GetByID(ctx context.Context, id int64) (*domain.Route, error) {
	route, err := scanRoute(r.db.QueryRow(ctx, `SELECT `+routeColumns+` FROM routes r`+routeJoins+` WHERE r.id=$1`, id))
	if err != nil {
		return nil, mapError(err, "route", id)
	}
	return route, nil
}

func (r *PGRouteRepository) Create(ctx context.Context, route *domain.Route) error {
	err := r.db.QueryRow(ctx, `INSERT INTO routes (source_id, destination_id, distance) VALUES ($1, $2, $3) RETURNING id`,
		route.SourceID, route.DestinationID, route.Distance).Scan(&route.ID)
	return mapError(err, "route", 0)
}

func (r *PGRouteRepository) Update(ctx context.Context, route *domain.Route) error {
	cmd, err := r.db.Exec(ctx, `UPDATE routes SET source_id=$1, destination_id=$2, distance=$3 WHERE id=$4`,
		route.SourceID, route.DestinationID, route.Distance, route.ID)
	if err != nil {
		return mapError(err, "route", route.ID)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("route", route.ID)
	}
	return nil
}

func (r *PGRouteRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "routes", "route", id)
}

var _ RouteRepository = (*PGRouteRepository)(nil)

// deleteByID runs a single DELETE; dependents go with it through ON DELETE CASCADE.
func deleteByID(ctx context.Context, db *pgxpool.Pool, table, entity string, id int64) error {
	cmd, err := db.Exec(ctx, `DELETE FROM `+table+` WHERE id=$1`, id)
	if err != nil {
		return mapError(err, entity, id)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound(entity, id)
	}
	return nil
}
