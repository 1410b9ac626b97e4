package repository

import (
	"context"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

const dayLayout = "2006-01-02"

type FlightRepository interface {
	List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Create(ctx context.Context, flight *domain.Flight) error
	Update(ctx context.Context, flight *domain.Flight) error
	Delete(ctx context.Context, id int64) error
	TakenPlaces(ctx context.Context, flightID int64) ([]domain.Place, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

func flightListQuery(filter domain.FlightFilter) (string, []any) {
	var w where
	w.contains(filter.Source, "s.name")
	w.contains(filter.Destination, "d.name")
	if filter.DepartureDay != nil {
		w.raw(`(f.departure_time AT TIME ZONE 'UTC')::date = %s::date`, filter.DepartureDay.Format(dayLayout))
	}
	if filter.ArrivalDay != nil {
		w.raw(`(f.arrival_time AT TIME ZONE 'UTC')::date = %s::date`, filter.ArrivalDay.Format(dayLayout))
	}
	if filter.RouteID != 0 {
		w.eq("f.route_id", filter.RouteID)
	}
	return `SELECT DISTINCT ` + flightColumns + ` FROM flights f` + flightJoins + w.String() + ` ORDER BY f.departure_time, f.id`, w.args
}

func (r *PGFlightRepository) List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	query, args := flightListQuery(filter)
	rows, err := r.db.Query(ctx, query, args...)
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

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	f, err := scanFlight(r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights f`+flightJoins+` WHERE f.id=$1`, id))
	if err != nil {
		return nil, mapError(err, "flight", id)
	}
	return f, nil
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	err := r.db.QueryRow(ctx, `INSERT INTO flights (route_id, airplane_id, departure_time, arrival_time) VALUES ($1, $2, $3, $4) RETURNING id`,
		flight.RouteID, flight.AirplaneID, flight.DepartureTime, flight.ArrivalTime).Scan(&flight.ID)
	return mapError(err, "flight", 0)
}

func (r *PGFlightRepository) Update(ctx context.Context, flight *domain.Flight) error {
	cmd, err := r.db.Exec(ctx, `UPDATE flights SET route_id=$1, airplane_id=$2, departure_time=$3, arrival_time=$4 WHERE id=$5`,
		flight.RouteID, flight.AirplaneID, flight.DepartureTime, flight.ArrivalTime, flight.ID)
	if err != nil {
		return mapError(err, "flight", flight.ID)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("flight", flight.ID)
	}
	return nil
}

func (r *PGFlightRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "flights", "flight", id)
}

// TakenPlaces lists sold row/seat pairs ordered by row, then seat.
func (r *PGFlightRepository) TakenPlaces(ctx context.Context, flightID int64) ([]domain.Place, error) {
	rows, err := r.db.Query(ctx, `SELECT "row", seat FROM tickets WHERE flight_id=$1 ORDER BY "row", seat`, flightID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	places := make([]domain.Place, 0)
	for rows.Next() {
		var p domain.Place
		if err := rows.Scan(&p.Row, &p.Seat); err != nil {
			return nil, err
		}
		places = append(places, p)
	}
	return places, rows.Err()
}

var _ FlightRepository = (*PGFlightRepository)(nil)
