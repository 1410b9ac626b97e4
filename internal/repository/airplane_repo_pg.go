package repository

import (
	"context"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AirplaneTypeRepository interface {
	List(ctx context.Context, filter domain.AirplaneTypeFilter) ([]domain.AirplaneType, error)
	GetByID(ctx context.Context, id int64) (*domain.AirplaneType, error)
	Create(ctx context.Context, airplaneType *domain.AirplaneType) error
	Update(ctx context.Context, airplaneType *domain.AirplaneType) error
	Delete(ctx context.Context, id int64) error
}

type PGAirplaneTypeRepository struct {
	db *pgxpool.Pool
}

func NewAirplaneTypeRepository(db *pgxpool.Pool) AirplaneTypeRepository {
	return &PGAirplaneTypeRepository{db: db}
}

func (r *PGAirplaneTypeRepository) List(ctx context.Context, filter domain.AirplaneTypeFilter) ([]domain.AirplaneType, error) {
	var w where
	w.contains(filter.Name, "t.name")
	rows, err := r.db.Query(ctx, `SELECT DISTINCT t.id, t.name FROM airplane_types t`+w.String()+` ORDER BY t.id`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := make([]domain.AirplaneType, 0)
	for rows.Next() {
		var t domain.AirplaneType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

func (r *PGAirplaneTypeRepository) GetByID(ctx context.Context, id int64) (*domain.AirplaneType, error) {
	var t domain.AirplaneType
	if err := r.db.QueryRow(ctx, `SELECT id, name FROM airplane_types WHERE id=$1`, id).Scan(&t.ID, &t.Name); err != nil {
		return nil, mapError(err, "airplane type", id)
	}
	return &t, nil
}

func (r *PGAirplaneTypeRepository) Create(ctx context.Context, airplaneType *domain.AirplaneType) error {
	err := r.db.QueryRow(ctx, `INSERT INTO airplane_types (name) VALUES ($1) RETURNING id`, airplaneType.Name).Scan(&airplaneType.ID)
	return mapError(err, "airplane type", 0)
}

func (r *PGAirplaneTypeRepository) Update(ctx context.Context, airplaneType *domain.AirplaneType) error {
	cmd, err := r.db.Exec(ctx, `UPDATE airplane_types SET name=$1 WHERE id=$2`, airplaneType.Name, airplaneType.ID)
	if err != nil {
		return mapError(err, "airplane type", airplaneType.ID)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("airplane type", airplaneType.ID)
	}
	return nil
}

func (r *PGAirplaneTypeRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "airplane_types", "airplane type", id)
}

var _ AirplaneTypeRepository = (*PGAirplaneTypeRepository)(nil)

type AirplaneRepository interface {
	List(ctx context.Context, filter domain.AirplaneFilter) ([]domain.Airplane, error)
	GetByID(ctx context.Context, id int64) (*domain.Airplane, error)
	Create(ctx context.Context, airplane *domain.Airplane) error
	Update(ctx context.Context, airplane *domain.Airplane) error
	Delete(ctx context.Context, id int64) error
	SoldExtent(ctx context.Context, id int64) (domain.Place, error)
}

type PGAirplaneRepository struct {
	db *pgxpool.Pool
}

func NewAirplaneRepository(db *pgxpool.Pool) AirplaneRepository {
	return &PGAirplaneRepository{db: db}
}

func airplaneListQuery(filter domain.AirplaneFilter) (string, []any) {
	var w where
	w.contains(filter.Name, "p.name")
	w.contains(filter.AirplaneType, "t.name")
	return `SELECT DISTINCT ` + airplaneColumns + ` FROM airplanes p` + airplaneJoins + w.String() + ` ORDER BY p.id`, w.args
}

func (r *PGAirplaneRepository) List(ctx context.Context, filter domain.AirplaneFilter) ([]domain.Airplane, error) {
	query, args := airplaneListQuery(filter)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airplanes := make([]domain.Airplane, 0)
	for rows.Next() {
		p, err := scanAirplane(rows)
		if err != nil {
			return nil, err
		}
		airplanes = append(airplanes, *p)
	}
	return airplanes, rows.Err()
}

func (r *PGAirplaneRepository) GetByID(ctx context.Context, id int64) (*domain.Airplane, error) {
	p, err := scanAirplane(r.db.QueryRow(ctx, `SELECT `+airplaneColumns+` FROM airplanes p`+airplaneJoins+` WHERE p.id=$1`, id))
	if err != nil {
		return nil, mapError(err, "airplane", id)
	}
	return p, nil
}

func (r *PGAirplaneRepository) Create(ctx context.Context, airplane *domain.Airplane) error {
	err := r.db.QueryRow(ctx, `INSERT INTO airplanes (name, "rows", seats_in_row, airplane_type_id) VALUES ($1, $2, $3, $4) RETURNING id`,
		airplane.Name, airplane.Rows, airplane.SeatsInRow, airplane.AirplaneTypeID).Scan(&airplane.ID)
	return mapError(err, "airplane", 0)
}

func (r *PGAirplaneRepository) Update(ctx context.Context, airplane *domain.Airplane) error {
	cmd, err := r.db.Exec(ctx, `UPDATE airplanes SET name=$1, "rows"=$2, seats_in_row=$3, airplane_type_id=$4 WHERE id=$5`,
		airplane.Name, airplane.Rows, airplane.SeatsInRow, airplane.AirplaneTypeID, airplane.ID)
	if err != nil {
		return mapError(err, "airplane", airplane.ID)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("airplane", airplane.ID)
	}
	return nil
}

func (r *PGAirplaneRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "airplanes", "airplane", id)
}

// SoldExtent is the highest row and seat sold on any flight of the airplane.
// An airplane without tickets yields a zero Place.
func (r *PGAirplaneRepository) SoldExtent(ctx context.Context, id int64) (domain.Place, error) {
	var extent domain.Place
	err := r.db.QueryRow(ctx, `SELECT COALESCE(MAX(t."row"), 0), COALESCE(MAX(t.seat), 0)
		FROM tickets t JOIN flights f ON f.id = t.flight_id
		WHERE f.airplane_id=$1`, id).Scan(&extent.Row, &extent.Seat)
	return extent, err
}

var _ AirplaneRepository = (*PGAirplaneRepository)(nil)
