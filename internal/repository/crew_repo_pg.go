package repository

import (
	"context"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CrewRepository interface {
	List(ctx context.Context, filter domain.CrewFilter) ([]domain.Crew, error)
	GetByID(ctx context.Context, id int64) (*domain.Crew, error)
	Create(ctx context.Context, crew *domain.Crew) error
	Update(ctx context.Context, crew *domain.Crew) error
	Delete(ctx context.Context, id int64) error
}

type PGCrewRepository struct {
	db *pgxpool.Pool
}

func NewCrewRepository(db *pgxpool.Pool) CrewRepository {
	return &PGCrewRepository{db: db}
}

func crewListQuery(filter domain.CrewFilter) (string, []any) {
	var w where
	w.contains(filter.Contains, "c.first_name", "c.last_name")
	return `SELECT DISTINCT ` + crewColumns + ` FROM crews c` + w.String() + ` ORDER BY c.id`, w.args
}

func (r *PGCrewRepository) List(ctx context.Context, filter domain.CrewFilter) ([]domain.Crew, error) {
	query, args := crewListQuery(filter)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	crews := make([]domain.Crew, 0)
	for rows.Next() {
		c, err := scanCrew(rows)
		if err != nil {
			return nil, err
		}
		crews = append(crews, *c)
	}
	return crews, rows.Err()
}

func (r *PGCrewRepository) GetByID(ctx context.Context, id int64) (*domain.Crew, error) {
	c, err := scanCrew(r.db.QueryRow(ctx, `SELECT `+crewColumns+` FROM crews c WHERE c.id=$1`, id))
	if err != nil {
		return nil, mapError(err, "crew", id)
	}
	return c, nil
}

func (r *PGCrewRepository) Create(ctx context.Context, crew *domain.Crew) error {
	err := r.db.QueryRow(ctx, `INSERT INTO crews (first_name, last_name) VALUES ($1, $2) RETURNING id`,
		crew.FirstName, crew.LastName).Scan(&crew.ID)
	return mapError(err, "crew", 0)
}

func (r *PGCrewRepository) Update(ctx context.Context, crew *domain.Crew) error {
	cmd, err := r.db.Exec(ctx, `UPDATE crews SET first_name=$1, last_name=$2 WHERE id=$3`, crew.FirstName, crew.LastName, crew.ID)
	if err != nil {
		return mapError(err, "crew", crew.ID)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("crew", crew.ID)
	}
	return nil
}

func (r *PGCrewRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "crews", "crew", id)
}

var _ CrewRepository = (*PGCrewRepository)(nil)

type FlightCrewMemberRepository interface {
	List(ctx context.Context, filter domain.FlightCrewMemberFilter) ([]domain.FlightCrewMember, error)
	GetByID(ctx context.Context, id int64) (*domain.FlightCrewMember, error)
	Create(ctx context.Context, member *domain.FlightCrewMember) error
	Update(ctx context.Context, member *domain.FlightCrewMember) error
	Delete(ctx context.Context, id int64) error
}

type PGFlightCrewMemberRepository struct {
	db *pgxpool.Pool
}

func NewFlightCrewMemberRepository(db *pgxpool.Pool) FlightCrewMemberRepository {
	return &PGFlightCrewMemberRepository{db: db}
}

const (
	memberColumns = `m.id, m.flight_id, m.crew_id, ` + flightColumns + `, ` + crewColumns
	memberJoins   = ` JOIN flights f ON f.id = m.flight_id` + flightJoins + ` JOIN crews c ON c.id = m.crew_id`
)

func scanMember(row rowScanner) (*domain.FlightCrewMember, error) {
	var m domain.FlightCrewMember
	targets := []any{&m.ID, &m.FlightID, &m.CrewID}
	targets = append(targets, flightTargets(&m.Flight)...)
	targets = append(targets, &m.Crew.ID, &m.Crew.FirstName, &m.Crew.LastName)
	if err := row.Scan(targets...); err != nil {
		return nil, err
	}
	return &m, nil
}

func memberListQuery(filter domain.FlightCrewMemberFilter) (string, []any) {
	var w where
	w.contains(filter.Contains, "c.first_name", "c.last_name")
	if filter.FlightID != 0 {
		w.eq("m.flight_id", filter.FlightID)
	}
	return `SELECT DISTINCT ` + memberColumns + ` FROM flight_crew_members m` + memberJoins + w.String() + ` ORDER BY m.id`, w.args
}

func (r *PGFlightCrewMemberRepository) List(ctx context.Context, filter domain.FlightCrewMemberFilter) ([]domain.FlightCrewMember, error) {
	query, args := memberListQuery(filter)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]domain.FlightCrewMember, 0)
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, *m)
	}
	return members, rows.Err()
}

func (r *PGFlightCrewMemberRepository) GetByID(ctx context.Context, id int64) (*domain.FlightCrewMember, error) {
	m, err := scanMember(r.db.QueryRow(ctx, `SELECT `+memberColumns+` FROM flight_crew_members m`+memberJoins+` WHERE m.id=$1`, id))
	if err != nil {
		return nil, mapError(err, "flight crew member", id)
	}
	return m, nil
}

func (r *PGFlightCrewMemberRepository) Create(ctx context.Context, member *domain.FlightCrewMember) error {
	err := r.db.QueryRow(ctx, `INSERT INTO flight_crew_members (flight_id, crew_id) VALUES ($1, $2) RETURNING id`,
		member.FlightID, member.CrewID).Scan(&member.ID)
	return mapError(err, "flight crew member", 0)
}

func (r *PGFlightCrewMemberRepository) Update(ctx context.Context, member *domain.FlightCrewMember) error {
	cmd, err := r.db.Exec(ctx, `UPDATE flight_crew_members SET flight_id=$1, crew_id=$2 WHERE id=$3`,
		member.FlightID, member.CrewID, member.ID)
	if err != nil {
		return mapError(err, "flight crew member", member.ID)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("flight crew member", member.ID)
	}
	return nil
}

func (r *PGFlightCrewMemberRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "flight_crew_members", "flight crew member", id)
}

var _ FlightCrewMemberRepository = (*PGFlightCrewMemberRepository)(nil)
