package repository

import (
	"context"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TicketRepository interface {
	List(ctx context.Context, filter domain.TicketFilter) ([]domain.Ticket, error)
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	Create(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	Delete(ctx context.Context, id int64) error
}

type PGTicketRepository struct {
	db *pgxpool.Pool
}

func NewTicketRepository(db *pgxpool.Pool) TicketRepository {
	return &PGTicketRepository{db: db}
}

func ticketListQuery(filter domain.TicketFilter) (string, []any) {
	var w where
	if filter.FlightID != 0 {
		w.eq("tk.flight_id", filter.FlightID)
	}
	if filter.OrderID != 0 {
		w.eq("tk.order_id", filter.OrderID)
	}
	return `SELECT ` + ticketColumns + ` FROM tickets tk` + w.String() + ` ORDER BY tk."row", tk.seat, tk.id`, w.args
}

func (r *PGTicketRepository) List(ctx context.Context, filter domain.TicketFilter) ([]domain.Ticket, error) {
	query, args := ticketListQuery(filter)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]domain.Ticket, 0)
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, *t)
	}
	return tickets, rows.Err()
}

func (r *PGTicketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	t, err := scanTicket(r.db.QueryRow(ctx, `SELECT `+ticketColumns+` FROM tickets tk WHERE tk.id=$1`, id))
	if err != nil {
		return nil, mapError(err, "ticket", id)
	}
	return t, nil
}

// Create inserts the ticket; a seat already sold on the flight comes back
// as a validation error on "seat".
func (r *PGTicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	err := r.db.QueryRow(ctx, `INSERT INTO tickets ("row", seat, flight_id, order_id) VALUES ($1, $2, $3, $4) RETURNING id`,
		ticket.Row, ticket.Seat, ticket.FlightID, ticket.OrderID).Scan(&ticket.ID)
	return mapError(err, "ticket", 0)
}

func (r *PGTicketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	cmd, err := r.db.Exec(ctx, `UPDATE tickets SET "row"=$1, seat=$2, flight_id=$3, order_id=$4 WHERE id=$5`,
		ticket.Row, ticket.Seat, ticket.FlightID, ticket.OrderID, ticket.ID)
	if err != nil {
		return mapError(err, "ticket", ticket.ID)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("ticket", ticket.ID)
	}
	return nil
}

func (r *PGTicketRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "tickets", "ticket", id)
}

var _ TicketRepository = (*PGTicketRepository)(nil)
