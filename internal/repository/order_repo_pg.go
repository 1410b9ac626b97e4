package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepository interface {
	List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	// Create stores the order and its tickets in one transaction.
	Create(ctx context.Context, order *domain.Order) error
	Delete(ctx context.Context, id int64) error
}

type PGOrderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) OrderRepository {
	return &PGOrderRepository{db: db}
}

func (r *PGOrderRepository) List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	var w where
	if filter.UserID != 0 {
		w.eq("o.user_id", filter.UserID)
	}
	rows, err := r.db.Query(ctx, `SELECT o.id, o.created_at, o.user_id FROM orders o`+w.String()+` ORDER BY o.created_at DESC, o.id DESC`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.CreatedAt, &o.UserID); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachTickets(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *PGOrderRepository) attachTickets(ctx context.Context, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]int64, len(orders))
	index := make(map[int64]int, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
		index[orders[i].ID] = i
		orders[i].Tickets = make([]domain.Ticket, 0)
	}

	rows, err := r.db.Query(ctx, `SELECT `+ticketColumns+` FROM tickets tk WHERE tk.order_id = ANY($1) ORDER BY tk."row", tk.seat, tk.id`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return err
		}
		i := index[t.OrderID]
		orders[i].Tickets = append(orders[i].Tickets, *t)
	}
	return rows.Err()
}

func (r *PGOrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	var o domain.Order
	if err := r.db.QueryRow(ctx, `SELECT id, created_at, user_id FROM orders WHERE id=$1`, id).Scan(&o.ID, &o.CreatedAt, &o.UserID); err != nil {
		return nil, mapError(err, "order", id)
	}
	orders := []domain.Order{o}
	if err := r.attachTickets(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (r *PGOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx, `INSERT INTO orders (user_id) VALUES ($1) RETURNING id, created_at`, order.UserID).
		Scan(&order.ID, &order.CreatedAt); err != nil {
		return mapError(err, "order", 0)
	}

	for i := range order.Tickets {
		t := &order.Tickets[i]
		t.OrderID = order.ID
		if err := tx.QueryRow(ctx, `INSERT INTO tickets ("row", seat, flight_id, order_id) VALUES ($1, $2, $3, $4) RETURNING id`,
			t.Row, t.Seat, t.FlightID, t.OrderID).Scan(&t.ID); err != nil {
			return prefixValidation(mapError(err, "ticket", 0), fmt.Sprintf("tickets[%d].", i))
		}
	}

	return tx.Commit(ctx)
}

func (r *PGOrderRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "orders", "order", id)
}

var _ OrderRepository = (*PGOrderRepository)(nil)

func prefixValidation(err error, prefix string) error {
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	prefixed := &domain.ValidationError{}
	prefixed.Merge(prefix, verr)
	return prefixed
}
