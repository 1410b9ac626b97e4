package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/policy"
)

type TicketUseCase interface {
	ListTickets(ctx context.Context, identity domain.Identity, filter domain.TicketFilter) ([]domain.Ticket, error)
	GetTicket(ctx context.Context, identity domain.Identity, id int64) (*domain.Ticket, error)
	CreateTicket(ctx context.Context, identity domain.Identity, input TicketCreateInput) (*domain.Ticket, error)
	UpdateTicket(ctx context.Context, identity domain.Identity, id int64, patch TicketPatch) (*domain.Ticket, error)
	DeleteTicket(ctx context.Context, identity domain.Identity, id int64) error
}

type TicketCreateInput struct {
	Row      int
	Seat     int
	FlightID int64
	OrderID  int64
}

type TicketPatch struct {
	Row      *int
	Seat     *int
	FlightID *int64
	OrderID  *int64
}

const ticketPolicy = policy.AuthenticatedCreateStaffFull

func (s *OrderService) ListTickets(ctx context.Context, identity domain.Identity, filter domain.TicketFilter) ([]domain.Ticket, error) {
	if err := policy.Authorize(ticketPolicy, identity, policy.ActionList, nil); err != nil {
		return nil, err
	}
	return s.tickets.List(ctx, filter)
}

func (s *OrderService) GetTicket(ctx context.Context, identity domain.Identity, id int64) (*domain.Ticket, error) {
	if err := policy.Authorize(ticketPolicy, identity, policy.ActionRetrieve, nil); err != nil {
		return nil, err
	}
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket.Flight, err = s.flights.GetByID(ctx, ticket.FlightID); err != nil {
		return nil, err
	}
	if ticket.Order, err = s.orders.GetByID(ctx, ticket.OrderID); err != nil {
		return nil, err
	}
	return ticket, nil
}

// CreateTicket adds a ticket to an existing order. Non-staff callers may
// only add tickets to their own orders.
func (s *OrderService) CreateTicket(ctx context.Context, identity domain.Identity, input TicketCreateInput) (*domain.Ticket, error) {
	if err := policy.Authorize(ticketPolicy, identity, policy.ActionCreate, nil); err != nil {
		return nil, err
	}

	ticket := &domain.Ticket{Row: input.Row, Seat: input.Seat, FlightID: input.FlightID, OrderID: input.OrderID}
	if err := s.resolveTicket(ctx, identity, ticket); err != nil {
		return nil, err
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, fmt.Errorf("create ticket: %w", err)
	}

	s.publish(ctx, EventTicketCreated, ticket.OrderID, ticket.Order.UserID, identity, []domain.Ticket{*ticket})
	return ticket, nil
}

func (s *OrderService) UpdateTicket(ctx context.Context, identity domain.Identity, id int64, patch TicketPatch) (*domain.Ticket, error) {
	if err := policy.Authorize(ticketPolicy, identity, policy.ActionUpdate, nil); err != nil {
		return nil, err
	}
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Row != nil {
		ticket.Row = *patch.Row
	}
	if patch.Seat != nil {
		ticket.Seat = *patch.Seat
	}
	if patch.FlightID != nil {
		ticket.FlightID = *patch.FlightID
	}
	if patch.OrderID != nil {
		ticket.OrderID = *patch.OrderID
	}
	if err := s.resolveTicket(ctx, identity, ticket); err != nil {
		return nil, err
	}
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, fmt.Errorf("update ticket: %w", err)
	}

	s.publish(ctx, EventTicketUpdated, ticket.OrderID, ticket.Order.UserID, identity, []domain.Ticket{*ticket})
	return ticket, nil
}

func (s *OrderService) DeleteTicket(ctx context.Context, identity domain.Identity, id int64) error {
	if err := policy.Authorize(ticketPolicy, identity, policy.ActionDelete, nil); err != nil {
		return err
	}
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.tickets.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete ticket: %w", err)
	}

	var ownerID int64
	if order, err := s.orders.GetByID(ctx, ticket.OrderID); err == nil {
		ownerID = order.UserID
	}
	s.publish(ctx, EventTicketDeleted, ticket.OrderID, ownerID, identity, []domain.Ticket{*ticket})
	return nil
}

// resolveTicket loads the ticket's order and flight, checks order ownership
// and validates the place against the flight's airplane.
func (s *OrderService) resolveTicket(ctx context.Context, identity domain.Identity, ticket *domain.Ticket) error {
	verr := &domain.ValidationError{}

	order, err := s.orders.GetByID(ctx, ticket.OrderID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		verr.Add("order", missingObject(ticket.OrderID))
	case err != nil:
		return err
	default:
		if err := policy.Authorize(policy.OwnerOrStaff, identity, policy.ActionUpdate, order); err != nil {
			return err
		}
	}

	flight, err := s.flights.GetByID(ctx, ticket.FlightID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		verr.Add("flight", missingObject(ticket.FlightID))
	case err != nil:
		return err
	default:
		if err := domain.ValidateTicket(ticket.Row, ticket.Seat, flight.Airplane); err != nil {
			var ticketErr *domain.ValidationError
			if !errors.As(err, &ticketErr) {
				return err
			}
			verr.Merge("", ticketErr)
		}
	}

	if err := verr.Err(); err != nil {
		return err
	}
	ticket.Order = order
	ticket.Flight = flight
	return nil
}

var _ TicketUseCase = (*OrderService)(nil)
