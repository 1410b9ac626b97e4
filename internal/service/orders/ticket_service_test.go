package orders

import (
	"context"
	"testing"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOrderService_TicketReadsAreStaffOnly(t *testing.T) {
	ctx := context.Background()
	service, d := newTestService()

	_, err := service.ListTickets(ctx, alice, domain.TicketFilter{})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = service.GetTicket(ctx, alice, 1)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = service.ListTickets(ctx, domain.Identity{}, domain.TicketFilter{})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	assert.ErrorIs(t, service.DeleteTicket(ctx, alice, 1), domain.ErrForbidden)

	d.tickets.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	d.tickets.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestOrderService_ListTickets_Filter(t *testing.T) {
	ctx := context.Background()
	service, d := newTestService()

	filter := domain.TicketFilter{FlightID: 4}
	d.tickets.On("List", ctx, filter).Return([]domain.Ticket{{ID: 1, FlightID: 4}}, nil)

	tickets, err := service.ListTickets(ctx, staff, filter)

	require.NoError(t, err)
	assert.Len(t, tickets, 1)
}

func TestOrderService_GetTicket_Expanded(t *testing.T) {
	ctx := context.Background()
	service, d := newTestService()

	d.tickets.On("GetByID", ctx, int64(55)).Return(&domain.Ticket{ID: 55, Row: 2, Seat: 3, FlightID: 4, OrderID: 7}, nil)
	d.flights.On("GetByID", ctx, int64(4)).Return(flightWithAirplane(4, 10, 4), nil)
	d.orders.On("GetByID", ctx, int64(7)).Return(&domain.Order{ID: 7, UserID: alice.UserID}, nil)

	ticket, err := service.GetTicket(ctx, staff, 55)

	require.NoError(t, err)
	require.NotNil(t, ticket.Flight)
	require.NotNil(t, ticket.Order)
	assert.Equal(t, "A320", ticket.Flight.Airplane.Name)
	assert.Equal(t, int64(7), ticket.Order.ID)
}

func TestOrderService_CreateTicket(t *testing.T) {
	ctx := context.Background()
	order := &domain.Order{ID: 7, UserID: alice.UserID}

	t.Run("owner creates ticket", func(t *testing.T) {
		service, d := newTestService()
		d.orders.On("GetByID", ctx, int64(7)).Return(order, nil)
		d.flights.On("GetByID", ctx, int64(4)).Return(flightWithAirplane(4, 50, 6), nil)
		d.tickets.On("Create", ctx, mock.AnythingOfType("*domain.Ticket")).Return(nil)
		d.producer.On("Publish", ctx, "orders", "7", mock.MatchedBy(func(e kafka.OrderEvent) bool {
			return e.Type == EventTicketCreated && len(e.Tickets) == 1 && e.Tickets[0].ID == 55
		})).Return(nil)

		ticket, err := service.CreateTicket(ctx, alice, TicketCreateInput{Row: 50, Seat: 6, FlightID: 4, OrderID: 7})

		require.NoError(t, err)
		assert.Equal(t, int64(55), ticket.ID)
		d.producer.AssertExpectations(t)
	})

	t.Run("row beyond airplane is rejected before storage", func(t *testing.T) {
		service, d := newTestService()
		d.orders.On("GetByID", ctx, int64(7)).Return(order, nil)
		d.flights.On("GetByID", ctx, int64(4)).Return(flightWithAirplane(4, 50, 6), nil)

		_, err := service.CreateTicket(ctx, alice, TicketCreateInput{Row: 51, Seat: 1, FlightID: 4, OrderID: 7})

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []string{"row number must be in available range: (1, 50), got 51"}, verr.Fields["row"])
		d.tickets.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("someone else's order is forbidden", func(t *testing.T) {
		service, d := newTestService()
		d.orders.On("GetByID", ctx, int64(7)).Return(order, nil)

		_, err := service.CreateTicket(ctx, bob, TicketCreateInput{Row: 1, Seat: 1, FlightID: 4, OrderID: 7})

		assert.ErrorIs(t, err, domain.ErrForbidden)
		d.tickets.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown order and flight", func(t *testing.T) {
		service, d := newTestService()
		d.orders.On("GetByID", ctx, int64(70)).Return(nil, domain.NotFound("order", 70))
		d.flights.On("GetByID", ctx, int64(40)).Return(nil, domain.NotFound("flight", 40))

		_, err := service.CreateTicket(ctx, staff, TicketCreateInput{Row: 1, Seat: 1, FlightID: 40, OrderID: 70})

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "order")
		assert.Contains(t, verr.Fields, "flight")
	})

	t.Run("seat already taken", func(t *testing.T) {
		service, d := newTestService()
		d.orders.On("GetByID", ctx, int64(7)).Return(order, nil)
		d.flights.On("GetByID", ctx, int64(4)).Return(flightWithAirplane(4, 50, 6), nil)
		d.tickets.On("Create", ctx, mock.AnythingOfType("*domain.Ticket")).
			Return(domain.NewValidationError("seat", "this seat is already taken on the flight"))

		_, err := service.CreateTicket(ctx, alice, TicketCreateInput{Row: 1, Seat: 1, FlightID: 4, OrderID: 7})

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "seat")
		d.producer.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestOrderService_UpdateTicket(t *testing.T) {
	ctx := context.Background()
	service, d := newTestService()

	seat := 7
	d.tickets.On("GetByID", ctx, int64(55)).Return(&domain.Ticket{ID: 55, Row: 1, Seat: 1, FlightID: 4, OrderID: 7}, nil)
	d.orders.On("GetByID", ctx, int64(7)).Return(&domain.Order{ID: 7, UserID: alice.UserID}, nil)
	d.flights.On("GetByID", ctx, int64(4)).Return(flightWithAirplane(4, 50, 6), nil)

	_, err := service.UpdateTicket(ctx, staff, 55, TicketPatch{Seat: &seat})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "seat")
	d.tickets.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)

	seat = 6
	d.tickets.On("Update", ctx, mock.MatchedBy(func(tk *domain.Ticket) bool { return tk.Seat == 6 && tk.Row == 1 })).Return(nil)
	d.users.On("GetByID", ctx, alice.UserID).Return(nil, domain.NotFound("user", alice.UserID))
	d.producer.On("Publish", ctx, "orders", "7", mock.MatchedBy(func(e kafka.OrderEvent) bool {
		return e.Type == EventTicketUpdated && e.Email == ""
	})).Return(nil)

	ticket, err := service.UpdateTicket(ctx, staff, 55, TicketPatch{Seat: &seat})

	require.NoError(t, err)
	assert.Equal(t, 6, ticket.Seat)
	d.producer.AssertExpectations(t)
}

func TestOrderService_DeleteTicket(t *testing.T) {
	ctx := context.Background()
	service, d := newTestService()

	d.tickets.On("GetByID", ctx, int64(55)).Return(&domain.Ticket{ID: 55, Row: 1, Seat: 1, FlightID: 4, OrderID: 7}, nil)
	d.tickets.On("Delete", ctx, int64(55)).Return(nil)
	d.orders.On("GetByID", ctx, int64(7)).Return(&domain.Order{ID: 7, UserID: staff.UserID}, nil)
	d.producer.On("Publish", ctx, "orders", "7", mock.MatchedBy(func(e kafka.OrderEvent) bool {
		return e.Type == EventTicketDeleted && e.Email == staff.Email
	})).Return(nil)

	require.NoError(t, service.DeleteTicket(ctx, staff, 55))
	d.tickets.AssertExpectations(t)
	d.producer.AssertExpectations(t)
}
