package orders

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/kafka"
	"github.com/Domenick1991/airport/internal/logger"
	"github.com/Domenick1991/airport/internal/policy"
	"github.com/Domenick1991/airport/internal/repository"
)

const (
	EventOrderCreated  = "order_created"
	EventOrderDeleted  = "order_deleted"
	EventTicketCreated = "ticket_created"
	EventTicketUpdated = "ticket_updated"
	EventTicketDeleted = "ticket_deleted"
)

type OrderUseCase interface {
	ListOrders(ctx context.Context, identity domain.Identity) ([]domain.Order, error)
	GetOrder(ctx context.Context, identity domain.Identity, id int64) (*domain.Order, error)
	CreateOrder(ctx context.Context, identity domain.Identity, input OrderInput) (*domain.Order, error)
	DeleteOrder(ctx context.Context, identity domain.Identity, id int64) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type OrderInput struct {
	Tickets []TicketInput
}

type TicketInput struct {
	Row      int
	Seat     int
	FlightID int64
}

type OrderService struct {
	orders             repository.OrderRepository
	tickets            repository.TicketRepository
	flights            repository.FlightRepository
	users              repository.UserRepository
	producer           Producer
	ordersTopic        string
	notificationsTopic string
	log                *logger.Logger
	now                func() time.Time
}

type OrderServiceOption func(*OrderService)

// WithNotificationsTopic mirrors every event to topic for the notification worker.
func WithNotificationsTopic(topic string) OrderServiceOption {
	return func(s *OrderService) {
		s.notificationsTopic = topic
	}
}

func NewOrderService(
	orders repository.OrderRepository,
	tickets repository.TicketRepository,
	flights repository.FlightRepository,
	users repository.UserRepository,
	producer Producer,
	ordersTopic string,
	log *logger.Logger,
	opts ...OrderServiceOption,
) *OrderService {
	service := &OrderService{
		orders:      orders,
		tickets:     tickets,
		flights:     flights,
		users:       users,
		producer:    producer,
		ordersTopic: ordersTopic,
		log:         log,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// ListOrders returns the caller's own orders. Staff see every order.
func (s *OrderService) ListOrders(ctx context.Context, identity domain.Identity) ([]domain.Order, error) {
	if err := policy.Authorize(policy.OwnerOrStaff, identity, policy.ActionList, nil); err != nil {
		return nil, err
	}
	filter := domain.OrderFilter{}
	if !identity.IsStaff {
		filter.UserID = identity.UserID
	}
	return s.orders.List(ctx, filter)
}

func (s *OrderService) GetOrder(ctx context.Context, identity domain.Identity, id int64) (*domain.Order, error) {
	if err := policy.Authorize(policy.OwnerOrStaff, identity, policy.ActionRetrieve, nil); err != nil {
		return nil, err
	}
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(policy.OwnerOrStaff, identity, policy.ActionRetrieve, order); err != nil {
		return nil, err
	}
	return order, nil
}

// CreateOrder validates every ticket against its flight's airplane before
// storing the order and its tickets together.
func (s *OrderService) CreateOrder(ctx context.Context, identity domain.Identity, input OrderInput) (*domain.Order, error) {
	if err := policy.Authorize(policy.OwnerOrStaff, identity, policy.ActionCreate, nil); err != nil {
		return nil, err
	}

	verr := &domain.ValidationError{}
	flights := make(map[int64]*domain.Flight)
	seen := make(map[placeKey]bool)
	tickets := make([]domain.Ticket, 0, len(input.Tickets))

	for i, in := range input.Tickets {
		prefix := fmt.Sprintf("tickets[%d].", i)

		flight, err := s.loadFlight(ctx, flights, in.FlightID)
		if errors.Is(err, domain.ErrNotFound) {
			verr.Add(prefix+"flight", missingObject(in.FlightID))
			continue
		}
		if err != nil {
			return nil, err
		}

		if err := domain.ValidateTicket(in.Row, in.Seat, flight.Airplane); err != nil {
			var ticketErr *domain.ValidationError
			if !errors.As(err, &ticketErr) {
				return nil, err
			}
			verr.Merge(prefix, ticketErr)
			continue
		}

		key := placeKey{flightID: in.FlightID, row: in.Row, seat: in.Seat}
		if seen[key] {
			verr.Add(prefix+"seat", "this seat is already taken in this order")
			continue
		}
		seen[key] = true

		tickets = append(tickets, domain.Ticket{Row: in.Row, Seat: in.Seat, FlightID: in.FlightID, Flight: flight})
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	order := &domain.Order{UserID: identity.UserID, Tickets: tickets}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.publish(ctx, EventOrderCreated, order.ID, order.UserID, identity, order.Tickets)
	return order, nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, identity domain.Identity, id int64) error {
	order, err := s.GetOrder(ctx, identity, id)
	if err != nil {
		return err
	}
	if err := policy.Authorize(policy.OwnerOrStaff, identity, policy.ActionDelete, order); err != nil {
		return err
	}
	if err := s.orders.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}

	s.publish(ctx, EventOrderDeleted, order.ID, order.UserID, identity, order.Tickets)
	return nil
}

type placeKey struct {
	flightID  int64
	row, seat int
}

func (s *OrderService) loadFlight(ctx context.Context, loaded map[int64]*domain.Flight, id int64) (*domain.Flight, error) {
	if flight, ok := loaded[id]; ok {
		return flight, nil
	}
	flight, err := s.flights.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	loaded[id] = flight
	return flight, nil
}

func missingObject(id int64) string {
	return fmt.Sprintf("invalid pk %q - object does not exist", strconv.FormatInt(id, 10))
}

// publish is best-effort: failures are logged and never reach the caller.
func (s *OrderService) publish(ctx context.Context, eventType string, orderID, ownerID int64, actor domain.Identity, tickets []domain.Ticket) {
	if s.producer == nil {
		return
	}

	event := kafka.OrderEvent{
		Type:       eventType,
		OrderID:    orderID,
		UserID:     ownerID,
		Email:      s.ownerEmail(ctx, ownerID, actor),
		Tickets:    make([]kafka.TicketPayload, 0, len(tickets)),
		OccurredAt: s.now().UTC(),
	}
	for _, t := range tickets {
		event.Tickets = append(event.Tickets, kafka.TicketPayload{ID: t.ID, FlightID: t.FlightID, Row: t.Row, Seat: t.Seat})
	}

	key := strconv.FormatInt(orderID, 10)
	entry := s.log.WithField("event", eventType).WithField("order_id", orderID)
	if err := s.producer.Publish(ctx, s.ordersTopic, key, event); err != nil {
		entry.WithError(err).Warn("failed to publish order event")
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, key, event); err != nil {
			entry.WithError(err).Warn("failed to publish notification event")
		}
	}
}

func (s *OrderService) ownerEmail(ctx context.Context, ownerID int64, actor domain.Identity) string {
	if actor.UserID == ownerID {
		return actor.Email
	}
	if s.users == nil {
		return ""
	}
	owner, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		s.log.WithError(err).WithField("user_id", ownerID).Warn("failed to resolve order owner")
		return ""
	}
	return owner.Email
}

var _ OrderUseCase = (*OrderService)(nil)
