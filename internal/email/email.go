package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/Domenick1991/airport/internal/kafka"
	"github.com/Domenick1991/airport/internal/logger"
	"github.com/Domenick1991/airport/internal/service/orders"
)

// Message is a rendered notification.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender turns order events into notifications. Delivery is a log line;
// an SMTP relay can replace deliver without touching the worker.
type Sender struct {
	log *logger.Logger
}

func NewSender(log *logger.Logger) *Sender {
	return &Sender{log: log}
}

func (s *Sender) Send(ctx context.Context, event kafka.OrderEvent) error {
	if event.Email == "" {
		s.log.WithField("order_id", event.OrderID).Debug("order event without recipient, skipping")
		return nil
	}
	msg, ok := Render(event)
	if !ok {
		return nil
	}
	return s.deliver(ctx, msg)
}

func (s *Sender) deliver(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.log.WithFields(logger.Fields{
		"to":      msg.To,
		"subject": msg.Subject,
	}).Info(msg.Body)
	return nil
}

// Render builds the notification for event. Unknown event types render nothing.
func Render(event kafka.OrderEvent) (Message, bool) {
	var subject string
	switch event.Type {
	case orders.EventOrderCreated:
		subject = fmt.Sprintf("Order #%d confirmed", event.OrderID)
	case orders.EventOrderDeleted:
		subject = fmt.Sprintf("Order #%d cancelled", event.OrderID)
	case orders.EventTicketCreated, orders.EventTicketUpdated:
		subject = fmt.Sprintf("Order #%d changed", event.OrderID)
	case orders.EventTicketDeleted:
		subject = fmt.Sprintf("Ticket removed from order #%d", event.OrderID)
	default:
		return Message{}, false
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s at %s.", subject, event.OccurredAt.UTC().Format("2006-01-02 15:04 MST"))
	for _, t := range event.Tickets {
		fmt.Fprintf(&b, " Flight %d row %d seat %d.", t.FlightID, t.Row, t.Seat)
	}
	return Message{To: event.Email, Subject: subject, Body: b.String()}, true
}
