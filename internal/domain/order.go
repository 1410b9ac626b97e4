package domain

import "time"

type Order struct {
	ID        int64
	CreatedAt time.Time
	UserID    int64
	Tickets   []Ticket
}

// OwnerID reports the user that created the order.
func (o *Order) OwnerID() int64 {
	return o.UserID
}

type Ticket struct {
	ID       int64
	Row      int
	Seat     int
	FlightID int64
	OrderID  int64
	Flight   *Flight
	Order    *Order
}

type OrderFilter struct {
	// UserID restricts the listing to one owner; zero lists every order.
	UserID int64
}

type TicketFilter struct {
	FlightID int64
	OrderID  int64
}
