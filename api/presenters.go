package api

import (
	"time"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/service/flights"
)

// List views reference related objects by name; detail views embed them.

type airportResponse struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	ClosestBigCity string `json:"closest_big_city"`
}

func presentAirport(a domain.Airport) airportResponse {
	return airportResponse{ID: a.ID, Name: a.Name, ClosestBigCity: a.ClosestBigCity}
}

type routeListResponse struct {
	ID          int64  `json:"id"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Distance    int    `json:"distance"`
}

type routeResponse struct {
	ID          int64           `json:"id"`
	Source      airportResponse `json:"source"`
	Destination airportResponse `json:"destination"`
	Distance    int             `json:"distance"`
}

func presentRouteList(routes []domain.Route) []routeListResponse {
	out := make([]routeListResponse, 0, len(routes))
	for _, r := range routes {
		out = append(out, routeListResponse{
			ID:          r.ID,
			Source:      r.Source.Name,
			Destination: r.Destination.Name,
			Distance:    r.Distance,
		})
	}
	return out
}

func presentRoute(r domain.Route) routeResponse {
	return routeResponse{
		ID:          r.ID,
		Source:      presentAirport(r.Source),
		Destination: presentAirport(r.Destination),
		Distance:    r.Distance,
	}
}

type airplaneTypeResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func presentAirplaneType(t domain.AirplaneType) airplaneTypeResponse {
	return airplaneTypeResponse{ID: t.ID, Name: t.Name}
}

type airplaneListResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Rows         int    `json:"rows"`
	SeatsInRow   int    `json:"seats_in_row"`
	Capacity     int    `json:"capacity"`
	AirplaneType string `json:"airplane_type"`
}

type airplaneResponse struct {
	ID           int64                `json:"id"`
	Name         string               `json:"name"`
	Rows         int                  `json:"rows"`
	SeatsInRow   int                  `json:"seats_in_row"`
	Capacity     int                  `json:"capacity"`
	AirplaneType airplaneTypeResponse `json:"airplane_type"`
}

func presentAirplaneList(airplanes []domain.Airplane) []airplaneListResponse {
	out := make([]airplaneListResponse, 0, len(airplanes))
	for _, a := range airplanes {
		out = append(out, airplaneListResponse{
			ID:           a.ID,
			Name:         a.Name,
			Rows:         a.Rows,
			SeatsInRow:   a.SeatsInRow,
			Capacity:     a.Capacity(),
			AirplaneType: a.AirplaneType.Name,
		})
	}
	return out
}

func presentAirplane(a domain.Airplane) airplaneResponse {
	return airplaneResponse{
		ID:           a.ID,
		Name:         a.Name,
		Rows:         a.Rows,
		SeatsInRow:   a.SeatsInRow,
		Capacity:     a.Capacity(),
		AirplaneType: presentAirplaneType(a.AirplaneType),
	}
}

type flightListResponse struct {
	ID            int64     `json:"id"`
	Source        string    `json:"source"`
	Destination   string    `json:"destination"`
	Airplane      string    `json:"airplane"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
}

type flightResponse struct {
	ID            int64            `json:"id"`
	Route         routeResponse    `json:"route"`
	Airplane      airplaneResponse `json:"airplane"`
	DepartureTime time.Time        `json:"departure_time"`
	ArrivalTime   time.Time        `json:"arrival_time"`
}

type placeResponse struct {
	Row  int `json:"row"`
	Seat int `json:"seat"`
}

type flightDetailResponse struct {
	flightResponse
	TakenPlaces      []placeResponse `json:"taken_places"`
	TicketsAvailable int             `json:"tickets_available"`
}

func presentFlightList(list []domain.Flight) []flightListResponse {
	out := make([]flightListResponse, 0, len(list))
	for _, f := range list {
		out = append(out, flightListResponse{
			ID:            f.ID,
			Source:        f.Route.Source.Name,
			Destination:   f.Route.Destination.Name,
			Airplane:      f.Airplane.Name,
			DepartureTime: f.DepartureTime,
			ArrivalTime:   f.ArrivalTime,
		})
	}
	return out
}

func presentFlight(f domain.Flight) flightResponse {
	return flightResponse{
		ID:            f.ID,
		Route:         presentRoute(f.Route),
		Airplane:      presentAirplane(f.Airplane),
		DepartureTime: f.DepartureTime,
		ArrivalTime:   f.ArrivalTime,
	}
}

func presentFlightDetails(d *flights.FlightDetails) flightDetailResponse {
	places := make([]placeResponse, 0, len(d.TakenPlaces))
	for _, p := range d.TakenPlaces {
		places = append(places, placeResponse{Row: p.Row, Seat: p.Seat})
	}
	return flightDetailResponse{
		flightResponse:   presentFlight(d.Flight),
		TakenPlaces:      places,
		TicketsAvailable: d.TicketsAvailable(),
	}
}

type crewResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
}

func presentCrew(c domain.Crew) crewResponse {
	return crewResponse{ID: c.ID, FirstName: c.FirstName, LastName: c.LastName, FullName: c.FullName()}
}

type memberListResponse struct {
	ID     int64  `json:"id"`
	Flight int64  `json:"flight"`
	Crew   string `json:"crew"`
}

type memberResponse struct {
	ID     int64          `json:"id"`
	Flight flightResponse `json:"flight"`
	Crew   crewResponse   `json:"crew"`
}

func presentMemberList(members []domain.FlightCrewMember) []memberListResponse {
	out := make([]memberListResponse, 0, len(members))
	for _, m := range members {
		out = append(out, memberListResponse{ID: m.ID, Flight: m.FlightID, Crew: m.Crew.FullName()})
	}
	return out
}

func presentMember(m domain.FlightCrewMember) memberResponse {
	return memberResponse{ID: m.ID, Flight: presentFlight(m.Flight), Crew: presentCrew(m.Crew)}
}

type orderTicketResponse struct {
	ID     int64 `json:"id"`
	Row    int   `json:"row"`
	Seat   int   `json:"seat"`
	Flight int64 `json:"flight"`
}

// orderResponse never carries the owner.
type orderResponse struct {
	ID        int64                 `json:"id"`
	CreatedAt time.Time             `json:"created_at"`
	Tickets   []orderTicketResponse `json:"tickets"`
}

func presentOrder(o domain.Order) orderResponse {
	tickets := make([]orderTicketResponse, 0, len(o.Tickets))
	for _, t := range o.Tickets {
		tickets = append(tickets, orderTicketResponse{ID: t.ID, Row: t.Row, Seat: t.Seat, Flight: t.FlightID})
	}
	return orderResponse{ID: o.ID, CreatedAt: o.CreatedAt, Tickets: tickets}
}

func presentOrders(orders []domain.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, presentOrder(o))
	}
	return out
}

type ticketListResponse struct {
	ID     int64 `json:"id"`
	Row    int   `json:"row"`
	Seat   int   `json:"seat"`
	Flight int64 `json:"flight"`
	Order  int64 `json:"order"`
}

type ticketOrderResponse struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

type ticketResponse struct {
	ID     int64               `json:"id"`
	Row    int                 `json:"row"`
	Seat   int                 `json:"seat"`
	Flight flightResponse      `json:"flight"`
	Order  ticketOrderResponse `json:"order"`
}

func presentTicketList(tickets []domain.Ticket) []ticketListResponse {
	out := make([]ticketListResponse, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, ticketListResponse{ID: t.ID, Row: t.Row, Seat: t.Seat, Flight: t.FlightID, Order: t.OrderID})
	}
	return out
}

func presentTicket(t domain.Ticket) ticketResponse {
	resp := ticketResponse{ID: t.ID, Row: t.Row, Seat: t.Seat}
	if t.Flight != nil {
		resp.Flight = presentFlight(*t.Flight)
	}
	resp.Order = ticketOrderResponse{ID: t.OrderID}
	if t.Order != nil {
		resp.Order.CreatedAt = t.Order.CreatedAt
	}
	return resp
}
