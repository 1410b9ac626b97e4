package repository

import "github.com/Domenick1991/airport/internal/domain"

func scanAirport(row rowScanner) (*domain.Airport, error) {
	var a domain.Airport
	if err := row.Scan(&a.ID, &a.Name, &a.ClosestBigCity); err != nil {
		return nil, err
	}
	return &a, nil
}

func routeTargets(r *domain.Route) []any {
	return []any{
		&r.ID, &r.SourceID, &r.DestinationID, &r.Distance,
		&r.Source.ID, &r.Source.Name, &r.Source.ClosestBigCity,
		&r.Destination.ID, &r.Destination.Name, &r.Destination.ClosestBigCity,
	}
}

func scanRoute(row rowScanner) (*domain.Route, error) {
	var r domain.Route
	if err := row.Scan(routeTargets(&r)...); err != nil {
		return nil, err
	}
	return &r, nil
}

func airplaneTargets(p *domain.Airplane) []any {
	return []any{&p.ID, &p.Name, &p.Rows, &p.SeatsInRow, &p.AirplaneTypeID, &p.AirplaneType.ID, &p.AirplaneType.Name}
}

func scanAirplane(row rowScanner) (*domain.Airplane, error) {
	var p domain.Airplane
	if err := row.Scan(airplaneTargets(&p)...); err != nil {
		return nil, err
	}
	return &p, nil
}

func flightTargets(f *domain.Flight) []any {
	targets := []any{&f.ID, &f.RouteID, &f.AirplaneID, &f.DepartureTime, &f.ArrivalTime}
	targets = append(targets, routeTargets(&f.Route)...)
	return append(targets, airplaneTargets(&f.Airplane)...)
}

func scanFlight(row rowScanner) (*domain.Flight, error) {
	var f domain.Flight
	if err := row.Scan(flightTargets(&f)...); err != nil {
		return nil, err
	}
	return &f, nil
}

func scanCrew(row rowScanner) (*domain.Crew, error) {
	var c domain.Crew
	if err := row.Scan(&c.ID, &c.FirstName, &c.LastName); err != nil {
		return nil, err
	}
	return &c, nil
}

func scanTicket(row rowScanner) (*domain.Ticket, error) {
	var t domain.Ticket
	if err := row.Scan(&t.ID, &t.Row, &t.Seat, &t.FlightID, &t.OrderID); err != nil {
		return nil, err
	}
	return &t, nil
}
