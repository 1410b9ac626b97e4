package domain

import "time"

type Flight struct {
	ID            int64
	RouteID       int64
	AirplaneID    int64
	DepartureTime time.Time
	ArrivalTime   time.Time
	Route         Route
	Airplane      Airplane
}

// Place is an occupied row/seat pair on a flight.
type Place struct {
	Row  int
	Seat int
}

type Crew struct {
	ID        int64
	FirstName string
	LastName  string
}

func (c Crew) FullName() string {
	return c.FirstName + " " + c.LastName
}

type FlightCrewMember struct {
	ID       int64
	FlightID int64
	CrewID   int64
	Flight   Flight
	Crew     Crew
}

// FlightFilter days compare against the UTC calendar date of the timestamp.
type FlightFilter struct {
	Source       string
	Destination  string
	DepartureDay *time.Time
	ArrivalDay   *time.Time
	RouteID      int64
}

type CrewFilter struct {
	Contains string
}

type FlightCrewMemberFilter struct {
	Contains string
	FlightID int64
}
