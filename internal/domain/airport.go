package domain

type Airport struct {
	ID             int64
	Name           string
	ClosestBigCity string
}

type Route struct {
	ID            int64
	SourceID      int64
	DestinationID int64
	Distance      int
	Source        Airport
	Destination   Airport
}

type AirportFilter struct {
	Name string
	City string
}

type RouteFilter struct {
	Source        string
	Destination   string
	SourceID      int64
	DestinationID int64
}
