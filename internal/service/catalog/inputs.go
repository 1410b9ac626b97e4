package catalog

import (
	"strings"

	"github.com/Domenick1991/airport/internal/domain"
)

type AirportInput struct {
	Name           string
	ClosestBigCity string
}

type AirportPatch struct {
	Name           *string
	ClosestBigCity *string
}

type RouteInput struct {
	SourceID      int64
	DestinationID int64
	Distance      int
}

type RoutePatch struct {
	SourceID      *int64
	DestinationID *int64
	Distance      *int
}

type AirplaneTypeInput struct {
	Name string
}

type AirplaneTypePatch struct {
	Name *string
}

type AirplaneInput struct {
	Name           string
	Rows           int
	SeatsInRow     int
	AirplaneTypeID int64
}

type AirplanePatch struct {
	Name           *string
	Rows           *int
	SeatsInRow     *int
	AirplaneTypeID *int64
}

func requireText(verr *domain.ValidationError, field, value string) {
	if strings.TrimSpace(value) == "" {
		verr.Add(field, "this field may not be blank")
	}
}

func requirePositive(verr *domain.ValidationError, field string, value int) {
	if value <= 0 {
		verr.Add(field, "ensure this value is greater than 0")
	}
}

func validateAirport(a *domain.Airport) error {
	verr := &domain.ValidationError{}
	requireText(verr, "name", a.Name)
	requireText(verr, "closest_big_city", a.ClosestBigCity)
	return verr.Err()
}

func validateRoute(r *domain.Route) error {
	verr := &domain.ValidationError{}
	requirePositive(verr, "distance", r.Distance)
	if r.SourceID <= 0 {
		verr.Add("source", "this field is required")
	}
	if r.DestinationID <= 0 {
		verr.Add("destination", "this field is required")
	}
	return verr.Err()
}

func validateAirplaneType(t *domain.AirplaneType) error {
	verr := &domain.ValidationError{}
	requireText(verr, "name", t.Name)
	return verr.Err()
}

func validateAirplane(a *domain.Airplane) error {
	verr := &domain.ValidationError{}
	requireText(verr, "name", a.Name)
	requirePositive(verr, "rows", a.Rows)
	requirePositive(verr, "seats_in_row", a.SeatsInRow)
	if a.AirplaneTypeID <= 0 {
		verr.Add("airplane_type", "this field is required")
	}
	return verr.Err()
}

func setIfPresent[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
