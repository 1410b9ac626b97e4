package domain

import "fmt"

// ValidateTicket checks that row and seat exist on the airplane. Both
// fields are checked and every violation is reported.
func ValidateTicket(row, seat int, airplane Airplane) error {
	verr := &ValidationError{}
	checkRange(verr, "row", row, airplane.Rows)
	checkRange(verr, "seat", seat, airplane.SeatsInRow)
	return verr.Err()
}

func checkRange(verr *ValidationError, field string, value, upper int) {
	if value >= 1 && value <= upper {
		return
	}
	verr.Add(field, fmt.Sprintf("%s number must be in available range: (1, %d), got %d", field, upper, value))
}

// PlaceExtent returns the highest row and the highest seat among places.
func PlaceExtent(places []Place) Place {
	var extent Place
	for _, p := range places {
		extent.Row = max(extent.Row, p.Row)
		extent.Seat = max(extent.Seat, p.Seat)
	}
	return extent
}

// CheckExtent reports the airplane dimensions that no longer cover extent,
// keyed "rows" and "seats_in_row".
func CheckExtent(extent Place, airplane Airplane) *ValidationError {
	verr := &ValidationError{}
	if extent.Row > airplane.Rows {
		verr.Add("rows", fmt.Sprintf("tickets are sold up to row %d", extent.Row))
	}
	if extent.Seat > airplane.SeatsInRow {
		verr.Add("seats_in_row", fmt.Sprintf("tickets are sold up to seat %d", extent.Seat))
	}
	return verr
}
