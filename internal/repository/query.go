package repository

import (
	"fmt"
	"strings"
)

type rowScanner interface {
	Scan(dest ...any) error
}

// where accumulates AND-ed conditions with positional arguments.
type where struct {
	clauses []string
	args    []any
}

func (w *where) next(arg any) string {
	w.args = append(w.args, arg)
	return fmt.Sprintf("$%d", len(w.args))
}

func (w *where) eq(column string, value any) {
	w.clauses = append(w.clauses, column+" = "+w.next(value))
}

// contains adds a case-insensitive substring match on any of columns.
// Empty values are ignored.
func (w *where) contains(value string, columns ...string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	placeholder := w.next("%" + escapeLike(value) + "%")

	parts := make([]string, 0, len(columns))
	for _, column := range columns {
		parts = append(parts, column+" ILIKE "+placeholder)
	}
	if len(parts) == 1 {
		w.clauses = append(w.clauses, parts[0])
		return
	}
	w.clauses = append(w.clauses, "("+strings.Join(parts, " OR ")+")")
}

func (w *where) raw(clause string, value any) {
	w.clauses = append(w.clauses, fmt.Sprintf(clause, w.next(value)))
}

func (w *where) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

func escapeLike(value string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(value)
}

const (
	airportColumns = `a.id, a.name, a.closest_big_city`

	routeColumns = `r.id, r.source_id, r.destination_id, r.distance,
		s.id, s.name, s.closest_big_city,
		d.id, d.name, d.closest_big_city`
	routeJoins = ` JOIN airports s ON s.id = r.source_id
		JOIN airports d ON d.id = r.destination_id`

	airplaneColumns = `p.id, p.name, p."rows", p.seats_in_row, p.airplane_type_id, t.id, t.name`
	airplaneJoins   = ` JOIN airplane_types t ON t.id = p.airplane_type_id`

	flightColumns = `f.id, f.route_id, f.airplane_id, f.departure_time, f.arrival_time, ` +
		routeColumns + `, ` + airplaneColumns
	flightJoins = ` JOIN routes r ON r.id = f.route_id` + routeJoins +
		` JOIN airplanes p ON p.id = f.airplane_id` + airplaneJoins

	crewColumns = `c.id, c.first_name, c.last_name`

	ticketColumns = `tk.id, tk."row", tk.seat, tk.flight_id, tk.order_id`
)
