package repository

import (
	"errors"
	"fmt"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"

	ticketPlaceConstraint = "tickets_flight_row_seat_key"
	userEmailConstraint   = "users_email_key"
)

var checkConstraintFields = map[string]string{
	"routes_distance_check":        "distance",
	"airplanes_rows_check":         "rows",
	"airplanes_seats_in_row_check": "seats_in_row",
	"tickets_row_check":            "row",
	"tickets_seat_check":           "seat",
}

// mapError translates storage errors into the domain taxonomy.
func mapError(err error, entity string, id int64) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.NotFound(entity, id)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgForeignKeyViolation:
		return fmt.Errorf("%s references a missing record (%s): %w", entity, pgErr.ConstraintName, domain.ErrNotFound)
	case pgUniqueViolation:
		switch pgErr.ConstraintName {
		case ticketPlaceConstraint:
			return domain.NewValidationError("seat", "this seat is already taken on the flight")
		case userEmailConstraint:
			return domain.NewValidationError("email", "user with this email already exists")
		}
	case pgCheckViolation:
		if field, ok := checkConstraintFields[pgErr.ConstraintName]; ok {
			return domain.NewValidationError(field, "ensure this value is greater than 0")
		}
	}
	return err
}
