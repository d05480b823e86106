package repository

import (
	"errors"

	"github.com/avshorin/airport-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
)

// mapErr translates pgx-level errors into domain sentinels so callers
// never depend on driver types.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			switch pgErr.ConstraintName {
			case "tickets_flight_seat_unique":
				return domain.ErrSeatTaken
			case "users_email_key":
				return domain.ErrEmailTaken
			}
		case foreignKeyViolationCode:
			// A dangling reference in a write means the referenced
			// record does not exist.
			return domain.ErrNotFound
		}
	}
	return err
}
