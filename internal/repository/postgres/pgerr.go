package postgres

import (
	"errors"
	"fmt"

	repo "arcade/internal/repository"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// mapErr translates driver-level failures into the repository's sentinel
// errors. A check_violation means a write tried to break the money >= 0 /
// views >= 0 invariant, which only the unsafe code paths can attempt.
func mapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repo.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.CheckViolation {
		return repo.ErrInsufficientFunds
	}
	return fmt.Errorf("%s: %w", op, err)
}
