package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicate indicates a unique constraint rejected the write. The
// applications (user, job) pair constraint is the authoritative duplicate
// check; callers map this to the DUPLICATE outcome.
var ErrDuplicate = errors.New("repository: duplicate")

const uniqueViolationCode = "23505"

func translateUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return ErrDuplicate
	}
	return err
}
