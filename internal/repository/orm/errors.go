package orm

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/jwalitptl/nutri-api/internal/repository"
)

// sqlite extended result codes and the SQLSTATE they correspond to
var sqliteCodes = map[int]string{
	2067: "23505", // SQLITE_CONSTRAINT_UNIQUE
	1555: "23505", // SQLITE_CONSTRAINT_PRIMARYKEY
	1299: "23502", // SQLITE_CONSTRAINT_NOTNULL
	787:  "23503", // SQLITE_CONSTRAINT_FOREIGNKEY
	275:  "23514", // SQLITE_CONSTRAINT_CHECK
}

type sqliteError interface {
	error
	Code() int
}

func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repository.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &repository.Error{
			Code:    pgErr.Code,
			Message: pgErr.Message,
			Details: pgErr.Detail,
			Err:     err,
		}
	}

	var liteErr sqliteError
	if errors.As(err, &liteErr) {
		return &repository.Error{
			Code:    sqliteCodes[liteErr.Code()],
			Message: liteErr.Error(),
			Err:     err,
		}
	}

	return &repository.Error{Message: err.Error(), Err: err}
}
