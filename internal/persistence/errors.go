package persistence

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"miniblog/internal/core"
)

const uniqueViolationCode = "23505"

func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// Translate maps driver errors onto core sentinels, what is a record describes the missing entity.
func Translate(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %s", core.ErrNotFound, what)
	case IsUniqueViolation(err):
		return fmt.Errorf("%w: %s already exists", core.ErrConflict, what)
	default:
		return err
	}
}
