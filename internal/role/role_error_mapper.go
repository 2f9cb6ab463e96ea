package role

import (
	"errors"

	roleerrors "go-hr-admin/internal/role/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error, notFound error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return roleerrors.ErrDuplicateRole
		case "23503":
			return roleerrors.ErrRoleInUse
		}
	}

	return err
}
