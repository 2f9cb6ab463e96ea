package branch

import (
	"errors"

	brancherrors "go-hr-admin/internal/branch/errors"

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
			return brancherrors.ErrDuplicateName
		case "23503":
			return brancherrors.ErrBranchInUse
		}
	}

	return err
}
