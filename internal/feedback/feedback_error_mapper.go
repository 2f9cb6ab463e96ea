package feedback

import (
	"errors"
	"strings"

	feedbackerrors "go-hr-admin/internal/feedback/errors"

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
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		if strings.Contains(pgErr.ConstraintName, "filial") {
			return feedbackerrors.ErrUnknownBranch
		}
		return feedbackerrors.ErrUnknownEmployee
	}

	return err
}
