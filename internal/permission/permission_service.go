package permission

import (
	"context"
	"errors"
	"strings"

	"go-hr-admin/internal/auditlog"
	permissionerrors "go-hr-admin/internal/permission/errors"
	"go-hr-admin/internal/shared/apperror"
	"go-hr-admin/internal/shared/contextutil"
	"go-hr-admin/internal/shared/optioncache"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=permission_service.go -destination=mock/permission_service_mock.go -package=mock
type Service interface {
	Search(ctx context.Context, criteria SearchCriteria) ([]Permission, int64, error)
	Get(ctx context.Context, id int64) (*Permission, error)
	Save(ctx context.Context, in PermissionInput) (*Permission, error)
	SoftDelete(ctx context.Context, id int64) error
	Options(ctx context.Context) ([]optioncache.Option, error)
}

type service struct {
	db       *gorm.DB
	repo     Repository
	audit    auditlog.Repository
	options  *optioncache.Cache
	validate *validator.Validate
	logger   *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	audit auditlog.Repository,
	options *optioncache.Cache,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("permission.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("permission.service")
	}
	if options == nil {
		options = optioncache.New(nil, OptionsKey, optioncache.DefaultTTL, l)
	}
	return &service{
		db:       db,
		repo:     repo,
		audit:    audit,
		options:  options,
		validate: apperror.NewValidator(),
		logger:   l,
	}
}

func (s *service) Search(ctx context.Context, criteria SearchCriteria) ([]Permission, int64, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("search permissions requested", zap.Any("criteria", criteria))

	results, total, err := s.repo.Search(ctx, criteria)
	if err != nil {
		log.Error("search permissions failed", zap.Error(err))
		return nil, 0, err
	}
	return results, total, nil
}

func (s *service) Get(ctx context.Context, id int64) (*Permission, error) {
	p, err := s.repo.FindOne(ctx, id)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("get permission failed", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return p, nil
}

// Save inserts when in.ID is nil or zero and otherwise merges in over the stored row.
// A nil result with a nil error means nothing was written.
func (s *service) Save(ctx context.Context, in PermissionInput) (*Permission, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if err := s.validate.Struct(in); err != nil {
		log.Warn("save permission validation failed", zap.Error(err))
		return nil, apperror.MapValidationError(err)
	}

	var saved *Permission
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		audit := s.audit.WithTx(tx)

		if in.ID == nil || *in.ID == 0 {
			if in.Description == nil || strings.TrimSpace(*in.Description) == "" {
				return permissionerrors.ErrInvalidDescription
			}
			p := &Permission{Description: strings.TrimSpace(*in.Description)}
			if err := repo.Create(ctx, p); err != nil {
				return mapRepositoryError(err, permissionerrors.ErrUpdateFailed)
			}
			if err := audit.Record(ctx, TableName, auditlog.ActionInsert, p.ID); err != nil {
				return err
			}
			saved = p
			return nil
		}

		current, err := repo.FindByID(ctx, *in.ID)
		if err != nil {
			return mapRepositoryError(err, permissionerrors.ErrUpdateFailed)
		}
		if in.Description != nil {
			if strings.TrimSpace(*in.Description) == "" {
				return permissionerrors.ErrInvalidDescription
			}
			current.Description = strings.TrimSpace(*in.Description)
		}

		affected, err := repo.Save(ctx, current)
		if err != nil {
			return mapRepositoryError(err, permissionerrors.ErrUpdateFailed)
		}
		if affected == 0 {
			return nil
		}
		if err := audit.Record(ctx, TableName, auditlog.ActionUpdate, current.ID); err != nil {
			return err
		}
		saved = current
		return nil
	})
	if err != nil {
		logFailure(log, "save permission failed", err)
		return nil, err
	}

	s.options.Invalidate(ctx)
	if saved != nil {
		log.Info("save permission success", zap.Int64("id", saved.ID))
	}
	return saved, nil
}

func (s *service) SoftDelete(ctx context.Context, id int64) error {
	log := contextutil.GetLogger(ctx, s.logger)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if _, err := repo.FindActiveByID(ctx, id); err != nil {
			return mapRepositoryError(err, permissionerrors.ErrDeleteFailed)
		}
		affected, err := repo.Deactivate(ctx, id)
		if err != nil {
			return err
		}
		if affected == 0 {
			return permissionerrors.ErrDeleteFailed
		}
		return s.audit.WithTx(tx).Record(ctx, TableName, auditlog.ActionDelete, id)
	})
	if err != nil {
		logFailure(log, "delete permission failed", err)
		return err
	}

	s.options.Invalidate(ctx)
	log.Info("delete permission success", zap.Int64("id", id))
	return nil
}

func (s *service) Options(ctx context.Context) ([]optioncache.Option, error) {
	return s.options.Get(ctx, s.repo.Options)
}

func logFailure(log *zap.Logger, msg string, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		log.Warn(msg, zap.String("kind", appErr.Kind.String()), zap.Error(err))
		return
	}
	log.Error(msg, zap.Error(err))
}
