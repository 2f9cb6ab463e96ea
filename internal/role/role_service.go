package role

import (
	"context"
	"errors"
	"strings"

	"go-hr-admin/internal/auditlog"
	roleerrors "go-hr-admin/internal/role/errors"
	"go-hr-admin/internal/shared/apperror"
	"go-hr-admin/internal/shared/contextutil"
	"go-hr-admin/internal/shared/optioncache"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=role_service.go -destination=mock/role_service_mock.go -package=mock
type Service interface {
	Search(ctx context.Context, criteria SearchCriteria) ([]Role, int64, error)
	Get(ctx context.Context, id int64) (*Role, error)
	Save(ctx context.Context, in RoleInput) (*Role, error)
	Delete(ctx context.Context, id int64) error
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
	l := zap.L().Named("role.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("role.service")
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

func (s *service) Search(ctx context.Context, criteria SearchCriteria) ([]Role, int64, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("search roles requested", zap.Any("criteria", criteria))

	results, total, err := s.repo.Search(ctx, criteria)
	if err != nil {
		log.Error("search roles failed", zap.Error(err))
		return nil, 0, err
	}
	return results, total, nil
}

func (s *service) Get(ctx context.Context, id int64) (*Role, error) {
	role, err := s.repo.FindOne(ctx, id)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("get role failed", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return role, nil
}

func (s *service) Save(ctx context.Context, in RoleInput) (*Role, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if err := s.validate.Struct(in); err != nil {
		log.Warn("save role validation failed", zap.Error(err))
		return nil, apperror.MapValidationError(err)
	}

	var saved *Role
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		audit := s.audit.WithTx(tx)

		if in.ID == nil || *in.ID == 0 {
			if in.Description == nil || strings.TrimSpace(*in.Description) == "" {
				return roleerrors.ErrInvalidDescription
			}
			role := &Role{Description: strings.TrimSpace(*in.Description)}
			if err := repo.Create(ctx, role); err != nil {
				return mapRepositoryError(err, roleerrors.ErrUpdateFailed)
			}
			if err := audit.Record(ctx, TableName, auditlog.ActionInsert, role.ID); err != nil {
				return err
			}
			saved = role
			return nil
		}

		current, err := repo.FindByID(ctx, *in.ID)
		if err != nil {
			return mapRepositoryError(err, roleerrors.ErrUpdateFailed)
		}
		if in.Description != nil {
			if strings.TrimSpace(*in.Description) == "" {
				return roleerrors.ErrInvalidDescription
			}
			current.Description = strings.TrimSpace(*in.Description)
		}

		affected, err := repo.Save(ctx, current)
		if err != nil {
			return mapRepositoryError(err, roleerrors.ErrUpdateFailed)
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
		logFailure(log, "save role failed", err)
		return nil, err
	}

	s.options.Invalidate(ctx)
	if saved != nil {
		log.Info("save role success", zap.Int64("id", saved.ID))
	}
	return saved, nil
}

// Delete removes the row; roles still assigned in a branch are kept.
func (s *service) Delete(ctx context.Context, id int64) error {
	log := contextutil.GetLogger(ctx, s.logger)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if _, err := repo.FindByID(ctx, id); err != nil {
			return mapRepositoryError(err, roleerrors.ErrDeleteFailed)
		}
		inUse, err := repo.InUse(ctx, id)
		if err != nil {
			return err
		}
		if inUse {
			return roleerrors.ErrRoleInUse
		}
		affected, err := repo.Delete(ctx, id)
		if err != nil {
			return mapRepositoryError(err, roleerrors.ErrDeleteFailed)
		}
		if affected == 0 {
			return roleerrors.ErrDeleteFailed
		}
		return s.audit.WithTx(tx).Record(ctx, TableName, auditlog.ActionDelete, id)
	})
	if err != nil {
		logFailure(log, "delete role failed", err)
		return err
	}

	s.options.Invalidate(ctx)
	log.Info("delete role success", zap.Int64("id", id))
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
