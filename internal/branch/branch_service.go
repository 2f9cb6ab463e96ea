package branch

import (
	"context"
	"errors"
	"strings"

	"go-hr-admin/internal/auditlog"
	brancherrors "go-hr-admin/internal/branch/errors"
	"go-hr-admin/internal/shared/apperror"
	"go-hr-admin/internal/shared/contextutil"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=branch_service.go -destination=mock/branch_service_mock.go -package=mock
type Service interface {
	Search(ctx context.Context, criteria SearchCriteria) ([]Branch, int64, error)
	Get(ctx context.Context, id int64) (*Branch, error)
	Save(ctx context.Context, in BranchInput) (*Branch, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	db       *gorm.DB
	repo     Repository
	audit    auditlog.Repository
	validate *validator.Validate
	logger   *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, audit auditlog.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("branch.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("branch.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		audit:    audit,
		validate: apperror.NewValidator(),
		logger:   l,
	}
}

func (s *service) Search(ctx context.Context, criteria SearchCriteria) ([]Branch, int64, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("search branches requested", zap.Any("criteria", criteria))

	results, total, err := s.repo.Search(ctx, criteria)
	if err != nil {
		log.Error("search branches failed", zap.Error(err))
		return nil, 0, err
	}
	return results, total, nil
}

func (s *service) Get(ctx context.Context, id int64) (*Branch, error) {
	b, err := s.repo.FindOne(ctx, id)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("get branch failed", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return b, nil
}

func (s *service) Save(ctx context.Context, in BranchInput) (*Branch, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if err := s.validate.Struct(in); err != nil {
		log.Warn("save branch validation failed", zap.Error(err))
		return nil, apperror.MapValidationError(err)
	}

	var saved *Branch
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		audit := s.audit.WithTx(tx)

		if in.ID == nil || *in.ID == 0 {
			if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
				return brancherrors.ErrInvalidName
			}
			b := &Branch{Name: strings.TrimSpace(*in.Name)}
			if err := repo.Create(ctx, b); err != nil {
				return mapRepositoryError(err, brancherrors.ErrUpdateFailed)
			}
			if err := audit.Record(ctx, TableName, auditlog.ActionInsert, b.ID); err != nil {
				return err
			}
			saved = b
			return nil
		}

		current, err := repo.FindByID(ctx, *in.ID)
		if err != nil {
			return mapRepositoryError(err, brancherrors.ErrUpdateFailed)
		}
		if in.Name != nil {
			if strings.TrimSpace(*in.Name) == "" {
				return brancherrors.ErrInvalidName
			}
			current.Name = strings.TrimSpace(*in.Name)
		}

		affected, err := repo.Save(ctx, current)
		if err != nil {
			return mapRepositoryError(err, brancherrors.ErrUpdateFailed)
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
		logFailure(log, "save branch failed", err)
		return nil, err
	}

	if saved != nil {
		log.Info("save branch success", zap.Int64("id", saved.ID))
	}
	return saved, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	log := contextutil.GetLogger(ctx, s.logger)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if _, err := repo.FindByID(ctx, id); err != nil {
			return mapRepositoryError(err, brancherrors.ErrDeleteFailed)
		}
		inUse, err := repo.InUse(ctx, id)
		if err != nil {
			return err
		}
		if inUse {
			return brancherrors.ErrBranchInUse
		}
		affected, err := repo.Delete(ctx, id)
		if err != nil {
			return mapRepositoryError(err, brancherrors.ErrDeleteFailed)
		}
		if affected == 0 {
			return brancherrors.ErrDeleteFailed
		}
		return s.audit.WithTx(tx).Record(ctx, TableName, auditlog.ActionDelete, id)
	})
	if err != nil {
		logFailure(log, "delete branch failed", err)
		return err
	}

	log.Info("delete branch success", zap.Int64("id", id))
	return nil
}

func logFailure(log *zap.Logger, msg string, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		log.Warn(msg, zap.String("kind", appErr.Kind.String()), zap.Error(err))
		return
	}
	log.Error(msg, zap.Error(err))
}
