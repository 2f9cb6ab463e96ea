package feedback

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-hr-admin/internal/auditlog"
	feedbackerrors "go-hr-admin/internal/feedback/errors"
	"go-hr-admin/internal/shared/apperror"
	"go-hr-admin/internal/shared/contextutil"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=feedback_service.go -destination=mock/feedback_service_mock.go -package=mock
type Service interface {
	Search(ctx context.Context, criteria SearchCriteria) ([]Feedback, int64, error)
	Get(ctx context.Context, id int64) (*Feedback, error)
	Save(ctx context.Context, in FeedbackInput) (*Feedback, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	db       *gorm.DB
	repo     Repository
	audit    auditlog.Repository
	validate *validator.Validate
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, audit auditlog.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("feedback.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("feedback.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		audit:    audit,
		validate: apperror.NewValidator(),
		now:      func() time.Time { return time.Now().UTC() },
		logger:   l,
	}
}

func (s *service) Search(ctx context.Context, criteria SearchCriteria) ([]Feedback, int64, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("search feedbacks requested", zap.Any("criteria", criteria))

	results, total, err := s.repo.Search(ctx, criteria)
	if err != nil {
		log.Error("search feedbacks failed", zap.Error(err))
		return nil, 0, err
	}
	return results, total, nil
}

func (s *service) Get(ctx context.Context, id int64) (*Feedback, error) {
	f, err := s.repo.FindOne(ctx, id)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("get feedback failed", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return f, nil
}

func (s *service) Save(ctx context.Context, in FeedbackInput) (*Feedback, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if err := s.validate.Struct(in); err != nil {
		log.Warn("save feedback validation failed", zap.Error(err))
		return nil, apperror.MapValidationError(err)
	}

	var savedID int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		audit := s.audit.WithTx(tx)

		if in.ID == nil || *in.ID == 0 {
			if in.EmployeeID == nil {
				return apperror.RequiredField("Funcionario")
			}
			if in.Description == nil || strings.TrimSpace(*in.Description) == "" {
				return feedbackerrors.ErrInvalidDescription
			}
			f := &Feedback{
				EmployeeID:  *in.EmployeeID,
				Description: strings.TrimSpace(*in.Description),
				CreatedAt:   s.now(),
			}
			if err := applyReferences(ctx, repo, f, in); err != nil {
				return err
			}
			if err := repo.Create(ctx, f); err != nil {
				return mapRepositoryError(err, feedbackerrors.ErrUpdateFailed)
			}
			if err := audit.Record(ctx, TableName, auditlog.ActionInsert, f.ID); err != nil {
				return err
			}
			savedID = f.ID
			return nil
		}

		current, err := repo.FindByID(ctx, *in.ID)
		if err != nil {
			return mapRepositoryError(err, feedbackerrors.ErrUpdateFailed)
		}
		if in.Description != nil {
			if strings.TrimSpace(*in.Description) == "" {
				return feedbackerrors.ErrInvalidDescription
			}
			current.Description = strings.TrimSpace(*in.Description)
		}
		if err := applyReferences(ctx, repo, current, in); err != nil {
			return err
		}

		affected, err := repo.Save(ctx, current)
		if err != nil {
			return mapRepositoryError(err, feedbackerrors.ErrUpdateFailed)
		}
		if affected == 0 {
			return nil
		}
		if err := audit.Record(ctx, TableName, auditlog.ActionUpdate, current.ID); err != nil {
			return err
		}
		savedID = current.ID
		return nil
	})
	if err != nil {
		logFailure(log, "save feedback failed", err)
		return nil, err
	}
	if savedID == 0 {
		return nil, nil
	}

	log.Info("save feedback success", zap.Int64("id", savedID))
	return s.repo.FindOne(ctx, savedID)
}

// applyReferences checks and copies the employee and branch present in in.
func applyReferences(ctx context.Context, repo Repository, f *Feedback, in FeedbackInput) error {
	if in.EmployeeID != nil {
		ok, err := repo.EmployeeActive(ctx, *in.EmployeeID)
		if err != nil {
			return err
		}
		if !ok {
			return feedbackerrors.ErrUnknownEmployee
		}
		f.EmployeeID = *in.EmployeeID
	}

	if in.BranchID != nil {
		if *in.BranchID == 0 {
			f.BranchID = nil
			return nil
		}
		ok, err := repo.BranchExists(ctx, *in.BranchID)
		if err != nil {
			return err
		}
		if !ok {
			return feedbackerrors.ErrUnknownBranch
		}
		id := *in.BranchID
		f.BranchID = &id
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	log := contextutil.GetLogger(ctx, s.logger)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		affected, err := s.repo.WithTx(tx).Delete(ctx, id)
		if err != nil {
			return err
		}
		if affected == 0 {
			return feedbackerrors.ErrDeleteFailed
		}
		return s.audit.WithTx(tx).Record(ctx, TableName, auditlog.ActionDelete, id)
	})
	if err != nil {
		logFailure(log, "delete feedback failed", err)
		return err
	}

	log.Info("delete feedback success", zap.Int64("id", id))
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
