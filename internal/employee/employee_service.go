package employee

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"go-hr-admin/internal/auditlog"
	employeeerrors "go-hr-admin/internal/employee/errors"
	"go-hr-admin/internal/events"
	"go-hr-admin/internal/messaging/kafka"
	"go-hr-admin/internal/shared/apperror"
	"go-hr-admin/internal/shared/contextutil"
	"go-hr-admin/internal/shared/dateutil"
	"go-hr-admin/internal/shared/query"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Search(ctx context.Context, criteria SearchCriteria) ([]Employee, int64, error)
	FindOne(ctx context.Context, criteria SearchCriteria) (*Employee, error)
	Save(ctx context.Context, in EmployeeInput) (*Employee, error)
	SoftDelete(ctx context.Context, id int64) error
	SetPermissions(ctx context.Context, id int64, permissionIDs []int64) (*Employee, error)
}

type service struct {
	db       *gorm.DB
	repo     Repository
	audit    auditlog.Repository
	outbox   kafka.OutboxRepository
	validate *validator.Validate
	hashCost int
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, audit auditlog.Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, audit, nil, logger...)
}

// NewServiceWithOutbox queues a lifecycle event in the same transaction as
// every create, update and deactivation.
func NewServiceWithOutbox(
	db *gorm.DB,
	repo Repository,
	audit auditlog.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		audit:    audit,
		outbox:   outboxRepo,
		validate: apperror.NewValidator(),
		hashCost: bcrypt.DefaultCost,
		now:      func() time.Time { return time.Now().UTC() },
		logger:   l,
	}
}

func (s *service) Search(ctx context.Context, criteria SearchCriteria) ([]Employee, int64, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("search employees requested", zap.Any("criteria", criteria))

	results, total, err := s.repo.Search(ctx, criteria)
	if err != nil {
		log.Error("search employees failed", zap.Error(err))
		return nil, 0, err
	}
	return results, total, nil
}

func (s *service) FindOne(ctx context.Context, criteria SearchCriteria) (*Employee, error) {
	e, err := s.repo.FindOne(ctx, criteria)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("find employee failed", zap.Int64("id", criteria.ID), zap.Error(err))
		return nil, err
	}
	return e, nil
}

// Save inserts when in.ID is nil or zero and otherwise merges the provided fields over
// the stored row. A nil result with a nil error means nothing was written.
func (s *service) Save(ctx context.Context, in EmployeeInput) (*Employee, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if err := s.validate.Struct(in); err != nil {
		log.Warn("save employee validation failed", zap.Error(err))
		return nil, apperror.MapValidationError(err)
	}

	var saved *Employee
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		audit := s.audit.WithTx(tx)

		if in.ID == nil || *in.ID == 0 {
			e, err := s.newEmployee(in)
			if err != nil {
				return err
			}
			if err := s.ensureEmailFree(ctx, repo, e.Email, 0); err != nil {
				return err
			}
			if err := repo.Create(ctx, e); err != nil {
				return mapRepositoryError(err, employeeerrors.ErrUpdateFailed)
			}
			if err := audit.Record(ctx, TableName, auditlog.ActionInsert, e.ID); err != nil {
				return err
			}
			if err := s.enqueue(ctx, tx, events.EmployeeCreated, e); err != nil {
				return err
			}
			saved = e
			return nil
		}

		current, err := repo.FindByID(ctx, *in.ID)
		if err != nil {
			return mapRepositoryError(err, employeeerrors.ErrUpdateFailed)
		}
		previousEmail := current.Email
		if err := s.merge(current, in); err != nil {
			return err
		}
		if !strings.EqualFold(previousEmail, current.Email) {
			if err := s.ensureEmailFree(ctx, repo, current.Email, current.ID); err != nil {
				return err
			}
		}

		affected, err := repo.Save(ctx, current)
		if err != nil {
			return mapRepositoryError(err, employeeerrors.ErrUpdateFailed)
		}
		if affected == 0 {
			return nil
		}
		if err := audit.Record(ctx, TableName, auditlog.ActionUpdate, current.ID); err != nil {
			return err
		}
		if err := s.enqueue(ctx, tx, events.EmployeeUpdated, current); err != nil {
			return err
		}
		saved = current
		return nil
	})
	if err != nil {
		logFailure(log, "save employee failed", err)
		return nil, err
	}
	if saved == nil {
		return nil, nil
	}

	saved.Password = ""
	log.Info("save employee success", zap.Int64("id", saved.ID))
	return saved, nil
}

func (s *service) newEmployee(in EmployeeInput) (*Employee, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return nil, apperror.RequiredField("Nome")
	}
	if in.Email == nil || strings.TrimSpace(*in.Email) == "" {
		return nil, apperror.RequiredField("Email")
	}
	if in.Password == nil || *in.Password == "" {
		return nil, apperror.RequiredField("Senha")
	}

	e := &Employee{
		Name:  strings.TrimSpace(*in.Name),
		Email: strings.TrimSpace(*in.Email),
		Sex:   in.Sex,
		Photo: in.Photo,
	}
	if err := s.applyBirthDate(e, in.BirthDate); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), s.hashCost)
	if err != nil {
		return nil, err
	}
	e.Password = string(hash)
	return e, nil
}

func (s *service) merge(current *Employee, in EmployeeInput) error {
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return apperror.RequiredField("Nome")
		}
		current.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		if strings.TrimSpace(*in.Email) == "" {
			return apperror.RequiredField("Email")
		}
		current.Email = strings.TrimSpace(*in.Email)
	}
	if in.BirthDate != nil {
		if err := s.applyBirthDate(current, in.BirthDate); err != nil {
			return err
		}
	}
	if in.Sex != nil {
		current.Sex = in.Sex
	}
	if in.Photo != nil {
		current.Photo = in.Photo
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), s.hashCost)
		if err != nil {
			return err
		}
		current.Password = string(hash)
	}
	return nil
}

// applyBirthDate clears the date on an empty string.
func (s *service) applyBirthDate(e *Employee, raw *string) error {
	if raw == nil {
		return nil
	}
	if strings.TrimSpace(*raw) == "" {
		e.BirthDate = nil
		return nil
	}
	t, ok := dateutil.Parse(*raw)
	if !ok {
		return employeeerrors.ErrInvalidBirthDate
	}
	e.BirthDate = &t
	return nil
}

func (s *service) ensureEmailFree(ctx context.Context, repo Repository, email string, exceptID int64) error {
	taken, err := repo.EmailInUse(ctx, email, exceptID)
	if err != nil {
		return err
	}
	if taken {
		return employeeerrors.ErrEmailTaken
	}
	return nil
}

func (s *service) enqueue(ctx context.Context, tx *gorm.DB, eventType string, e *Employee) error {
	if s.outbox == nil {
		return nil
	}

	meta := contextutil.ExtractMetadata(ctx)
	event := events.EmployeeLifecycleEvent{
		EventType:  eventType,
		RequestID:  meta.RequestID,
		EmployeeID: e.ID,
		ActorID:    meta.EmployeeID,
		Name:       e.Name,
		Email:      e.Email,
		OccurredAt: s.now(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     meta.RequestID,
		AggregateType: AggregateType,
		AggregateID:   strconv.FormatInt(e.ID, 10),
		EventType:     eventType,
		Topic:         events.EmployeeLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) SoftDelete(ctx context.Context, id int64) error {
	log := contextutil.GetLogger(ctx, s.logger)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		current, err := repo.FindActiveByID(ctx, id)
		if err != nil {
			return mapRepositoryError(err, employeeerrors.ErrDeleteFailed)
		}
		affected, err := repo.Deactivate(ctx, id)
		if err != nil {
			return err
		}
		if affected == 0 {
			return employeeerrors.ErrDeleteFailed
		}
		if err := s.audit.WithTx(tx).Record(ctx, TableName, auditlog.ActionDelete, id); err != nil {
			return err
		}
		return s.enqueue(ctx, tx, events.EmployeeDeactivated, current)
	})
	if err != nil {
		logFailure(log, "delete employee failed", err)
		return err
	}

	log.Info("delete employee success", zap.Int64("id", id))
	return nil
}

// SetPermissions replaces the employee's permission set and returns the
// refreshed employee.
func (s *service) SetPermissions(ctx context.Context, id int64, permissionIDs []int64) (*Employee, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	ids := uniqueIDs(permissionIDs)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if _, err := repo.FindActiveByID(ctx, id); err != nil {
			return mapRepositoryError(err, employeeerrors.ErrEmployeeNotFound)
		}
		if len(ids) > 0 {
			n, err := repo.CountActivePermissions(ctx, ids)
			if err != nil {
				return err
			}
			if n != int64(len(ids)) {
				return employeeerrors.ErrUnknownPermission
			}
		}
		if err := repo.ReplacePermissions(ctx, id, ids); err != nil {
			return mapRepositoryError(err, employeeerrors.ErrUnknownPermission)
		}
		return s.audit.WithTx(tx).Record(ctx, TableName, auditlog.ActionUpdate, id)
	})
	if err != nil {
		logFailure(log, "set employee permissions failed", err)
		return nil, err
	}

	log.Info("set employee permissions success", zap.Int64("id", id), zap.Int("count", len(ids)))
	return s.FindOne(ctx, SearchCriteria{ListParams: query.ListParams{ID: id}})
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func logFailure(log *zap.Logger, msg string, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		log.Warn(msg, zap.String("kind", appErr.Kind.String()), zap.Error(err))
		return
	}
	log.Error(msg, zap.Error(err))
}
