package branch

import (
	"context"

	"go-hr-admin/internal/auditlog"
	brancherrors "go-hr-admin/internal/branch/errors"
	"go-hr-admin/internal/shared/apperror"
	"go-hr-admin/internal/shared/contextutil"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=assignment_service.go -destination=mock/assignment_service_mock.go -package=mock
type AssignmentService interface {
	Search(ctx context.Context, criteria AssignmentCriteria) ([]Assignment, int64, error)
	Get(ctx context.Context, id int64) (*Assignment, error)
	Save(ctx context.Context, in AssignmentInput) (*Assignment, error)
	Delete(ctx context.Context, id int64) error
	RemoveEmployeeAssignments(ctx context.Context, employeeID int64) (int64, error)
}

type assignmentService struct {
	db       *gorm.DB
	repo     AssignmentRepository
	audit    auditlog.Repository
	validate *validator.Validate
	logger   *zap.Logger
}

func NewAssignmentService(db *gorm.DB, repo AssignmentRepository, audit auditlog.Repository, logger ...*zap.Logger) AssignmentService {
	l := zap.L().Named("branch.assignment.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("branch.assignment.service")
	}
	return &assignmentService{
		db:       db,
		repo:     repo,
		audit:    audit,
		validate: apperror.NewValidator(),
		logger:   l,
	}
}

func (s *assignmentService) Search(ctx context.Context, criteria AssignmentCriteria) ([]Assignment, int64, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("search branch assignments requested", zap.Any("criteria", criteria))

	results, total, err := s.repo.Search(ctx, criteria)
	if err != nil {
		log.Error("search branch assignments failed", zap.Error(err))
		return nil, 0, err
	}
	return results, total, nil
}

func (s *assignmentService) Get(ctx context.Context, id int64) (*Assignment, error) {
	a, err := s.repo.FindOne(ctx, id)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("get branch assignment failed", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return a, nil
}

func (s *assignmentService) Save(ctx context.Context, in AssignmentInput) (*Assignment, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if err := s.validate.Struct(in); err != nil {
		log.Warn("save branch assignment validation failed", zap.Error(err))
		return nil, apperror.MapValidationError(err)
	}

	var savedID int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		audit := s.audit.WithTx(tx)

		if in.ID == nil || *in.ID == 0 {
			switch {
			case in.EmployeeID == nil:
				return apperror.RequiredField("Funcionario")
			case in.RoleID == nil:
				return apperror.RequiredField("Cargo")
			case in.BranchID == nil:
				return apperror.RequiredField("Filial")
			}
			a := &Assignment{EmployeeID: *in.EmployeeID, RoleID: *in.RoleID, BranchID: *in.BranchID}
			if err := checkReferences(ctx, repo, in); err != nil {
				return err
			}
			if err := repo.Create(ctx, a); err != nil {
				return mapRepositoryError(err, brancherrors.ErrAssignmentUpdateFailed)
			}
			if err := audit.Record(ctx, AssignmentTableName, auditlog.ActionInsert, a.ID); err != nil {
				return err
			}
			savedID = a.ID
			return nil
		}

		current, err := repo.FindByID(ctx, *in.ID)
		if err != nil {
			return mapRepositoryError(err, brancherrors.ErrAssignmentUpdateFailed)
		}
		if err := checkReferences(ctx, repo, in); err != nil {
			return err
		}
		if in.EmployeeID != nil {
			current.EmployeeID = *in.EmployeeID
		}
		if in.RoleID != nil {
			current.RoleID = *in.RoleID
		}
		if in.BranchID != nil {
			current.BranchID = *in.BranchID
		}

		affected, err := repo.Save(ctx, current)
		if err != nil {
			return mapRepositoryError(err, brancherrors.ErrAssignmentUpdateFailed)
		}
		if affected == 0 {
			return nil
		}
		if err := audit.Record(ctx, AssignmentTableName, auditlog.ActionUpdate, current.ID); err != nil {
			return err
		}
		savedID = current.ID
		return nil
	})
	if err != nil {
		logFailure(log, "save branch assignment failed", err)
		return nil, err
	}
	if savedID == 0 {
		return nil, nil
	}

	log.Info("save branch assignment success", zap.Int64("id", savedID))
	return s.repo.FindOne(ctx, savedID)
}

// checkReferences validates only the references present in the input.
func checkReferences(ctx context.Context, repo AssignmentRepository, in AssignmentInput) error {
	if in.EmployeeID != nil {
		ok, err := repo.EmployeeActive(ctx, *in.EmployeeID)
		if err != nil {
			return err
		}
		if !ok {
			return brancherrors.ErrUnknownEmployee
		}
	}
	if in.RoleID != nil {
		ok, err := repo.RoleExists(ctx, *in.RoleID)
		if err != nil {
			return err
		}
		if !ok {
			return brancherrors.ErrUnknownRole
		}
	}
	if in.BranchID != nil {
		ok, err := repo.BranchExists(ctx, *in.BranchID)
		if err != nil {
			return err
		}
		if !ok {
			return brancherrors.ErrUnknownBranch
		}
	}
	return nil
}

func (s *assignmentService) Delete(ctx context.Context, id int64) error {
	log := contextutil.GetLogger(ctx, s.logger)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		affected, err := repo.Delete(ctx, id)
		if err != nil {
			return err
		}
		if affected == 0 {
			return brancherrors.ErrAssignmentDeleteFailed
		}
		return s.audit.WithTx(tx).Record(ctx, AssignmentTableName, auditlog.ActionDelete, id)
	})
	if err != nil {
		logFailure(log, "delete branch assignment failed", err)
		return err
	}

	log.Info("delete branch assignment success", zap.Int64("id", id))
	return nil
}

// RemoveEmployeeAssignments drops every assignment of an employee and returns
// how many were removed.
func (s *assignmentService) RemoveEmployeeAssignments(ctx context.Context, employeeID int64) (int64, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	var removed int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		ids, err := repo.IDsByEmployee(ctx, employeeID)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		removed, err = repo.DeleteByEmployee(ctx, employeeID)
		if err != nil {
			return err
		}

		audit := s.audit.WithTx(tx)
		for _, id := range ids {
			if err := audit.Record(ctx, AssignmentTableName, auditlog.ActionDelete, id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error("remove employee assignments failed", zap.Int64("employee_id", employeeID), zap.Error(err))
		return 0, err
	}

	log.Info("remove employee assignments success", zap.Int64("employee_id", employeeID), zap.Int64("removed", removed))
	return removed, nil
}
