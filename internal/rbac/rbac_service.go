package rbac

import (
	"strconv"
	"strings"
	"sync"

	"go-hr-admin/internal/domain"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	LoadEmployeePolicy(employeeID int64) error
	Enforce(req domain.EnforceRequest) (bool, error)
	Permissions(employeeID int64) ([]string, error)
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	mu       sync.Mutex
	logger   *zap.Logger
}

func NewService(repo Repository, enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{
		repo:     repo,
		enforcer: enforcer,
		logger:   l,
	}
}

func subject(employeeID int64) string {
	return "funcionario:" + strconv.FormatInt(employeeID, 10)
}

func (s *service) LoadEmployeePolicy(employeeID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.loadEmployeePolicyUnlocked(employeeID)
	return err
}

// loadEmployeePolicyUnlocked replaces the employee's grouping policies with
// the current permission descriptions from the database.
func (s *service) loadEmployeePolicyUnlocked(employeeID int64) ([]string, error) {
	descriptions, err := s.repo.PermissionDescriptions(employeeID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(descriptions))
	roles := make([]string, 0, len(descriptions))
	for _, d := range descriptions {
		d = strings.ToLower(strings.TrimSpace(d))
		if d == "" {
			continue
		}
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		roles = append(roles, d)
	}

	sub := subject(employeeID)
	if _, err := s.enforcer.DeleteRolesForUser(sub); err != nil {
		return nil, err
	}
	if len(roles) > 0 {
		if _, err := s.enforcer.AddRolesForUser(sub, roles); err != nil {
			return nil, err
		}
	}

	s.logger.Debug("rbac policy loaded",
		zap.Int64("employee_id", employeeID),
		zap.Strings("permissions", roles),
	)
	return roles, nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.loadEmployeePolicyUnlocked(req.EmployeeID); err != nil {
		return false, err
	}

	allowed, err := s.enforcer.Enforce(subject(req.EmployeeID), req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.Int64("employee_id", req.EmployeeID),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.Int64("employee_id", req.EmployeeID),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

func (s *service) Permissions(employeeID int64) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadEmployeePolicyUnlocked(employeeID)
}
