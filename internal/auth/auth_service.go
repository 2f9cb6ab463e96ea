package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	autherrors "go-hr-admin/internal/auth/errors"
	"go-hr-admin/internal/shared/apperror"
	"go-hr-admin/internal/shared/contextutil"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Me(ctx context.Context, employeeID int64) (*Account, error)
}

// Issuer signs access tokens for an employee.
type Issuer interface {
	Issue(employeeID int64) (string, time.Time, error)
}

// PolicyLoader refreshes the authorization policy of one employee.
type PolicyLoader interface {
	LoadEmployeePolicy(employeeID int64) error
}

type service struct {
	repo     Repository
	tokens   Issuer
	policies PolicyLoader
	logger   *zap.Logger
}

func NewService(repo Repository, tokens Issuer, policies PolicyLoader, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{repo: repo, tokens: tokens, policies: policies, logger: l}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	email := strings.TrimSpace(req.Email)

	account, err := s.repo.FindActiveByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error("login lookup failed", zap.Error(err))
		}
		return nil, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(req.Password)); err != nil {
		log.Warn("login rejected", zap.Int64("employee_id", account.ID))
		return nil, autherrors.ErrInvalidCredentials
	}

	if err := s.policies.LoadEmployeePolicy(account.ID); err != nil {
		log.Error("load employee policy failed", zap.Int64("employee_id", account.ID), zap.Error(err))
		return nil, err
	}

	token, expiresAt, err := s.tokens.Issue(account.ID)
	if err != nil {
		log.Error("issue token failed", zap.Int64("employee_id", account.ID), zap.Error(err))
		return nil, err
	}

	log.Info("employee logged in", zap.Int64("employee_id", account.ID))
	account.Password = ""
	return &LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
		Employee:  account,
	}, nil
}

func (s *service) Me(ctx context.Context, employeeID int64) (*Account, error) {
	account, err := s.repo.FindActiveByID(ctx, employeeID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			contextutil.GetLogger(ctx, s.logger).Error("load current employee failed",
				zap.Int64("employee_id", employeeID),
				zap.Error(err),
			)
		}
		return nil, apperror.ErrUnauthorized
	}
	account.Password = ""
	return account, nil
}
