package auditlog

import (
	"context"

	"go-hr-admin/internal/shared/contextutil"

	"go.uber.org/zap"
)

//go:generate mockgen -source=auditlog_service.go -destination=mock/auditlog_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, filter ListFilter) ([]Entry, int64, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("auditlog.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auditlog.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]Entry, int64, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("list audit entries",
		zap.String("tabela", filter.Table),
		zap.Int64("referencia", filter.Reference),
	)

	entries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		log.Error("list audit entries failed", zap.Error(err))
		return nil, 0, err
	}
	return entries, total, nil
}
