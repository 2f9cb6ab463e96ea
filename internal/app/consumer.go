package app

import (
	"context"
	"fmt"

	"go-hr-admin/internal/auditlog"
	"go-hr-admin/internal/branch"
	"go-hr-admin/internal/config"
	"go-hr-admin/internal/events"
	"go-hr-admin/internal/messaging/kafka/consumer"
	"go-hr-admin/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const lifecycleConsumerGroup = "rh-admin-branch-assignments"

// RunConsumer reacts to employee lifecycle events until interrupted.
func RunConsumer(cfg *config.Config) error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if cfg.Kafka.Broker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	assignmentService := branch.NewAssignmentService(
		gormDB,
		branch.NewAssignmentRepository(gormDB),
		auditlog.NewRepository(gormDB),
		logger,
	)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.Kafka.Broker},
		Topic:          events.EmployeeLifecycleTopic,
		GroupID:        lifecycleConsumerGroup,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	runUntilSignal(shutdownSignal(), logger, "consumer", func(ctx context.Context) {
		consumer.ConsumeEmployeeLifecycle(ctx, reader, assignmentService, logger)
	})

	return nil
}
