package app

import (
	"context"
	"fmt"

	"go-hr-admin/internal/config"
	"go-hr-admin/internal/messaging/kafka"
	"go-hr-admin/internal/messaging/kafka/producer"
	"go-hr-admin/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker publishes queued outbox events to Kafka until interrupted.
func RunWorker(cfg *config.Config) error {
	logger := zap.L().Named("app.worker")

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

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.Kafka.Broker, cfg.Database.MaxRetries)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(gormDB)

	runUntilSignal(shutdownSignal(), logger, "worker", func(ctx context.Context) {
		producer.ProcessOutboxEvents(
			ctx,
			outboxRepo,
			kafkaWriter,
			logger,
			cfg.Kafka.PollInterval,
		)
	})

	return nil
}
