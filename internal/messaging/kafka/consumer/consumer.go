package consumer

import (
	"context"
	"encoding/json"
	"time"

	"go-hr-admin/internal/events"
	"go-hr-admin/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the subset of *kafkago.Reader the consumers use.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// AssignmentRemover drops the branch assignments of an employee.
type AssignmentRemover interface {
	RemoveEmployeeAssignments(ctx context.Context, employeeID int64) (int64, error)
}

const (
	defaultRetryDelay    = time.Second
	defaultMaxRetryDelay = 30 * time.Second
)

// Backoff bounds the wait between attempts at a failing message.
type Backoff struct {
	Initial time.Duration
	Max     time.Duration
}

func (b Backoff) next(d time.Duration) time.Duration {
	if d <= 0 {
		return b.Initial
	}
	return min(d*2, b.Max)
}

// ConsumeEmployeeLifecycle removes the branch assignments of deactivated
// employees. Other lifecycle events are acknowledged and skipped. A failing
// removal is retried on the same message until it succeeds or ctx is done,
// so the group offset never moves past an unhandled event.
func ConsumeEmployeeLifecycle(
	ctx context.Context,
	reader MessageReader,
	assignments AssignmentRemover,
	logger *zap.Logger,
) {
	ConsumeEmployeeLifecycleWithBackoff(ctx, reader, assignments, logger, Backoff{
		Initial: defaultRetryDelay,
		Max:     defaultMaxRetryDelay,
	})
}

func ConsumeEmployeeLifecycleWithBackoff(
	ctx context.Context,
	reader MessageReader,
	assignments AssignmentRemover,
	logger *zap.Logger,
	backoff Backoff,
) {
	log := logger.Named("kafka.consumer.employee_lifecycle")
	log.Info("employee lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("employee lifecycle consumer stopped")
				return
			}
			log.Error("fetch employee lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.EmployeeLifecycleEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode employee lifecycle event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if event.EventType != events.EmployeeDeactivated {
			log.Debug("employee lifecycle event skipped",
				zap.String("event_type", event.EventType),
				zap.Int64("employee_id", event.EmployeeID),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		eventCtx := contextutil.WithRequestID(ctx, event.RequestID)
		if event.ActorID != nil {
			eventCtx = contextutil.WithEmployeeID(eventCtx, *event.ActorID)
		}

		removed, ok := removeWithRetry(eventCtx, assignments, event.EmployeeID, backoff, log)
		if !ok {
			log.Info("employee lifecycle consumer stopped")
			return
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit employee lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("branch assignments removed for deactivated employee",
			zap.Int64("employee_id", event.EmployeeID),
			zap.Int64("removed", removed),
		)
	}
}

// removeWithRetry reports false only when ctx ends before a removal succeeds.
func removeWithRetry(
	ctx context.Context,
	assignments AssignmentRemover,
	employeeID int64,
	backoff Backoff,
	log *zap.Logger,
) (int64, bool) {
	var delay time.Duration
	for attempt := 1; ; attempt++ {
		removed, err := assignments.RemoveEmployeeAssignments(ctx, employeeID)
		if err == nil {
			return removed, true
		}

		delay = backoff.next(delay)
		log.Error("remove branch assignments failed",
			zap.Int64("employee_id", employeeID),
			zap.Int("attempt", attempt),
			zap.Duration("retry_in", delay),
			zap.Error(err),
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return 0, false
		case <-timer.C:
		}
	}
}
