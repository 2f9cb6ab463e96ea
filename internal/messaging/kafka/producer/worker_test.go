package producer_test

import (
	"context"
	"errors"
	"testing"

	"go-hr-admin/internal/messaging/kafka"
	kafkaMock "go-hr-admin/internal/messaging/kafka/mock"
	"go-hr-admin/internal/messaging/kafka/producer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type recordingWriter struct {
	messages []kafkago.Message
	failKey  string
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if string(m.Key) == w.failKey {
			return errors.New("broker unavailable")
		}
		w.messages = append(w.messages, m)
	}
	return nil
}

func TestProcessPendingEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := kafkaMock.NewMockOutboxRepository(ctrl)
	writer := &recordingWriter{failKey: "2"}
	ctx := context.Background()

	events := []kafka.OutboxEvent{
		{ID: "e1", AggregateID: "1", EventType: "employee_created", Topic: "rh.funcionario.lifecycle.v1", Payload: []byte("{}")},
		{ID: "e2", AggregateID: "2", EventType: "employee_updated", Topic: "rh.funcionario.lifecycle.v1", Payload: []byte("{}")},
	}

	gomock.InOrder(
		repo.EXPECT().ListPending(ctx, 50).Return(events, nil),
		repo.EXPECT().MarkSent(ctx, "e1").Return(nil),
		repo.EXPECT().MarkFailed(ctx, "e2", "broker unavailable").Return(nil),
	)

	sent, err := producer.ProcessPendingEvents(ctx, repo, writer, zap.NewNop())

	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	require.Len(t, writer.messages, 1)
	msg := writer.messages[0]
	assert.Equal(t, "rh.funcionario.lifecycle.v1", msg.Topic)
	assert.Equal(t, "1", string(msg.Key))
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, "employee_created", string(msg.Headers[0].Value))
}

func TestProcessPendingEvents_ListError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := kafkaMock.NewMockOutboxRepository(ctrl)
	repo.EXPECT().ListPending(gomock.Any(), 50).Return(nil, errors.New("db down"))

	sent, err := producer.ProcessPendingEvents(context.Background(), repo, &recordingWriter{}, zap.NewNop())

	assert.EqualError(t, err, "db down")
	assert.Zero(t, sent)
}
