package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/inwheel/accessibility-importer/internal/domain"
)

type fakeWriter struct {
	msgs   []kafkago.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func testEvent() domain.ImportCompletedEvent {
	return domain.ImportCompletedEvent{
		EventID:    uuid.New(),
		RunID:      uuid.MustParse("6f1c1c7e-3a55-4e47-9a7e-2f3b8d1f0a11"),
		Region:     "finland",
		Places:     120,
		Batches:    1,
		FinishedAt: time.Date(2026, 3, 1, 4, 0, 0, 0, time.UTC),
	}
}

func TestSerializeToMessage(t *testing.T) {
	msg, err := serializeToMessage(testEvent())
	require.NoError(t, err)

	assert.Equal(t, []byte("finland"), msg.Key)
	assert.Contains(t, string(msg.Value), `"region":"finland"`)
	assert.Contains(t, string(msg.Value), `"places":120`)
	require.Len(t, msg.Headers, 3)
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, []byte(eventTypeImportCompleted), msg.Headers[0].Value)
	assert.Equal(t, []byte("6f1c1c7e-3a55-4e47-9a7e-2f3b8d1f0a11"), msg.Headers[1].Value)
	assert.Equal(t, []byte("2026-03-01T04:00:00Z"), msg.Headers[2].Value)
}

func TestPublisher_PublishImportCompleted(t *testing.T) {
	w := &fakeWriter{}
	p := &publisher{writer: w, logger: zap.NewNop()}

	require.NoError(t, p.PublishImportCompleted(context.Background(), testEvent()))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, []byte("finland"), w.msgs[0].Key)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestPublisher_WriteFailure(t *testing.T) {
	brokerDown := errors.New("dial tcp: connection refused")
	p := &publisher{writer: &fakeWriter{err: brokerDown}, logger: zap.NewNop()}

	err := p.PublishImportCompleted(context.Background(), testEvent())
	assert.ErrorIs(t, err, brokerDown)
}
