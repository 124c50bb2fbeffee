package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/inwheel/accessibility-importer/internal/config"
	"github.com/inwheel/accessibility-importer/internal/domain"
	"github.com/inwheel/accessibility-importer/internal/domain/repository"
)

const eventTypeImportCompleted = "accessibility.import_completed"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

type publisher struct {
	writer messageWriter
	logger *zap.Logger
}

// NewPublisher produces import events to the configured topic, keyed by region
// so the events of one region stay ordered.
func NewPublisher(cfg *config.KafkaConfig, logger *zap.Logger) repository.EventPublisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &publisher{writer: w, logger: logger}
}

func (p *publisher) PublishImportCompleted(ctx context.Context, event domain.ImportCompletedEvent) error {
	msg, err := serializeToMessage(event)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish import event",
			zap.String("region", event.Region),
			zap.Error(err))
		return fmt.Errorf("publish import event: %w", err)
	}
	return nil
}

func (p *publisher) Close() error {
	return p.writer.Close()
}

func serializeToMessage(event domain.ImportCompletedEvent) (kafkago.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize import event: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(event.Region),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(eventTypeImportCompleted)},
			{Key: "run_id", Value: []byte(event.RunID.String())},
			{Key: "finished_at", Value: []byte(event.FinishedAt.Format(time.RFC3339))},
		},
	}, nil
}
