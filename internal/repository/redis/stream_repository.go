package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/inwheel/accessibility-importer/internal/domain"
	"github.com/inwheel/accessibility-importer/internal/domain/repository"
)

// streamMaxLen caps the event stream, trimming is approximate.
const streamMaxLen = 10000

type streamPublisher struct {
	client *redis.Client
	stream string
	logger *zap.Logger
}

// NewStreamPublisher publishes import events to a Redis stream. The client is
// owned by the caller and is not closed by Close.
func NewStreamPublisher(client *redis.Client, stream string, logger *zap.Logger) repository.EventPublisher {
	if stream == "" {
		stream = domain.StreamAccessibilityImported
	}
	return &streamPublisher{
		client: client,
		stream: stream,
		logger: logger,
	}
}

func (p *streamPublisher) PublishImportCompleted(ctx context.Context, event domain.ImportCompletedEvent) error {
	return p.publish(ctx, event)
}

// publish adds data as JSON under the "data" field.
func (p *streamPublisher) publish(ctx context.Context, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		p.logger.Error("Failed to marshal data",
			zap.String("stream", p.stream),
			zap.Error(err))
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	result, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: streamMaxLen,
		Approx: true,
		Values: map[string]interface{}{
			"data": string(jsonData),
		},
	}).Result()

	if err != nil {
		p.logger.Error("Failed to publish to stream",
			zap.String("stream", p.stream),
			zap.Error(err))
		return fmt.Errorf("failed to publish to stream: %w", err)
	}

	p.logger.Debug("Message published to stream",
		zap.String("stream", p.stream),
		zap.String("message_id", result))
	return nil
}

func (p *streamPublisher) Close() error {
	return nil
}
