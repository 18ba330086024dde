// Package messaging holds event publishers that need no external broker.
package messaging

import (
	"context"

	"go.uber.org/zap"

	"stratagist-backend/application/ports"
	"stratagist-backend/domain/events"
)

// LogPublisher writes domain events to the structured log. It is the
// default when no event bus is configured.
type LogPublisher struct {
	logger *zap.Logger
}

var _ ports.EventPublisher = (*LogPublisher)(nil)

// NewLogPublisher creates a LogPublisher
func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogPublisher{logger: logger}
}

// Publish logs a single event
func (p *LogPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	p.logger.Info("Domain event",
		zap.String("event_type", event.GetEventType()),
		zap.String("aggregate_id", event.GetAggregateID()),
		zap.Time("occurred_at", event.GetTimestamp()),
		zap.Any("event", event),
	)
	return nil
}

// PublishBatch logs each event in order
func (p *LogPublisher) PublishBatch(ctx context.Context, evts []events.DomainEvent) error {
	for _, event := range evts {
		if err := p.Publish(ctx, event); err != nil {
			return err
		}
	}
	return nil
}
