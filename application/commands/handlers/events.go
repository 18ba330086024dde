package handlers

import (
	"context"

	"go.uber.org/zap"

	"stratagist-backend/application/ports"
	"stratagist-backend/domain/events"
)

type eventSource interface {
	GetUncommittedEvents() []events.DomainEvent
	MarkEventsAsCommitted()
}

// publishEvents sends pending events after a successful write. A publish
// failure is logged and does not fail the command.
func publishEvents(ctx context.Context, publisher ports.EventPublisher, logger *zap.Logger, sources ...eventSource) {
	var pending []events.DomainEvent
	for _, src := range sources {
		pending = append(pending, src.GetUncommittedEvents()...)
	}
	publish(ctx, publisher, logger, pending...)
	for _, src := range sources {
		src.MarkEventsAsCommitted()
	}
}

func publish(ctx context.Context, publisher ports.EventPublisher, logger *zap.Logger, evts ...events.DomainEvent) {
	if publisher == nil || len(evts) == 0 {
		return
	}
	if err := publisher.PublishBatch(ctx, evts); err != nil {
		logger.Warn("Failed to publish domain events",
			zap.Int("count", len(evts)),
			zap.String("first_type", evts[0].GetEventType()),
			zap.Error(err),
		)
	}
}
