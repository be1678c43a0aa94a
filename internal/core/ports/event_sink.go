package ports

import (
	"context"

	"github.com/hrcore/employee-service/internal/core/domain"
)

// EventSink accepts change events for asynchronous delivery.
type EventSink interface {
	Enqueue(event domain.ChangeEvent)
}

// EventPublisher delivers a single change event to its destination.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.ChangeEvent) error
	Close() error
}
