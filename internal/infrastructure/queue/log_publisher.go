package queue

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/hrcore/employee-service/internal/core/domain"
)

// LogPublisher writes change events to the structured log. It is used when no
// broker is configured.
type LogPublisher struct {
	log zerolog.Logger
}

func NewLogPublisher(log zerolog.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(_ context.Context, event domain.ChangeEvent) error {
	p.log.Info().
		Str("entity", string(event.Entity)).
		Str("action", string(event.Action)).
		Str("id", event.ID.String()).
		Str("actor", event.Actor).
		Time("occurred_at", event.OccurredAt).
		Msg("change event")
	return nil
}

func (p *LogPublisher) Close() error { return nil }
