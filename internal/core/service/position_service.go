package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hrcore/employee-service/internal/core/domain"
	"github.com/hrcore/employee-service/internal/core/ports"
	"github.com/hrcore/employee-service/internal/pkg/metrics"
)

const positionScope = "position"

type PositionService struct {
	repo       ports.PositionRepository
	idem       ports.IdempotencyStore
	events     ports.EventSink
	log        zerolog.Logger
	replayWait time.Duration
}

// NewPositionService wires a PositionService. idem and events may be nil.
func NewPositionService(repo ports.PositionRepository, idem ports.IdempotencyStore, events ports.EventSink, log zerolog.Logger) *PositionService {
	return &PositionService{repo: repo, idem: idem, events: events, log: log, replayWait: defaultReplayWait}
}

// Create validates the name and stores a position under a fresh id. The
// idempotency key is claimed before the insert, so concurrent requests with
// the same key all return the one position created by the key holder.
func (s *PositionService) Create(ctx context.Context, input ports.CreatePositionInput) (*domain.Position, error) {
	name, err := domain.NormalizePositionName(input.Name)
	if err != nil {
		return nil, err
	}

	res := reserve(ctx, s.idem, s.log, positionScope, input.IdempotencyKey)
	if res.replay {
		return s.replay(ctx, input.IdempotencyKey, res.id)
	}

	p := &domain.Position{ID: res.id, Name: name}
	if err := s.repo.Create(ctx, p); err != nil {
		release(ctx, s.idem, s.log, positionScope, input.IdempotencyKey, res)
		return nil, fmt.Errorf("create position: %w", err)
	}

	s.publish(ctx, domain.ActionCreated, p)
	s.log.Info().Str("position_id", p.ID.String()).Str("actor", domain.ActorFrom(ctx)).Msg("position created")
	return p, nil
}

func (s *PositionService) Get(ctx context.Context, id uuid.UUID) (*domain.Position, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *PositionService) List(ctx context.Context) ([]domain.Position, error) {
	return s.repo.List(ctx)
}

// Update overwrites the name of an existing position.
func (s *PositionService) Update(ctx context.Context, id uuid.UUID, name string) (*domain.Position, error) {
	name, err := domain.NormalizePositionName(name)
	if err != nil {
		return nil, err
	}

	p := &domain.Position{ID: id, Name: name}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.publish(ctx, domain.ActionUpdated, p)
	return p, nil
}

// Delete removes the position. Employees that reference it are left untouched.
func (s *PositionService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete position: %w", err)
	}
	if removed {
		s.publish(ctx, domain.ActionDeleted, &domain.Position{ID: id})
	}
	return removed, nil
}

func (s *PositionService) replay(ctx context.Context, key string, id uuid.UUID) (*domain.Position, error) {
	p, err := awaitRecord(ctx, s.replayWait, domain.ErrPositionNotFound, func(ctx context.Context) (*domain.Position, error) {
		return s.repo.FindByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	metrics.IdempotentReplaysTotal.WithLabelValues(positionScope).Inc()
	s.log.Info().Str("idempotency_key", key).Str("position_id", p.ID.String()).Msg("idempotent replay")
	return p, nil
}

func (s *PositionService) publish(ctx context.Context, action domain.ChangeAction, p *domain.Position) {
	metrics.MutationsTotal.WithLabelValues(string(domain.EntityPosition), string(action)).Inc()
	if s.events == nil {
		return
	}
	s.events.Enqueue(domain.ChangeEvent{
		Entity:     domain.EntityPosition,
		Action:     action,
		ID:         p.ID,
		Name:       p.Name,
		Actor:      domain.ActorFrom(ctx),
		OccurredAt: time.Now().UTC(),
	})
}
