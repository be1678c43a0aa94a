package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hrcore/employee-service/internal/core/domain"
	"github.com/hrcore/employee-service/internal/core/ports"
)

const (
	defaultReplayWait = 2 * time.Second
	replayPollEvery   = 25 * time.Millisecond
)

// reservation is the outcome of claiming an Idempotency-Key before a create.
// When replay is set, id belongs to the request that holds the key.
type reservation struct {
	id     uuid.UUID
	replay bool
	held   bool
}

// reserve claims key under a fresh id. Without a key or a store the create
// simply proceeds; store failures are logged and treated the same way so a
// Redis outage never blocks writes.
func reserve(ctx context.Context, store ports.IdempotencyStore, log zerolog.Logger, scope, key string) reservation {
	id := uuid.New()
	if store == nil || key == "" {
		return reservation{id: id}
	}

	holder, won, err := store.Reserve(ctx, scope, key, id)
	if err != nil {
		log.Warn().Err(err).Str("scope", scope).Str("idempotency_key", key).Msg("idempotency reserve failed, creating anyway")
		return reservation{id: id}
	}
	if !won {
		return reservation{id: holder, replay: true}
	}
	return reservation{id: id, held: true}
}

// release frees a key whose create failed so the client can retry it.
func release(ctx context.Context, store ports.IdempotencyStore, log zerolog.Logger, scope, key string, r reservation) {
	if !r.held {
		return
	}
	if err := store.Release(context.WithoutCancel(ctx), scope, key, r.id); err != nil {
		log.Warn().Err(err).Str("scope", scope).Str("idempotency_key", key).Msg("failed to release idempotency key")
	}
}

// awaitRecord polls find until the key holder's record is readable. The holder
// may still be inserting it; after wait the key is reported as conflicting.
func awaitRecord[T any](ctx context.Context, wait time.Duration, notFound error, find func(context.Context) (T, error)) (T, error) {
	var zero T

	deadline := time.NewTimer(wait)
	defer deadline.Stop()
	ticker := time.NewTicker(replayPollEvery)
	defer ticker.Stop()

	for {
		rec, err := find(ctx)
		if err == nil {
			return rec, nil
		}
		if !errors.Is(err, notFound) {
			return zero, fmt.Errorf("idempotent replay: %w", err)
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-deadline.C:
			return zero, domain.ErrIdempotencyConflict
		case <-ticker.C:
		}
	}
}
