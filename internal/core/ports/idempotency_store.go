package ports

import (
	"context"

	"github.com/google/uuid"
)

// IdempotencyStore hands out client-supplied keys to exactly one create.
type IdempotencyStore interface {
	// Reserve atomically claims key for id. When the key is already held it
	// returns the holder's id and false.
	Reserve(ctx context.Context, scope, key string, id uuid.UUID) (uuid.UUID, bool, error)
	// Release frees key if id still holds it, so a failed create can be retried.
	Release(ctx context.Context, scope, key string, id uuid.UUID) error
}
