package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	idempotencyTTL = time.Hour
	// reserveAttempts covers a key expiring between SETNX and GET.
	reserveAttempts = 3
)

// releaseScript deletes the key only while it still holds the caller's id.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// IdempotencyStore maps client-supplied Idempotency-Key values to the id of
// the record created under them.
// Key format: idempotency:<scope>:<key>
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdempotencyStore creates an IdempotencyStore wrapping the given Redis client.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client, ttl: idempotencyTTL}
}

// Reserve claims key for id with SETNX. When another request already holds
// the key, its id is returned with false.
func (s *IdempotencyStore) Reserve(ctx context.Context, scope, key string, id uuid.UUID) (uuid.UUID, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	k := idempotencyKey(scope, key)
	for range reserveAttempts {
		won, err := s.client.SetNX(ctx, k, id.String(), s.ttl).Result()
		if err != nil {
			return uuid.Nil, false, fmt.Errorf("idempotency reserve: %w", err)
		}
		if won {
			return id, true, nil
		}

		raw, err := s.client.Get(ctx, k).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return uuid.Nil, false, fmt.Errorf("idempotency holder: %w", err)
		}

		holder, err := uuid.Parse(raw)
		if err != nil {
			return uuid.Nil, false, fmt.Errorf("idempotency value %q: %w", raw, err)
		}
		return holder, false, nil
	}
	return uuid.Nil, false, fmt.Errorf("idempotency reserve: key %s kept expiring", k)
}

// Release frees key if id still holds it.
func (s *IdempotencyStore) Release(ctx context.Context, scope, key string, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := releaseScript.Run(ctx, s.client, []string{idempotencyKey(scope, key)}, id.String()).Err(); err != nil {
		return fmt.Errorf("idempotency release: %w", err)
	}
	return nil
}

func idempotencyKey(scope, key string) string {
	return fmt.Sprintf("idempotency:%s:%s", scope, key)
}
