package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/hrcore/employee-service/internal/core/domain"
)

// CreatePositionInput carries the data needed to create a position.
type CreatePositionInput struct {
	Name string
	// IdempotencyKey is optional; a repeated key returns the first result.
	IdempotencyKey string
}

// PositionService defines use-case operations for positions.
type PositionService interface {
	Create(ctx context.Context, input CreatePositionInput) (*domain.Position, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Position, error)
	List(ctx context.Context) ([]domain.Position, error)
	Update(ctx context.Context, id uuid.UUID, name string) (*domain.Position, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
