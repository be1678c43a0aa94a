package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/hrcore/employee-service/internal/core/domain"
)

// PositionRepository defines persistence operations for positions.
type PositionRepository interface {
	Create(ctx context.Context, p *domain.Position) error
	// FindByID yields domain.ErrPositionNotFound when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Position, error)
	// FindByIDs returns the positions that exist among ids, keyed by id.
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Position, error)
	List(ctx context.Context) ([]domain.Position, error)
	// Update yields domain.ErrPositionNotFound when no row matched.
	Update(ctx context.Context, p *domain.Position) error
	// Delete reports whether a row was removed.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
