package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/hrcore/employee-service/internal/core/domain"
)

// EmployeeRepository defines persistence operations for employees.
type EmployeeRepository interface {
	Create(ctx context.Context, e *domain.Employee) error
	// FindByID yields domain.ErrEmployeeNotFound when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error)
	List(ctx context.Context) ([]domain.Employee, error)
	// Update yields domain.ErrEmployeeNotFound when no row matched.
	Update(ctx context.Context, e *domain.Employee) error
	// Delete reports whether a row was removed.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
