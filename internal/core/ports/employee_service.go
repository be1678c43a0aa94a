package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/hrcore/employee-service/internal/core/domain"
)

// CreateEmployeeInput carries the data needed to create an employee.
type CreateEmployeeInput struct {
	Name           string
	PositionID     uuid.UUID
	IdempotencyKey string
}

// EmployeePatch holds independently optional update fields. Nil means unchanged.
type EmployeePatch struct {
	Name       *string
	PositionID *uuid.UUID
}

// EmployeeService defines use-case operations for employees.
type EmployeeService interface {
	Create(ctx context.Context, input CreateEmployeeInput) (*domain.EmployeeDetail, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.EmployeeDetail, error)
	List(ctx context.Context) ([]domain.EmployeeDetail, error)
	Update(ctx context.Context, id uuid.UUID, patch EmployeePatch) (*domain.EmployeeDetail, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
