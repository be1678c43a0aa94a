package relational

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hrcore/employee-service/internal/core/domain"
)

// EmployeeRepository stores employees. The position reference is kept as a
// plain column; existence is checked by the service before writes.
type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Create(ctx context.Context, e *domain.Employee) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	row := employeeRow{ID: e.ID.String(), Name: e.Name, PositionID: e.PositionID.String()}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

func (r *EmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var row employeeRow
	err := r.db.WithContext(ctx).Where("emp_id = ?", id.String()).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("find employee: %w", err)
	}

	e, err := row.toDomain()
	if err != nil {
		return nil, fmt.Errorf("decode employee %s: %w", row.ID, err)
	}
	return &e, nil
}

func (r *EmployeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rows []employeeRow
	if err := r.db.WithContext(ctx).Order("name, emp_id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}

	out := make([]domain.Employee, 0, len(rows))
	for _, row := range rows {
		e, err := row.toDomain()
		if err != nil {
			return nil, fmt.Errorf("decode employee %s: %w", row.ID, err)
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *EmployeeRepository) Update(ctx context.Context, e *domain.Employee) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res := r.db.WithContext(ctx).
		Model(&employeeRow{}).
		Where("emp_id = ?", e.ID.String()).
		Updates(map[string]any{
			"name":        e.Name,
			"position_id": e.PositionID.String(),
		})
	if res.Error != nil {
		return fmt.Errorf("update employee: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res := r.db.WithContext(ctx).Where("emp_id = ?", id.String()).Delete(&employeeRow{})
	if res.Error != nil {
		return false, fmt.Errorf("delete employee: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}
