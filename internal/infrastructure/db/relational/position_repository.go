package relational

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hrcore/employee-service/internal/core/domain"
)

type PositionRepository struct {
	db *gorm.DB
}

func NewPositionRepository(db *gorm.DB) *PositionRepository {
	return &PositionRepository{db: db}
}

func (r *PositionRepository) Create(ctx context.Context, p *domain.Position) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	row := positionRow{ID: p.ID.String(), Name: p.Name}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("insert position: %w", err)
	}
	return nil
}

func (r *PositionRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Position, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var row positionRow
	err := r.db.WithContext(ctx).Where("position_id = ?", id.String()).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPositionNotFound
		}
		return nil, fmt.Errorf("find position: %w", err)
	}

	p, err := row.toDomain()
	if err != nil {
		return nil, fmt.Errorf("decode position %s: %w", row.ID, err)
	}
	return &p, nil
}

// FindByIDs loads every listed position in one query. Ids with no row are
// simply absent from the result.
func (r *PositionRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Position, error) {
	out := make(map[uuid.UUID]domain.Position, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = id.String()
	}

	var rows []positionRow
	if err := r.db.WithContext(ctx).Where("position_id IN ?", keys).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("find positions: %w", err)
	}
	for _, row := range rows {
		p, err := row.toDomain()
		if err != nil {
			return nil, fmt.Errorf("decode position %s: %w", row.ID, err)
		}
		out[p.ID] = p
	}
	return out, nil
}

func (r *PositionRepository) List(ctx context.Context) ([]domain.Position, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rows []positionRow
	if err := r.db.WithContext(ctx).Order("position_name, position_id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list positions: %w", err)
	}

	out := make([]domain.Position, 0, len(rows))
	for _, row := range rows {
		p, err := row.toDomain()
		if err != nil {
			return nil, fmt.Errorf("decode position %s: %w", row.ID, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *PositionRepository) Update(ctx context.Context, p *domain.Position) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res := r.db.WithContext(ctx).
		Model(&positionRow{}).
		Where("position_id = ?", p.ID.String()).
		Update("position_name", p.Name)
	if res.Error != nil {
		return fmt.Errorf("update position: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrPositionNotFound
	}
	return nil
}

func (r *PositionRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res := r.db.WithContext(ctx).Where("position_id = ?", id.String()).Delete(&positionRow{})
	if res.Error != nil {
		return false, fmt.Errorf("delete position: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}
