package relational

import (
	"time"

	"github.com/google/uuid"

	"github.com/hrcore/employee-service/internal/core/domain"
)

type positionRow struct {
	ID   string `gorm:"column:position_id;primaryKey"`
	Name string `gorm:"column:position_name;size:100;not null"`
}

func (positionRow) TableName() string { return "positions" }

func (r positionRow) toDomain() (domain.Position, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return domain.Position{}, err
	}
	return domain.Position{ID: id, Name: r.Name}, nil
}

type employeeRow struct {
	ID         string `gorm:"column:emp_id;primaryKey"`
	Name       string `gorm:"column:name;size:100;not null"`
	PositionID string `gorm:"column:position_id;not null;index"`
}

func (employeeRow) TableName() string { return "employees" }

func (r employeeRow) toDomain() (domain.Employee, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return domain.Employee{}, err
	}
	positionID, err := uuid.Parse(r.PositionID)
	if err != nil {
		return domain.Employee{}, err
	}
	return domain.Employee{ID: id, Name: r.Name, PositionID: positionID}, nil
}

type userRow struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Username     string    `gorm:"column:username;size:50;uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (userRow) TableName() string { return "users" }

func (r userRow) toDomain() *domain.User {
	return &domain.User{
		ID:           r.ID,
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt.UTC(),
	}
}
