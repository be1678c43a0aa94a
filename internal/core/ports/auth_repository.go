package ports

import (
	"context"

	"github.com/hrcore/employee-service/internal/core/domain"
)

// AuthRepository persists credentials.
type AuthRepository interface {
	// Create inserts a user. A taken username yields domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByUsername yields domain.ErrUserNotFound when absent.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}
