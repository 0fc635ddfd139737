package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/mbianou/chopchap-api/internal/domain/entity"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	UpdatePushToken(ctx context.Context, userID uuid.UUID, token string) error
	// ClearPushToken purges a token the push relay reported as invalid
	ClearPushToken(ctx context.Context, userID uuid.UUID) error
}
