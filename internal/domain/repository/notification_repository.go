package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/mbianou/chopchap-api/internal/domain/entity"
	"github.com/mbianou/chopchap-api/internal/domain/enum"
)

// NotificationRepository defines the interface for queued push-notification
// records
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	// ClaimPending returns up to limit pending records, oldest first
	ClaimPending(ctx context.Context, limit int) ([]entity.Notification, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.NotificationStatus) error
}
