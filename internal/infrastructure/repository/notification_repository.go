package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/mbianou/chopchap-api/internal/domain/entity"
	"github.com/mbianou/chopchap-api/internal/domain/enum"
	domainRepo "github.com/mbianou/chopchap-api/internal/domain/repository"
	"gorm.io/gorm"
)

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *gorm.DB) domainRepo.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *entity.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepository) ClaimPending(ctx context.Context, limit int) ([]entity.Notification, error) {
	var notifications []entity.Notification
	err := r.db.WithContext(ctx).
		Where("status = ?", enum.NotificationStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.NotificationStatus) error {
	return r.db.WithContext(ctx).Model(&entity.Notification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":   status,
			"attempts": gorm.Expr("attempts + 1"),
		}).Error
}
