package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mbianou/chopchap-api/internal/domain/enum"
	"gorm.io/gorm"
)

// NotificationData is the free-form payload forwarded to the push relay
type NotificationData map[string]string

// Value implements driver.Valuer for JSONB storage
func (d NotificationData) Value() (driver.Value, error) {
	if d == nil {
		d = NotificationData{}
	}
	return json.Marshal(d)
}

// Scan implements sql.Scanner for JSONB storage
func (d *NotificationData) Scan(value interface{}) error {
	if value == nil {
		*d = nil
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		s, ok := value.(string)
		if !ok {
			return errors.New("unsupported type for NotificationData")
		}
		b = []byte(s)
	}
	return json.Unmarshal(b, d)
}

// Notification is a queued push-notification record. Created alongside an
// order and drained asynchronously by the notifier worker; delivery failure
// never affects the order it references.
type Notification struct {
	ID        uuid.UUID               `gorm:"type:uuid;primary_key" json:"id"`
	UserID    *uuid.UUID              `gorm:"type:uuid;index" json:"user_id,omitempty"`
	OrderID   uuid.UUID               `gorm:"type:uuid;not null;index" json:"order_id"`
	Title     string                  `gorm:"size:255;not null" json:"title"`
	Body      string                  `gorm:"type:text;not null" json:"body"`
	Data      NotificationData        `gorm:"type:jsonb" json:"data,omitempty"`
	Status    enum.NotificationStatus `gorm:"size:20;default:'pending';index" json:"status"`
	Attempts  int                     `gorm:"default:0" json:"attempts"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`

	// Relationships
	User  *User `gorm:"foreignKey:UserID" json:"-"`
	Order Order `gorm:"foreignKey:OrderID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new notification
func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Notification model
func (Notification) TableName() string {
	return "notifications"
}
