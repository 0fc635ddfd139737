package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/mbianou/chopchap-api/internal/domain/enum"
	"gorm.io/gorm"
)

// LoyaltyAccount holds a user's loyalty-points balance. Created lazily with
// a zero balance on the user's first authenticated submission.
type LoyaltyAccount struct {
	UserID        uuid.UUID `gorm:"type:uuid;primary_key" json:"user_id"`
	PointsBalance int64     `gorm:"default:0;check:points_balance >= 0" json:"points_balance"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName returns the table name for the LoyaltyAccount model
func (LoyaltyAccount) TableName() string {
	return "loyalty_accounts"
}

// LedgerTransaction is an append-only audit record of a points movement.
// One "usage" row per redemption and one "grant" row per earn-eligibility,
// both written alongside the order.
type LedgerTransaction struct {
	ID        uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID            `gorm:"type:uuid;not null;index" json:"user_id"`
	OrderID   uuid.UUID            `gorm:"type:uuid;not null;index" json:"order_id"`
	Points    int64                `gorm:"not null" json:"points"`
	Direction enum.LedgerDirection `gorm:"size:20;not null" json:"direction"`
	Status    enum.LedgerStatus    `gorm:"size:20;default:'pending'" json:"status"`
	Message   string               `gorm:"type:text" json:"message,omitempty"`
	CreatedAt time.Time            `json:"created_at"`

	// Relationships
	User  User  `gorm:"foreignKey:UserID" json:"-"`
	Order Order `gorm:"foreignKey:OrderID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new ledger transaction
func (t *LedgerTransaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the LedgerTransaction model
func (LedgerTransaction) TableName() string {
	return "ledger_transactions"
}
