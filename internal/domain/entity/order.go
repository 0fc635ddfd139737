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

// Order represents a finalized customer order
type Order struct {
	ID                   uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	UserID               *uuid.UUID         `gorm:"type:uuid;index" json:"user_id,omitempty"`
	GuestID              string             `gorm:"size:100;index" json:"guest_id,omitempty"`
	Label                string             `gorm:"size:100;unique;not null" json:"label"`
	Status               enum.OrderStatus   `gorm:"size:50;default:'en_attente'" json:"status"`
	PaymentMethod        enum.PaymentMethod `gorm:"size:50;not null" json:"payment_method"`
	PaymentRef           string             `gorm:"size:100" json:"payment_ref,omitempty"`
	IsPaid               bool               `gorm:"default:false" json:"is_paid"`
	IsGuest              bool               `gorm:"default:false" json:"is_guest"`
	ContactName          string             `gorm:"size:255" json:"contact_name,omitempty"`
	ContactPhone         string             `gorm:"size:50" json:"contact_phone,omitempty"`
	Area                 string             `gorm:"size:100;not null" json:"area"`
	FullAddress          string             `gorm:"type:text;not null" json:"full_address"`
	Total                int64              `gorm:"default:0" json:"total"`        // cart subtotal, FCFA
	DeliveryFee          int64              `gorm:"default:0" json:"delivery_fee"` // FCFA
	PointsUsed           int64              `gorm:"default:0" json:"points_used"`
	PointsReduction      int64              `gorm:"default:0" json:"points_reduction"` // FCFA
	LoyaltyPointsPending int64              `gorm:"default:0" json:"loyalty_points_pending"`
	LoyaltyEligible      bool               `gorm:"default:false" json:"loyalty_eligible"`
	CreatedAt            time.Time          `json:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at"`
	DeletedAt            gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	User  *User       `gorm:"foreignKey:UserID" json:"-"`
	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// FinalTotal returns the amount payable after delivery fee and points
// reduction; never negative.
func (o *Order) FinalTotal() int64 {
	final := o.Total + o.DeliveryFee - o.PointsReduction
	if final < 0 {
		return 0
	}
	return final
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// ResolvedAddOn is an add-on selection with its price resolved against the
// catalog at submission time
type ResolvedAddOn struct {
	GroupID string `json:"group_id"`
	Name    string `json:"name"`
	Price   int64  `json:"price"` // per unit, FCFA
}

// ResolvedAddOnList is stored as a JSONB column
type ResolvedAddOnList []ResolvedAddOn

// Value implements driver.Valuer for JSONB storage
func (l ResolvedAddOnList) Value() (driver.Value, error) {
	if l == nil {
		l = ResolvedAddOnList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for JSONB storage
func (l *ResolvedAddOnList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		s, ok := value.(string)
		if !ok {
			return errors.New("unsupported type for ResolvedAddOnList")
		}
		b = []byte(s)
	}
	return json.Unmarshal(b, l)
}

// OrderItem represents a line item in an order, with add-on prices resolved
type OrderItem struct {
	ID        uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	OrderID   uuid.UUID         `gorm:"type:uuid;not null;index" json:"order_id"`
	ItemID    string            `gorm:"size:100;not null" json:"item_id"`
	Name      string            `gorm:"size:255;not null" json:"name"`
	UnitPrice int64             `gorm:"not null" json:"unit_price"` // FCFA
	Quantity  int               `gorm:"not null" json:"quantity"`
	AddOns    ResolvedAddOnList `gorm:"type:jsonb" json:"add_ons,omitempty"`
	Total     int64             `gorm:"not null" json:"total"` // FCFA, add-ons included

	// Relationships
	Order Order `gorm:"foreignKey:OrderID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new order item
func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
