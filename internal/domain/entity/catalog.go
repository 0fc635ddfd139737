package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeliveryArea maps a delivery zone to its fee. Matched case-insensitively
// by name at pricing time.
type DeliveryArea struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"size:100;unique;not null" json:"name"`
	Fee       int64     `gorm:"not null" json:"fee"` // FCFA
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new delivery area
func (a *DeliveryArea) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the DeliveryArea model
func (DeliveryArea) TableName() string {
	return "delivery_areas"
}

// AddOnOption is a single selectable option inside an add-on group
type AddOnOption struct {
	Name  string `json:"name"`
	Price int64  `json:"price"` // per unit, FCFA
}

// AddOnOptionList is stored as a JSONB column; option order is significant
// because cart lines reference options by index.
type AddOnOptionList []AddOnOption

// Value implements driver.Valuer for JSONB storage
func (l AddOnOptionList) Value() (driver.Value, error) {
	if l == nil {
		l = AddOnOptionList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for JSONB storage
func (l *AddOnOptionList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		s, ok := value.(string)
		if !ok {
			return errors.New("unsupported type for AddOnOptionList")
		}
		b = []byte(s)
	}
	return json.Unmarshal(b, l)
}

// AddOnGroup is a catalog entry of selectable add-ons, keyed by the slug id
// cart lines reference
type AddOnGroup struct {
	ID        string          `gorm:"size:100;primary_key" json:"id"`
	Name      string          `gorm:"size:255;not null" json:"name"`
	Options   AddOnOptionList `gorm:"type:jsonb" json:"options"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TableName returns the table name for the AddOnGroup model
func (AddOnGroup) TableName() string {
	return "add_on_groups"
}
