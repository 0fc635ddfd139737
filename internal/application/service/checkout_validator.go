package service

import (
	"strings"

	"github.com/mbianou/chopchap-api/internal/domain/pricing"
	"github.com/mbianou/chopchap-api/pkg/apperror"
)

// CheckoutInput is the transient submission request. It is never persisted
// as-is; the coordinator derives the order from it.
type CheckoutInput struct {
	Lines               []pricing.CartLine `json:"lines"`
	Area                string             `json:"area"`
	FullAddress         string             `json:"full_address"`
	PaymentMethod       string             `json:"payment_method"`
	ContactName         string             `json:"contact_name"`
	ContactPhone        string             `json:"contact_phone"`
	UsePoints           bool               `json:"use_points"`
	DeliveryFeeOverride int64              `json:"delivery_fee_override"`
}

// ValidateCheckout gate-keeps structural completeness before any pricing or
// persistence work. It runs once at the top of a submission and again
// defensively before the order write.
func ValidateCheckout(input *CheckoutInput, isGuest bool) error {
	if input == nil || len(input.Lines) == 0 {
		return apperror.ErrInvalidOrder
	}

	for _, line := range input.Lines {
		if strings.TrimSpace(line.ItemID) == "" {
			return apperror.ErrInvalidOrder
		}
		if strings.TrimSpace(line.Name) == "" {
			return apperror.ErrInvalidOrder
		}
		if !line.UnitPrice.Valid() {
			return apperror.ErrInvalidOrder
		}
		if line.Quantity <= 0 {
			return apperror.ErrInvalidOrder
		}
	}

	if strings.TrimSpace(input.Area) == "" || strings.TrimSpace(input.FullAddress) == "" {
		return apperror.ErrInvalidOrder
	}

	if strings.TrimSpace(input.PaymentMethod) == "" {
		return apperror.ErrInvalidOrder
	}

	if isGuest {
		if strings.TrimSpace(input.ContactName) == "" || strings.TrimSpace(input.ContactPhone) == "" {
			return apperror.ErrInvalidOrder
		}
	}

	return nil
}
