package request

import "github.com/mbianou/chopchap-api/internal/domain/pricing"

// CheckoutRequest represents an order submission. Unit prices accept either a
// number or a decorated string ("1 500 FCFA"); structural validation beyond
// the binding tags happens in the checkout service.
type CheckoutRequest struct {
	Lines               []pricing.CartLine `json:"lines" binding:"required,min=1"`
	Area                string             `json:"area" binding:"required"`
	FullAddress         string             `json:"full_address" binding:"required"`
	PaymentMethod       string             `json:"payment_method" binding:"required"`
	ContactName         string             `json:"contact_name"`
	ContactPhone        string             `json:"contact_phone"`
	UsePoints           bool               `json:"use_points"`
	DeliveryFeeOverride int64              `json:"delivery_fee_override"`
}
