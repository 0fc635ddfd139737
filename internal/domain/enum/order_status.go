package enum

// OrderStatus represents the lifecycle status of an order.
// "en_attente" is the default for orders awaiting fulfilment; "pending" marks
// orders carrying a gateway transaction reference whose payment confirmation
// is still outstanding.
type OrderStatus string

const (
	OrderStatusEnAttente OrderStatus = "en_attente"
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusDelivered OrderStatus = "livree"
	OrderStatusCancelled OrderStatus = "annulee"
)

func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the status is one of the known values
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusEnAttente, OrderStatusPending, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}
