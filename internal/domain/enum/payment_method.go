package enum

import "strings"

// PaymentMethod identifies how an order is paid. Cash on delivery settles
// offline; every other method goes through the external payment gateway.
type PaymentMethod string

const (
	PaymentMethodCash        PaymentMethod = "cash"
	PaymentMethodOrangeMoney PaymentMethod = "orange_money"
	PaymentMethodMTNMomo     PaymentMethod = "mtn_momo"
	PaymentMethodCard        PaymentMethod = "carte"
)

func (m PaymentMethod) String() string {
	return string(m)
}

// IsCashOnDelivery reports whether the method settles on delivery without a
// gateway handshake
func (m PaymentMethod) IsCashOnDelivery() bool {
	name := strings.ToLower(strings.TrimSpace(string(m)))
	return name == "cash" || name == "cash_on_delivery" || name == "especes"
}

// RequiresGateway reports whether the method needs an external transaction
func (m PaymentMethod) RequiresGateway() bool {
	return m != "" && !m.IsCashOnDelivery()
}
