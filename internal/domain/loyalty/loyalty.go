// Package loyalty implements the points calculator: how many points an order
// earns and how many an account may redeem against a payable amount.
package loyalty

import "math"

// Default program parameters, in FCFA. One point is worth CreditPerPoint;
// orders below Threshold earn nothing; the first qualifying order earns at
// FirstOrderRate, subsequent ones at NormalRate.
const (
	DefaultCreditPerPoint int64 = 100
	DefaultThreshold      int64 = 5000

	DefaultFirstOrderRate = 0.10
	DefaultNormalRate     = 0.05
)

// Params holds the tunable program parameters
type Params struct {
	CreditPerPoint int64
	Threshold      int64
	FirstOrderRate float64
	NormalRate     float64
}

// DefaultParams returns the standard program parameters
func DefaultParams() Params {
	return Params{
		CreditPerPoint: DefaultCreditPerPoint,
		Threshold:      DefaultThreshold,
		FirstOrderRate: DefaultFirstOrderRate,
		NormalRate:     DefaultNormalRate,
	}
}

// PointsEarned computes the points an order of the given subtotal earns.
// Returns 0 below the threshold. The rate depends on whether the account has
// prior qualifying orders.
func (p Params) PointsEarned(subtotal int64, eligibleHistoryCount int64) int64 {
	if subtotal < p.Threshold || p.CreditPerPoint <= 0 {
		return 0
	}
	rate := p.NormalRate
	if eligibleHistoryCount == 0 {
		rate = p.FirstOrderRate
	}
	return int64(math.Floor(float64(subtotal) * rate / float64(p.CreditPerPoint)))
}

// ResolveRedemption computes how many points to redeem against a payable
// amount. The result never exceeds the balance, and the reduction never
// exceeds the payable rounded up to the next whole point, so redemption can
// zero out an amount that is not an exact multiple of the point value.
func (p Params) ResolveRedemption(wantsRedemption bool, balance, payable int64) (points, reduction int64) {
	if !wantsRedemption || balance <= 0 || p.CreditPerPoint <= 0 {
		return 0, 0
	}
	if payable <= 0 {
		return 0, 0
	}
	needed := (payable + p.CreditPerPoint - 1) / p.CreditPerPoint
	points = needed
	if balance < points {
		points = balance
	}
	return points, points * p.CreditPerPoint
}
