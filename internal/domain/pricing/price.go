package pricing

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Price is a monetary value that may arrive as a JSON number or as a
// decorated string such as "1 500 FCFA". The raw form is kept so validation
// can distinguish "not a price" from a genuine zero.
type Price struct {
	raw string
}

// NewPrice builds a Price from its raw representation
func NewPrice(raw string) Price {
	return Price{raw: raw}
}

// NewPriceFromAmount builds a Price from a numeric amount
func NewPriceFromAmount(amount float64) Price {
	return Price{raw: strconv.FormatFloat(amount, 'f', -1, 64)}
}

// UnmarshalJSON accepts either a number or a string
func (p *Price) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		p.raw = s
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	p.raw = n.String()
	return nil
}

// MarshalJSON renders the parsed amount
func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Amount())
}

// Raw returns the original representation
func (p Price) Raw() string {
	return p.raw
}

// Amount returns the parsed value; non-parseable or non-finite input yields 0
func (p Price) Amount() float64 {
	v, ok := parse(p.raw)
	if !ok {
		return 0
	}
	return v
}

// Valid reports whether the raw value parses to a finite number
func (p Price) Valid() bool {
	_, ok := parse(p.raw)
	return ok
}

// parse strips every rune that is not a digit or a dot, then parses the
// remainder as a decimal
func parse(raw string) (float64, bool) {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
