// Package pricing implements the cart pricing calculator and the delivery
// fee resolver. Everything here is pure: inputs in, numbers out, no storage
// or network access.
package pricing

import (
	"strings"

	"github.com/mbianou/chopchap-api/internal/domain/entity"
)

// UnknownAddOnLabel is the sentinel name used when a cart references an
// add-on group or index the catalog no longer has
const UnknownAddOnLabel = "inconnu"

// CartLine is one line of a cart as submitted by the client
type CartLine struct {
	ItemID    string           `json:"item_id"`
	Name      string           `json:"name"`
	UnitPrice Price            `json:"unit_price"`
	Quantity  int              `json:"quantity"`
	AddOns    map[string][]int `json:"add_ons,omitempty"` // group id -> selected option indices
}

// Catalog indexes add-on groups by their id
type Catalog map[string]entity.AddOnGroup

// NewCatalog builds a Catalog from a slice of groups
func NewCatalog(groups []entity.AddOnGroup) Catalog {
	c := make(Catalog, len(groups))
	for _, g := range groups {
		c[g.ID] = g
	}
	return c
}

// ResolveAddOns resolves a line's add-on selections against the catalog.
// Unknown groups or out-of-range indices resolve to the sentinel label with
// a zero price rather than failing the order.
func ResolveAddOns(line CartLine, catalog Catalog) []entity.ResolvedAddOn {
	if len(line.AddOns) == 0 {
		return nil
	}
	var resolved []entity.ResolvedAddOn
	for groupID, indices := range line.AddOns {
		group, ok := catalog[groupID]
		for _, idx := range indices {
			if !ok || idx < 0 || idx >= len(group.Options) {
				resolved = append(resolved, entity.ResolvedAddOn{
					GroupID: groupID,
					Name:    UnknownAddOnLabel,
					Price:   0,
				})
				continue
			}
			opt := group.Options[idx]
			resolved = append(resolved, entity.ResolvedAddOn{
				GroupID: groupID,
				Name:    opt.Name,
				Price:   opt.Price,
			})
		}
	}
	return resolved
}

// LineTotal computes one line's contribution to the subtotal: unit price
// times quantity, plus each selected add-on per unit. Lines without a
// positive price or quantity contribute nothing.
func LineTotal(line CartLine, catalog Catalog) float64 {
	unit := line.UnitPrice.Amount()
	if unit <= 0 || line.Quantity <= 0 {
		return 0
	}
	total := unit * float64(line.Quantity)
	for _, addOn := range ResolveAddOns(line, catalog) {
		total += float64(addOn.Price) * float64(line.Quantity)
	}
	return total
}

// CartSubtotal computes the cart value before delivery fee and redemption
func CartSubtotal(lines []CartLine, catalog Catalog) float64 {
	var subtotal float64
	for _, line := range lines {
		subtotal += LineTotal(line, catalog)
	}
	return subtotal
}

// DefaultDeliveryFee applies when no area matches the catalog
const DefaultDeliveryFee int64 = 1000

// ResolveFee maps a delivery area to its fee. A non-zero override wins
// verbatim; an empty area or catalog falls back to the default; otherwise the
// area is matched case-insensitively by name.
func ResolveFee(area string, areas []entity.DeliveryArea, override int64) int64 {
	if override != 0 {
		return override
	}
	if strings.TrimSpace(area) == "" || len(areas) == 0 {
		return DefaultDeliveryFee
	}
	for _, a := range areas {
		if strings.EqualFold(a.Name, area) {
			return a.Fee
		}
	}
	return DefaultDeliveryFee
}
