package pricing

import (
	"encoding/json"
	"testing"

	"github.com/mbianou/chopchap-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrice_Amount(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{name: "plain integer", raw: "1500", want: 1500},
		{name: "decimal", raw: "1500.50", want: 1500.50},
		{name: "decorated FCFA string", raw: "1 500 FCFA", want: 1500},
		{name: "currency prefix", raw: "XAF 2500", want: 2500},
		{name: "thousands separator", raw: "12,500", want: 12500},
		{name: "garbage", raw: "gratuit", want: 0},
		{name: "empty", raw: "", want: 0},
		{name: "zero", raw: "0", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewPrice(tt.raw).Amount())
		})
	}
}

func TestPrice_Valid(t *testing.T) {
	assert.True(t, NewPrice("1500").Valid())
	assert.True(t, NewPrice("1 500 FCFA").Valid())
	assert.True(t, NewPrice("0").Valid())
	assert.False(t, NewPrice("gratuit").Valid())
	assert.False(t, NewPrice("").Valid())
	assert.False(t, NewPrice("...").Valid())
}

func TestPrice_UnmarshalJSON(t *testing.T) {
	var line CartLine
	payload := `{"item_id":"p1","name":"Poulet DG","unit_price":"3 500 FCFA","quantity":2}`
	require.NoError(t, json.Unmarshal([]byte(payload), &line))
	assert.Equal(t, 3500.0, line.UnitPrice.Amount())

	payload = `{"item_id":"p1","name":"Poulet DG","unit_price":3500,"quantity":2}`
	require.NoError(t, json.Unmarshal([]byte(payload), &line))
	assert.Equal(t, 3500.0, line.UnitPrice.Amount())
}

func testCatalog() Catalog {
	return NewCatalog([]entity.AddOnGroup{
		{
			ID:   "sauces",
			Name: "Sauces",
			Options: entity.AddOnOptionList{
				{Name: "Piment", Price: 100},
				{Name: "Mayonnaise", Price: 200},
			},
		},
		{
			ID:   "boissons",
			Name: "Boissons",
			Options: entity.AddOnOptionList{
				{Name: "Top Ananas", Price: 500},
			},
		},
	})
}

func TestCartSubtotal(t *testing.T) {
	catalog := testCatalog()

	tests := []struct {
		name  string
		lines []CartLine
		want  float64
	}{
		{
			name: "single line no add-ons",
			lines: []CartLine{
				{ItemID: "p1", Name: "Ndole", UnitPrice: NewPrice("2500"), Quantity: 2},
			},
			want: 5000,
		},
		{
			name: "add-ons contribute per unit",
			lines: []CartLine{
				{
					ItemID:    "p1",
					Name:      "Poulet DG",
					UnitPrice: NewPrice("3000"),
					Quantity:  2,
					AddOns:    map[string][]int{"sauces": {0, 1}},
				},
			},
			// (3000 + 100 + 200) * 2
			want: 6600,
		},
		{
			name: "unresolved add-on contributes zero",
			lines: []CartLine{
				{
					ItemID:    "p1",
					Name:      "Eru",
					UnitPrice: NewPrice("2000"),
					Quantity:  1,
					AddOns:    map[string][]int{"sauces": {9}, "missing": {0}},
				},
			},
			want: 2000,
		},
		{
			name: "zero-price and zero-quantity lines skipped",
			lines: []CartLine{
				{ItemID: "p1", Name: "Offert", UnitPrice: NewPrice("0"), Quantity: 3},
				{ItemID: "p2", Name: "Koki", UnitPrice: NewPrice("1500"), Quantity: 0},
				{ItemID: "p3", Name: "Beignets", UnitPrice: NewPrice("500"), Quantity: 4},
			},
			want: 2000,
		},
		{
			name: "decorated price string",
			lines: []CartLine{
				{ItemID: "p1", Name: "Okok", UnitPrice: NewPrice("1 500 FCFA"), Quantity: 4},
			},
			want: 6000,
		},
		{
			name:  "empty cart",
			lines: nil,
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CartSubtotal(tt.lines, catalog))
		})
	}
}

func TestCartSubtotal_AddOnOrderInvariant(t *testing.T) {
	catalog := testCatalog()

	a := []CartLine{{
		ItemID: "p1", Name: "Poulet DG", UnitPrice: NewPrice("3000"), Quantity: 2,
		AddOns: map[string][]int{"sauces": {0, 1}},
	}}
	b := []CartLine{{
		ItemID: "p1", Name: "Poulet DG", UnitPrice: NewPrice("3000"), Quantity: 2,
		AddOns: map[string][]int{"sauces": {1, 0}},
	}}

	assert.Equal(t, CartSubtotal(a, catalog), CartSubtotal(b, catalog))
}

func TestCartSubtotal_Idempotent(t *testing.T) {
	catalog := testCatalog()
	lines := []CartLine{{
		ItemID: "p1", Name: "Poulet DG", UnitPrice: NewPrice("3 000 FCFA"), Quantity: 2,
		AddOns: map[string][]int{"sauces": {0}, "boissons": {0}},
	}}

	first := CartSubtotal(lines, catalog)
	second := CartSubtotal(lines, catalog)
	assert.Equal(t, first, second)
}

func TestResolveAddOns(t *testing.T) {
	catalog := testCatalog()

	line := CartLine{
		ItemID: "p1", Name: "Eru", UnitPrice: NewPrice("2000"), Quantity: 1,
		AddOns: map[string][]int{"sauces": {1, 7}},
	}

	resolved := ResolveAddOns(line, catalog)
	require.Len(t, resolved, 2)

	byName := map[string]entity.ResolvedAddOn{}
	for _, r := range resolved {
		byName[r.Name] = r
	}
	assert.Equal(t, int64(200), byName["Mayonnaise"].Price)
	assert.Equal(t, int64(0), byName[UnknownAddOnLabel].Price)
}

func TestResolveFee(t *testing.T) {
	areas := []entity.DeliveryArea{
		{Name: "Bastos", Fee: 1500},
		{Name: "Mvog-Ada", Fee: 1000},
		{Name: "Odza", Fee: 2000},
	}

	tests := []struct {
		name     string
		area     string
		areas    []entity.DeliveryArea
		override int64
		want     int64
	}{
		{name: "known area", area: "Bastos", areas: areas, want: 1500},
		{name: "case-insensitive match", area: "bastos", areas: areas, want: 1500},
		{name: "unknown area falls back to default", area: "Santa Barbara", areas: areas, want: DefaultDeliveryFee},
		{name: "empty area falls back to default", area: "", areas: areas, want: DefaultDeliveryFee},
		{name: "empty catalog falls back to default", area: "Bastos", areas: nil, want: DefaultDeliveryFee},
		{name: "override wins", area: "Bastos", areas: areas, override: 750, want: 750},
		{name: "zero override ignored", area: "Odza", areas: areas, override: 0, want: 2000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveFee(tt.area, tt.areas, tt.override))
		})
	}
}
