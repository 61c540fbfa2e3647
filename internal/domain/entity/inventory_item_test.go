package entity

import (
	"encoding/json"
	"testing"
)

func TestAvailableStock(t *testing.T) {
	simple := InventoryItem{Quantity: 10}
	if got := simple.AvailableStock(""); got != 10 {
		t.Fatalf("expected 10, got %d", got)
	}

	multi := InventoryItem{
		Quantity:          8,
		IsMultiCategory:   true,
		Subtypes:          StringList{"Small", "Medium"},
		SubtypeQuantities: QuantityMap{"Small": 5, "Medium": 3},
	}
	if got := multi.AvailableStock("Medium"); got != 3 {
		t.Fatalf("expected 3 for Medium, got %d", got)
	}
	if got := multi.AvailableStock("Large"); got != 0 {
		t.Fatalf("expected 0 for undeclared subtype, got %d", got)
	}
}

func TestHasSubtypes(t *testing.T) {
	item := InventoryItem{IsMultiCategory: true}
	if item.HasSubtypes() {
		t.Fatalf("multi-category flag without labels should not count as subtyped")
	}
	item.Subtypes = StringList{"Small"}
	if !item.HasSubtypes() {
		t.Fatalf("expected subtyped item")
	}
}

func TestQuantityMapTotal(t *testing.T) {
	m := QuantityMap{"a": 2, "b": 3}
	if m.Total() != 5 {
		t.Fatalf("expected 5, got %d", m.Total())
	}
	var empty QuantityMap
	if empty.Total() != 0 {
		t.Fatalf("expected 0 for nil map, got %d", empty.Total())
	}
}

func TestInventoryItemJSONUsesDecimalPrices(t *testing.T) {
	cents := int64(250)
	item := InventoryItem{
		Name:          "Widget",
		UnitPrice:     &cents,
		SubtypePrices: PriceMap{"Small": 450},
	}

	payload, err := json.Marshal(item)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded["unit_price"] != 2.5 {
		t.Fatalf("expected unit_price 2.5, got %v", decoded["unit_price"])
	}
	prices := decoded["subtype_prices"].(map[string]interface{})
	if prices["Small"] != 4.5 {
		t.Fatalf("expected Small price 4.5, got %v", prices["Small"])
	}
}

func TestQuantityMapScanValueRoundtrip(t *testing.T) {
	m := QuantityMap{"Small": 5}
	v, err := m.Value()
	if err != nil {
		t.Fatalf("value failed: %v", err)
	}

	var out QuantityMap
	if err := out.Scan(v); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if out["Small"] != 5 {
		t.Fatalf("expected roundtripped quantity 5, got %v", out)
	}
}

func TestIsLowStock(t *testing.T) {
	cases := []struct {
		name     string
		quantity int
		reorder  int
		want     bool
	}{
		{"below explicit level", 2, 5, true},
		{"at explicit level", 5, 5, false},
		{"above explicit level", 50, 5, false},
		{"no level, below default", 4, 0, true},
		{"no level, at default", 10, 0, false},
	}
	for _, tc := range cases {
		item := InventoryItem{Quantity: tc.quantity, ReorderLevel: tc.reorder}
		if got := item.IsLowStock(); got != tc.want {
			t.Fatalf("%s: IsLowStock() = %v, want %v", tc.name, got, tc.want)
		}
	}
}
