package catalog

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestInventoryItemAdjustStock(t *testing.T) {
	tests := []struct {
		name  string
		stock string
		delta string
		want  string
	}{
		{name: "increment", stock: "10", delta: "1", want: "11"},
		{name: "decrement", stock: "10", delta: "-1", want: "9"},
		{name: "clampsAtZero", stock: "0", delta: "-1", want: "0"},
		{name: "largeDecrementClamps", stock: "3", delta: "-10", want: "0"},
		{name: "fractionalDelta", stock: "2.5", delta: "0.25", want: "2.75"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := NewInventoryItem()
			item.CurrentStock = decimal.RequireFromString(tt.stock)

			item.AdjustStock(decimal.RequireFromString(tt.delta))

			if !item.CurrentStock.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("AdjustStock() stock = %s, want %s", item.CurrentStock, tt.want)
			}
			if item.UpdatedAt.IsZero() {
				t.Error("AdjustStock() should touch UpdatedAt")
			}
		})
	}
}

func TestInventoryItemIsLow(t *testing.T) {
	tests := []struct {
		name      string
		stock     string
		threshold string
		want      bool
	}{
		{name: "belowThreshold", stock: "10", threshold: "15", want: true},
		{name: "atThreshold", stock: "5", threshold: "5", want: true},
		{name: "aboveThreshold", stock: "20", threshold: "5", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := &InventoryItem{
				CurrentStock: decimal.RequireFromString(tt.stock),
				MinThreshold: decimal.RequireFromString(tt.threshold),
			}
			if got := item.IsLow(); got != tt.want {
				t.Errorf("IsLow() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInventoryItemMarshalJSONIncludesLow(t *testing.T) {
	item := NewInventoryItem()
	item.Name = "Romaine Lettuce"
	item.Unit = "heads"
	item.CurrentStock = decimal.NewFromInt(10)
	item.MinThreshold = decimal.NewFromInt(15)

	data, err := json.Marshal(item)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if decoded["low"] != true {
		t.Errorf("low = %v, want true", decoded["low"])
	}
	if decoded["name"] != "Romaine Lettuce" {
		t.Errorf("name = %v, want %q", decoded["name"], "Romaine Lettuce")
	}
}

func TestLowStock(t *testing.T) {
	items := []*InventoryItem{
		{Name: "Wagyu Beef", CurrentStock: decimal.NewFromInt(20), MinThreshold: decimal.NewFromInt(5)},
		{Name: "Romaine Lettuce", CurrentStock: decimal.NewFromInt(10), MinThreshold: decimal.NewFromInt(15)},
		{Name: "Mozzarella", CurrentStock: decimal.NewFromInt(3), MinThreshold: decimal.NewFromInt(3)},
	}

	low := LowStock(items)

	if len(low) != 2 {
		t.Fatalf("LowStock() returned %d items, want 2", len(low))
	}
	if low[0].Name != "Romaine Lettuce" || low[1].Name != "Mozzarella" {
		t.Errorf("LowStock() = [%s %s], want [Romaine Lettuce Mozzarella]", low[0].Name, low[1].Name)
	}
}
