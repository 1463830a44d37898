package catalog

import (
	"encoding/json"
	"time"

	"github.com/aquamarinepk/aqm"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryItem tracks a raw ingredient. Stock is not linked to orders;
// it only changes through explicit adjustments.
type InventoryItem struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	Unit         string          `json:"unit"`
	MinThreshold decimal.Decimal `json:"min_threshold"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func NewInventoryItem() *InventoryItem {
	return &InventoryItem{
		ID:           aqm.GenerateNewID(),
		CurrentStock: decimal.Zero,
		MinThreshold: decimal.Zero,
	}
}

func (i *InventoryItem) GetID() uuid.UUID {
	return i.ID
}

func (i *InventoryItem) ResourceType() string {
	return "inventory-item"
}

func (i *InventoryItem) EnsureID() {
	if i.ID == uuid.Nil {
		i.ID = aqm.GenerateNewID()
	}
}

func (i *InventoryItem) BeforeCreate() {
	i.EnsureID()
	now := time.Now()
	i.CreatedAt = now
	i.UpdatedAt = now
}

// IsLow reports whether the stock is at or below its threshold.
func (i *InventoryItem) IsLow() bool {
	return i.CurrentStock.LessThanOrEqual(i.MinThreshold)
}

// AdjustStock applies delta and clamps the result at zero.
func (i *InventoryItem) AdjustStock(delta decimal.Decimal) {
	next := i.CurrentStock.Add(delta)
	if next.IsNegative() {
		next = decimal.Zero
	}
	i.CurrentStock = next
	i.UpdatedAt = time.Now()
}

// MarshalJSON renders the derived low flag next to the stored fields.
func (i InventoryItem) MarshalJSON() ([]byte, error) {
	type stored InventoryItem
	return json.Marshal(struct {
		stored
		Low bool `json:"low"`
	}{
		stored: stored(i),
		Low:    i.IsLow(),
	})
}

// LowStock filters items at or below their threshold, keeping order.
func LowStock(items []*InventoryItem) []*InventoryItem {
	low := make([]*InventoryItem, 0)
	for _, item := range items {
		if item.IsLow() {
			low = append(low, item)
		}
	}
	return low
}
