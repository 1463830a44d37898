package catalog

import (
	"time"

	"github.com/aquamarinepk/aqm"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MenuItem is a dish or drink offered on the POS.
// Orders copy name and price at add time, so edits here never reach existing orders.
type MenuItem struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	InStock     int             `json:"in_stock"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func NewMenuItem() *MenuItem {
	return &MenuItem{
		ID:    aqm.GenerateNewID(),
		Price: decimal.Zero,
	}
}

func (m *MenuItem) GetID() uuid.UUID {
	return m.ID
}

func (m *MenuItem) ResourceType() string {
	return "menu-item"
}

func (m *MenuItem) SetID(id uuid.UUID) {
	m.ID = id
}

func (m *MenuItem) EnsureID() {
	if m.ID == uuid.Nil {
		m.ID = aqm.GenerateNewID()
	}
}

func (m *MenuItem) BeforeCreate() {
	m.EnsureID()
	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now
}

func (m *MenuItem) BeforeUpdate() {
	m.UpdatedAt = time.Now()
}

// Apply copies the editable fields of a request into the item.
func (m *MenuItem) Apply(req MenuItemRequest) {
	m.Name = req.Name
	m.Price = req.Price
	m.Category = req.Category
	m.Description = req.Description
	m.Image = req.Image
	m.InStock = req.InStock
}

// Categories returns the distinct categories in first-seen order.
func Categories(items []*MenuItem) []string {
	seen := make(map[string]struct{}, len(items))
	categories := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.Category]; ok {
			continue
		}
		seen[item.Category] = struct{}{}
		categories = append(categories, item.Category)
	}
	return categories
}
