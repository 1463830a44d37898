package order

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DraftItemRequest struct {
	MenuItemID uuid.UUID `json:"menu_item_id"`
	Quantity   int       `json:"quantity"`
	Modifiers  []string  `json:"modifiers,omitempty"`
}

type DraftRequest struct {
	TableID      *uuid.UUID         `json:"table_id,omitempty"`
	Type         string             `json:"type,omitempty"`
	CustomerName string             `json:"customer_name,omitempty"`
	Address      string             `json:"address,omitempty"`
	Items        []DraftItemRequest `json:"items"`
}

type OrderItemRequest struct {
	ID         uuid.UUID       `json:"id,omitempty"`
	MenuItemID uuid.UUID       `json:"menu_item_id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity"`
	Modifiers  []string        `json:"modifiers,omitempty"`
	Status     string          `json:"status,omitempty"`
}

// OrderUpdateRequest carries a whole order. Totals are never read from it.
type OrderUpdateRequest struct {
	TableID      *uuid.UUID         `json:"table_id,omitempty"`
	Type         string             `json:"type"`
	Status       string             `json:"status"`
	Items        []OrderItemRequest `json:"items"`
	Tip          decimal.Decimal    `json:"tip"`
	Discount     decimal.Decimal    `json:"discount"`
	CustomerName string             `json:"customer_name,omitempty"`
	Address      string             `json:"address,omitempty"`
}

type AddItemRequest struct {
	MenuItemID uuid.UUID `json:"menu_item_id"`
	Modifiers  []string  `json:"modifiers,omitempty"`
}

type QuantityRequest struct {
	Delta int `json:"delta"`
}

// ToOrder maps the request onto an order carrying id.
func (r OrderUpdateRequest) ToOrder(id uuid.UUID) *Order {
	o := &Order{
		ID:           id,
		Type:         r.Type,
		Status:       r.Status,
		Tip:          r.Tip,
		Discount:     r.Discount,
		CustomerName: r.CustomerName,
		Address:      r.Address,
		Items:        make([]*OrderItem, 0, len(r.Items)),
	}
	if r.TableID != nil && *r.TableID != uuid.Nil {
		tableID := *r.TableID
		o.TableID = &tableID
	}

	for _, line := range r.Items {
		item := NewOrderItem()
		if line.ID != uuid.Nil {
			item.ID = line.ID
		}
		item.MenuItemID = line.MenuItemID
		item.Name = line.Name
		item.Price = line.Price
		item.Quantity = line.Quantity
		if len(line.Modifiers) > 0 {
			item.Modifiers = append([]string{}, line.Modifiers...)
		}
		if line.Status != "" {
			item.Status = line.Status
		}
		o.Items = append(o.Items, item)
	}

	return o
}
