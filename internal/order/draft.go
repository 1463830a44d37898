package order

import (
	"github.com/appetiteclub/pos/internal/catalog"
	"github.com/appetiteclub/pos/pkg/enums/ordertype"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Draft is the in-progress item list of the POS entry screen. It is checked
// once by Validate before it becomes an order.
type Draft struct {
	OrderID      *uuid.UUID   `json:"order_id,omitempty"`
	TableID      *uuid.UUID   `json:"table_id,omitempty"`
	Type         string       `json:"type"`
	Items        []*OrderItem `json:"items"`
	CustomerName string       `json:"customer_name,omitempty"`
	Address      string       `json:"address,omitempty"`
}

// NewDraft starts a dine-in draft for a table, or a takeout draft without one.
func NewDraft(tableID *uuid.UUID) *Draft {
	draft := &Draft{
		Type:  ordertype.Types.Takeout.Code(),
		Items: []*OrderItem{},
	}
	if tableID != nil && *tableID != uuid.Nil {
		id := *tableID
		draft.TableID = &id
		draft.Type = ordertype.Types.DineIn.Code()
	}
	return draft
}

// DraftFromOrder resumes an open tab so new lines land on the same order.
func DraftFromOrder(o *Order) *Draft {
	cp := o.Clone()
	id := cp.ID
	return &Draft{
		OrderID:      &id,
		TableID:      cp.TableID,
		Type:         cp.Type,
		Items:        cp.Items,
		CustomerName: cp.CustomerName,
		Address:      cp.Address,
	}
}

func (d *Draft) AddMenuItem(menuItem *catalog.MenuItem, quantity int, modifiers []string) *OrderItem {
	var item *OrderItem
	d.Items, item = addLine(d.Items, menuItem, quantity, modifiers)
	return item
}

// AdjustQuantity changes a line by delta. A line that reaches zero is removed.
func (d *Draft) AdjustQuantity(itemID uuid.UUID, delta int) error {
	items, _, err := adjustLine(d.Items, itemID, delta)
	if err != nil {
		return err
	}
	d.Items = items
	return nil
}

func (d *Draft) Totals() Totals {
	return ComputeTotals(d.Items)
}

func (d *Draft) IsEmpty() bool {
	return len(d.Items) == 0
}

func (d *Draft) Validate() []string {
	var errors []string

	if ordertype.ByName(d.Type) == nil {
		errors = append(errors, "invalid order type")
	}

	if d.Type == ordertype.Types.DineIn.Code() && (d.TableID == nil || *d.TableID == uuid.Nil) {
		errors = append(errors, "dine in orders require a table")
	}

	if len(d.Items) == 0 {
		errors = append(errors, "order must have at least one item")
	}

	for _, item := range d.Items {
		if item.Name == "" {
			errors = append(errors, "item name is required")
		}
		if item.Quantity <= 0 {
			errors = append(errors, "item quantity must be positive")
		}
		if item.Price.LessThan(decimal.Zero) {
			errors = append(errors, "item price cannot be negative")
		}
	}

	return errors
}

// Order builds a fresh open order from the draft lines.
func (d *Draft) Order() *Order {
	o := NewOrder()
	o.Type = d.Type
	o.CustomerName = d.CustomerName
	o.Address = d.Address
	if d.TableID != nil {
		tableID := *d.TableID
		o.TableID = &tableID
	}
	for _, item := range d.Items {
		cp := item.Clone()
		cp.EnsureID()
		o.Items = append(o.Items, cp)
	}
	o.Recalculate()
	return o
}
