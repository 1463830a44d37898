package order

import (
	"time"

	"github.com/appetiteclub/pos/pkg/enums/itemstatus"
	"github.com/appetiteclub/pos/pkg/enums/orderstatus"
	"github.com/aquamarinepk/aqm"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Order struct {
	ID           uuid.UUID       `json:"id"`
	TableID      *uuid.UUID      `json:"table_id,omitempty"`
	Type         string          `json:"type"`
	Items        []*OrderItem    `json:"items"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Tax          decimal.Decimal `json:"tax"`
	Tip          decimal.Decimal `json:"tip"`
	Discount     decimal.Decimal `json:"discount"`
	Total        decimal.Decimal `json:"total"`
	Status       string          `json:"status"`
	CustomerName string          `json:"customer_name,omitempty"`
	Address      string          `json:"address,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (o *Order) GetID() uuid.UUID {
	return o.ID
}

func (o *Order) ResourceType() string {
	return "order"
}

func (o *Order) SetID(id uuid.UUID) {
	o.ID = id
}

func NewOrder() *Order {
	return &Order{
		ID:     aqm.GenerateNewID(),
		Status: orderstatus.Statuses.Open.Code(),
		Items:  []*OrderItem{},
	}
}

func (o *Order) EnsureID() {
	if o.ID == uuid.Nil {
		o.ID = aqm.GenerateNewID()
	}
}

func (o *Order) BeforeCreate() {
	o.EnsureID()
	o.CreatedAt = time.Now()
	o.UpdatedAt = time.Now()
}

func (o *Order) BeforeUpdate() {
	o.UpdatedAt = time.Now()
}

func (o *Order) IsOpen() bool {
	return o.Status == orderstatus.Statuses.Open.Code()
}

func (o *Order) IsPaid() bool {
	return o.Status == orderstatus.Statuses.Paid.Code()
}

func (o *Order) HasTable() bool {
	return o.TableID != nil && *o.TableID != uuid.Nil
}

// Recalculate refreshes the derived money fields from the current lines.
func (o *Order) Recalculate() {
	totals := ComputeTotals(o.Items)
	o.Subtotal = totals.Subtotal
	o.Tax = totals.Tax
	o.Total = totals.Total
}

func (o *Order) FindItem(id uuid.UUID) *OrderItem {
	for _, item := range o.Items {
		if item.ID == id {
			return item
		}
	}
	return nil
}

func (o *Order) ItemCount() int {
	count := 0
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}

// Clone returns a copy that shares no lines with o.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	cp := *o
	if o.TableID != nil {
		tableID := *o.TableID
		cp.TableID = &tableID
	}
	cp.Items = make([]*OrderItem, 0, len(o.Items))
	for _, item := range o.Items {
		cp.Items = append(cp.Items, item.Clone())
	}
	return &cp
}

type OrderItem struct {
	ID         uuid.UUID       `json:"id"`
	MenuItemID uuid.UUID       `json:"menu_item_id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity"`
	Modifiers  []string        `json:"modifiers"`
	Status     string          `json:"status"`
}

func (oi *OrderItem) GetID() uuid.UUID {
	return oi.ID
}

func (oi *OrderItem) ResourceType() string {
	return "order-item"
}

func NewOrderItem() *OrderItem {
	return &OrderItem{
		ID:        aqm.GenerateNewID(),
		Status:    itemstatus.Statuses.Pending.Code(),
		Modifiers: []string{},
	}
}

func (oi *OrderItem) EnsureID() {
	if oi.ID == uuid.Nil {
		oi.ID = aqm.GenerateNewID()
	}
}

func (oi *OrderItem) MarkAsReady() {
	oi.Status = itemstatus.Statuses.Ready.Code()
}

func (oi *OrderItem) IsReady() bool {
	return oi.Status == itemstatus.Statuses.Ready.Code()
}

func (oi *OrderItem) LineTotal() decimal.Decimal {
	return oi.Price.Mul(decimal.NewFromInt(int64(oi.Quantity)))
}

func (oi *OrderItem) Clone() *OrderItem {
	cp := *oi
	cp.Modifiers = append([]string{}, oi.Modifiers...)
	return &cp
}
