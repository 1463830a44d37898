package event

import "time"

const (
	OrdersTopic = "pos.orders"

	EventOrderCreated      = "order.created"
	EventOrderUpdated      = "order.updated"
	EventOrderPaid         = "order.paid"
	EventOrderItemAdded    = "order.item.added"
	EventOrderItemQuantity = "order.item.quantity_changed"
	EventOrderItemReady    = "order.item.ready"
)

// OrderEvent is published for every order mutation.
// The kitchen feed consumes it to push a fresh board to its clients.
type OrderEvent struct {
	EventType  string    `json:"event_type"`
	OccurredAt time.Time `json:"occurred_at"`
	OrderID    string    `json:"order_id"`
	TableID    string    `json:"table_id,omitempty"`
	OrderType  string    `json:"order_type"`
	Status     string    `json:"status"`
	ItemCount  int       `json:"item_count"`
	Total      string    `json:"total"`

	// Set for item level events only
	OrderItemID  string `json:"order_item_id,omitempty"`
	MenuItemID   string `json:"menu_item_id,omitempty"`
	MenuItemName string `json:"menu_item_name,omitempty"`
	Quantity     int    `json:"quantity,omitempty"`
}
