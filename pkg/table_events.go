package pkg

import "time"

const (
	// TableStatusTopic delivers every status change applied to a table.
	TableStatusTopic = "pos.tables.status"
	// TableLayoutTopic groups table add/remove/move events.
	TableLayoutTopic = "pos.tables.layout"

	// EventTableStatusChanged identifies a table status change event payload.
	EventTableStatusChanged = "table.status.changed"
	EventTableAdded         = "table.added"
	EventTableRemoved       = "table.removed"
	EventTableMoved         = "table.moved"
)

// TableStatusEvent captures a status transition of one table.
type TableStatusEvent struct {
	EventType      string    `json:"event_type"`
	TableID        string    `json:"table_id"`
	TableNumber    int       `json:"table_number"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	OrderID        string    `json:"order_id,omitempty"`
	Source         string    `json:"source,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// TableLayoutEvent captures floor plan edits.
type TableLayoutEvent struct {
	EventType   string    `json:"event_type"`
	TableID     string    `json:"table_id"`
	TableNumber int       `json:"table_number"`
	X           int       `json:"x"`
	Y           int       `json:"y"`
	OccurredAt  time.Time `json:"occurred_at"`
}
