package floor

import (
	"time"

	"github.com/appetiteclub/pos/pkg/enums/tablestatus"
	"github.com/aquamarinepk/aqm"
	"github.com/google/uuid"
)

// Floor plan grid used for default table placement.
const (
	GridColumns     = 5
	GridSpacing     = 220
	GridPadding     = 60
	DefaultCapacity = 4
)

type Table struct {
	ID             uuid.UUID  `json:"id"`
	Number         int        `json:"number"`
	Capacity       int        `json:"capacity"`
	Status         string     `json:"status"`
	X              int        `json:"x"`
	Y              int        `json:"y"`
	CurrentOrderID *uuid.UUID `json:"current_order_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (t *Table) GetID() uuid.UUID {
	return t.ID
}

func (t *Table) ResourceType() string {
	return "table"
}

func (t *Table) SetID(id uuid.UUID) {
	t.ID = id
}

func NewTable(number, capacity int) *Table {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	x, y := GridPosition(number)
	return &Table{
		ID:       aqm.GenerateNewID(),
		Number:   number,
		Capacity: capacity,
		Status:   tablestatus.Statuses.Available.Code(),
		X:        x,
		Y:        y,
	}
}

func (t *Table) EnsureID() {
	if t.ID == uuid.Nil {
		t.ID = aqm.GenerateNewID()
	}
}

func (t *Table) BeforeCreate() {
	t.EnsureID()
	t.CreatedAt = time.Now()
	t.UpdatedAt = time.Now()
}

func (t *Table) BeforeUpdate() {
	t.UpdatedAt = time.Now()
}

// Occupy binds the table to an open order.
func (t *Table) Occupy(orderID uuid.UUID) {
	id := orderID
	t.Status = tablestatus.Statuses.Occupied.Code()
	t.CurrentOrderID = &id
	t.UpdatedAt = time.Now()
}

// Release marks the table dirty once its order is paid.
func (t *Table) Release() {
	t.Status = tablestatus.Statuses.Dirty.Code()
	t.CurrentOrderID = nil
	t.UpdatedAt = time.Now()
}

// HeldByOther reports whether the table points at another order than orderID.
func (t *Table) HeldByOther(orderID uuid.UUID) bool {
	return t.CurrentOrderID != nil && *t.CurrentOrderID != orderID
}

func (t *Table) IsDirty() bool {
	return t.Status == tablestatus.Statuses.Dirty.Code()
}

func (t *Table) MoveTo(x, y int) {
	t.X = x
	t.Y = y
	t.UpdatedAt = time.Now()
}

// GridPosition places table number n on a GridColumns wide grid, row by row.
func GridPosition(number int) (x, y int) {
	if number < 1 {
		number = 1
	}
	index := number - 1
	x = (index%GridColumns)*GridSpacing + GridPadding
	y = (index/GridColumns)*GridSpacing + GridPadding
	return x, y
}

// NextNumber returns max(existing numbers)+1, or 1 for an empty floor.
func NextNumber(tables []*Table) int {
	highest := 0
	for _, t := range tables {
		if t.Number > highest {
			highest = t.Number
		}
	}
	return highest + 1
}
