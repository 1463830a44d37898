package floor

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/appetiteclub/pos/pkg"
	"github.com/appetiteclub/pos/pkg/enums/tablestatus"
	"github.com/aquamarinepk/aqm"
	"github.com/aquamarinepk/aqm/events"
	"github.com/google/uuid"
)

const (
	sourceManual = "manual"
	sourceOrders = "orders"
)

// Floor owns the table layout and every table status transition.
// Occupy and Release are reserved for the order engine.
type Floor struct {
	mu        sync.Mutex
	repo      TableRepo
	publisher events.Publisher
	logger    aqm.Logger
}

func NewFloor(repo TableRepo, publisher events.Publisher, logger aqm.Logger) *Floor {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	return &Floor{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

func (f *Floor) List(ctx context.Context) ([]*Table, error) {
	return f.repo.List(ctx)
}

func (f *Floor) Get(ctx context.Context, id uuid.UUID) (*Table, error) {
	return f.repo.Get(ctx, id)
}

// AddTable appends a table numbered after the current highest number and
// placed on the default grid.
func (f *Floor) AddTable(ctx context.Context, capacity int) (*Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	tables, err := f.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}

	table := NewTable(NextNumber(tables), capacity)
	table.BeforeCreate()

	if err := f.repo.Create(ctx, table); err != nil {
		return nil, fmt.Errorf("create table: %w", err)
	}

	f.publishLayout(ctx, pkg.EventTableAdded, table)
	return table, nil
}

// RemoveTable deletes the table even when it is occupied. The open order,
// if any, keeps its table id as an orphaned reference.
func (f *Floor) RemoveTable(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	table, err := f.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := f.repo.Delete(ctx, id); err != nil {
		return err
	}

	if table.CurrentOrderID != nil {
		f.logger.Info("removed table with open order", "table_id", id.String(), "order_id", table.CurrentOrderID.String())
	}

	f.publishLayout(ctx, pkg.EventTableRemoved, table)
	return nil
}

// SetStatus overrides the status without touching the order reference.
func (f *Floor) SetStatus(ctx context.Context, id uuid.UUID, status string) (*Table, error) {
	if tablestatus.ByName(status) == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	return f.mutate(ctx, id, sourceManual, func(t *Table) error {
		t.Status = status
		t.BeforeUpdate()
		return nil
	})
}

// ClearTable is the explicit dirty to available transition.
func (f *Floor) ClearTable(ctx context.Context, id uuid.UUID) (*Table, error) {
	return f.mutate(ctx, id, sourceManual, func(t *Table) error {
		if !t.IsDirty() {
			return fmt.Errorf("%w: table %d is %s", ErrTableNotDirty, t.Number, t.Status)
		}
		t.Status = tablestatus.Statuses.Available.Code()
		t.BeforeUpdate()
		return nil
	})
}

func (f *Floor) MoveTable(ctx context.Context, id uuid.UUID, x, y int) (*Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	table, err := f.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	table.MoveTo(x, y)
	if err := f.repo.Save(ctx, table); err != nil {
		return nil, err
	}

	f.publishLayout(ctx, pkg.EventTableMoved, table)
	return table, nil
}

// Occupy marks the table occupied by orderID regardless of its prior status.
func (f *Floor) Occupy(ctx context.Context, id, orderID uuid.UUID) (*Table, error) {
	return f.mutate(ctx, id, sourceOrders, func(t *Table) error {
		t.Occupy(orderID)
		return nil
	})
}

// Release marks the table dirty and drops its order reference. A table that
// already points at a different order is left untouched.
func (f *Floor) Release(ctx context.Context, id, orderID uuid.UUID) (*Table, error) {
	return f.mutate(ctx, id, sourceOrders, func(t *Table) error {
		if t.HeldByOther(orderID) {
			return fmt.Errorf("%w: %s", ErrTableHeldByOtherOrder, t.CurrentOrderID)
		}
		t.Release()
		return nil
	})
}

func (f *Floor) mutate(ctx context.Context, id uuid.UUID, source string, apply func(*Table) error) (*Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	table, err := f.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := table.Status
	previousOrder := table.CurrentOrderID
	if err := apply(table); err != nil {
		return nil, err
	}

	if err := f.repo.Save(ctx, table); err != nil {
		return nil, err
	}

	orderID := table.CurrentOrderID
	if orderID == nil {
		orderID = previousOrder
	}
	f.publishStatus(ctx, table, previous, orderID, source)
	return table, nil
}

func (f *Floor) publishStatus(ctx context.Context, table *Table, previous string, orderID *uuid.UUID, source string) {
	if f.publisher == nil {
		return
	}
	evt := pkg.TableStatusEvent{
		EventType:      pkg.EventTableStatusChanged,
		TableID:        table.ID.String(),
		TableNumber:    table.Number,
		Status:         table.Status,
		PreviousStatus: previous,
		Source:         source,
		OccurredAt:     time.Now().UTC(),
	}
	if orderID != nil {
		evt.OrderID = orderID.String()
	}
	f.publish(ctx, pkg.TableStatusTopic, evt)
}

func (f *Floor) publishLayout(ctx context.Context, eventType string, table *Table) {
	if f.publisher == nil {
		return
	}
	evt := pkg.TableLayoutEvent{
		EventType:   eventType,
		TableID:     table.ID.String(),
		TableNumber: table.Number,
		X:           table.X,
		Y:           table.Y,
		OccurredAt:  time.Now().UTC(),
	}
	f.publish(ctx, pkg.TableLayoutTopic, evt)
}

func (f *Floor) publish(ctx context.Context, topic string, evt interface{}) {
	payload, err := json.Marshal(evt)
	if err != nil {
		f.logger.Error("cannot marshal table event", "error", err, "topic", topic)
		return
	}
	if err := f.publisher.Publish(ctx, topic, payload); err != nil {
		f.logger.Error("cannot publish table event", "error", err, "topic", topic)
	}
}
