package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/appetiteclub/pos/internal/catalog"
	"github.com/appetiteclub/pos/internal/floor"
	"github.com/appetiteclub/pos/pkg/enums/orderstatus"
	"github.com/appetiteclub/pos/pkg/event"
	"github.com/aquamarinepk/aqm"
	"github.com/aquamarinepk/aqm/events"
	"github.com/google/uuid"
)

// TableTransitioner is the part of the floor the engine drives.
type TableTransitioner interface {
	Occupy(ctx context.Context, id, orderID uuid.UUID) (*floor.Table, error)
	Release(ctx context.Context, id, orderID uuid.UUID) (*floor.Table, error)
}

// MenuLookup resolves catalog entries when lines are added.
type MenuLookup interface {
	Get(ctx context.Context, id uuid.UUID) (*catalog.MenuItem, error)
}

// Engine owns the order list, the totals and the coupling between orders
// and table status.
type Engine struct {
	mu        sync.Mutex
	repo      OrderRepo
	tables    TableTransitioner
	menu      MenuLookup
	publisher events.Publisher
	logger    aqm.Logger
}

type EngineDeps struct {
	OrderRepo OrderRepo
	Tables    TableTransitioner
	Menu      MenuLookup
	Publisher events.Publisher
}

func NewEngine(deps EngineDeps, logger aqm.Logger) *Engine {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	return &Engine{
		repo:      deps.OrderRepo,
		tables:    deps.Tables,
		menu:      deps.Menu,
		publisher: deps.Publisher,
		logger:    logger,
	}
}

func (e *Engine) Get(ctx context.Context, id uuid.UUID) (*Order, error) {
	return e.repo.Get(ctx, id)
}

// List returns every order, or only those with the given status.
func (e *Engine) List(ctx context.Context, status string) ([]*Order, error) {
	if status == "" {
		return e.repo.List(ctx)
	}
	return e.repo.ListByStatus(ctx, status)
}

// NewDraft resolves the requested menu items from the catalog.
func (e *Engine) NewDraft(ctx context.Context, req DraftRequest) (*Draft, error) {
	draft := NewDraft(req.TableID)
	if req.Type != "" {
		draft.Type = req.Type
	}
	draft.CustomerName = strings.TrimSpace(req.CustomerName)
	draft.Address = strings.TrimSpace(req.Address)

	for _, line := range req.Items {
		menuItem, err := e.menu.Get(ctx, line.MenuItemID)
		if err != nil {
			return nil, fmt.Errorf("resolve menu item %s: %w", line.MenuItemID, err)
		}
		draft.AddMenuItem(menuItem, line.Quantity, line.Modifiers)
	}

	return draft, nil
}

// CreateOrder opens a new order from the draft. A table id marks that table
// occupied; a table that no longer exists leaves an orphaned reference.
// A table holds at most one open order.
func (e *Engine) CreateOrder(ctx context.Context, draft *Draft) (*Order, error) {
	if errs := draft.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDraft, strings.Join(errs, "; "))
	}

	e.mu.Lock()
	if draft.TableID != nil {
		existing, err := e.findOpen(ctx, *draft.TableID)
		if err == nil {
			e.mu.Unlock()
			return nil, fmt.Errorf("%w: %s", ErrTableHasOpenOrder, existing.ID)
		}
		if !errors.Is(err, ErrOrderNotFound) {
			e.mu.Unlock()
			return nil, err
		}
	}

	o := draft.Order()
	o.BeforeCreate()

	if err := e.repo.Create(ctx, o); err != nil {
		e.mu.Unlock()
		return nil, fmt.Errorf("create order: %w", err)
	}

	if o.HasTable() {
		e.occupy(ctx, *o.TableID, o.ID)
	}
	e.mu.Unlock()

	e.publish(ctx, event.EventOrderCreated, o, nil)
	return o, nil
}

// UpdateOrder replaces the stored order wholesale. Totals come from the
// incoming lines and created_at is kept. Moving to paid releases the table.
func (e *Engine) UpdateOrder(ctx context.Context, o *Order) (*Order, error) {
	e.mu.Lock()
	updated, wasPaid, err := e.update(ctx, o)
	e.mu.Unlock()
	if err != nil {
		return nil, err
	}

	eventType := event.EventOrderUpdated
	if updated.IsPaid() && !wasPaid {
		eventType = event.EventOrderPaid
	}
	e.publish(ctx, eventType, updated, nil)
	return updated, nil
}

// Pay settles an open order. Payment itself happens outside the system.
func (e *Engine) Pay(ctx context.Context, id uuid.UUID) (*Order, error) {
	e.mu.Lock()
	current, err := e.repo.Get(ctx, id)
	if err != nil {
		e.mu.Unlock()
		return nil, err
	}
	if !current.IsOpen() {
		e.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrOrderNotOpen, current.Status)
	}

	current.Status = orderstatus.Statuses.Paid.Code()
	paid, _, err := e.update(ctx, current)
	e.mu.Unlock()
	if err != nil {
		return nil, err
	}

	e.publish(ctx, event.EventOrderPaid, paid, nil)
	return paid, nil
}

// update saves o over the stored order and reports whether the stored one
// was already paid.
func (e *Engine) update(ctx context.Context, o *Order) (*Order, bool, error) {
	current, err := e.repo.Get(ctx, o.ID)
	if err != nil {
		return nil, false, err
	}

	next := o.Clone()
	next.CreatedAt = current.CreatedAt
	for _, item := range next.Items {
		item.EnsureID()
	}
	next.Recalculate()
	next.BeforeUpdate()

	if err := e.repo.Save(ctx, next); err != nil {
		return nil, false, fmt.Errorf("save order: %w", err)
	}

	if next.IsPaid() && !current.IsPaid() && next.HasTable() {
		e.release(ctx, *next.TableID, next.ID)
	}

	return next, current.IsPaid(), nil
}

func (e *Engine) FindOpenOrderForTable(ctx context.Context, tableID uuid.UUID) (*Order, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.findOpen(ctx, tableID)
}

func (e *Engine) findOpen(ctx context.Context, tableID uuid.UUID) (*Order, error) {
	open, err := e.repo.ListByStatus(ctx, orderstatus.Statuses.Open.Code())
	if err != nil {
		return nil, err
	}

	for _, o := range open {
		if o.HasTable() && *o.TableID == tableID {
			return o, nil
		}
	}

	return nil, fmt.Errorf("%w: no open order for table %s", ErrOrderNotFound, tableID)
}

// AddMenuItem puts one more unit of a menu item on an open order.
func (e *Engine) AddMenuItem(ctx context.Context, orderID, menuItemID uuid.UUID, modifiers []string) (*Order, *OrderItem, error) {
	menuItem, err := e.menu.Get(ctx, menuItemID)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve menu item %s: %w", menuItemID, err)
	}

	var line *OrderItem
	o, err := e.editOpen(ctx, orderID, func(d *Draft) error {
		line = d.AddMenuItem(menuItem, 1, modifiers)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	line = o.FindItem(line.ID)
	e.publish(ctx, event.EventOrderItemAdded, o, line)
	return o, line, nil
}

// AdjustItemQuantity returns a nil item when the line dropped to zero.
func (e *Engine) AdjustItemQuantity(ctx context.Context, orderID, itemID uuid.UUID, delta int) (*Order, *OrderItem, error) {
	var removed *OrderItem
	o, err := e.editOpen(ctx, orderID, func(d *Draft) error {
		for _, item := range d.Items {
			if item.ID == itemID {
				removed = item.Clone()
			}
		}
		return d.AdjustQuantity(itemID, delta)
	})
	if err != nil {
		return nil, nil, err
	}

	line := o.FindItem(itemID)
	if line == nil {
		removed.Quantity = 0
		e.publish(ctx, event.EventOrderItemQuantity, o, removed)
		return o, nil, nil
	}

	e.publish(ctx, event.EventOrderItemQuantity, o, line)
	return o, line, nil
}

// MarkItemReady flags one line as ready. Order status and totals stay as they are.
func (e *Engine) MarkItemReady(ctx context.Context, orderID, itemID uuid.UUID) (*Order, error) {
	e.mu.Lock()
	o, err := e.repo.Get(ctx, orderID)
	if err != nil {
		e.mu.Unlock()
		return nil, err
	}

	item := o.FindItem(itemID)
	if item == nil {
		e.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrOrderItemNotFound, itemID)
	}

	item.MarkAsReady()
	o.BeforeUpdate()
	if err := e.repo.Save(ctx, o); err != nil {
		e.mu.Unlock()
		return nil, fmt.Errorf("save order: %w", err)
	}
	e.mu.Unlock()

	e.publish(ctx, event.EventOrderItemReady, o, item)
	return o, nil
}

func (e *Engine) editOpen(ctx context.Context, orderID uuid.UUID, edit func(*Draft) error) (*Order, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	o, err := e.repo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.IsOpen() {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotOpen, o.Status)
	}

	draft := DraftFromOrder(o)
	if err := edit(draft); err != nil {
		return nil, err
	}

	o.Items = draft.Items
	o.Recalculate()
	o.BeforeUpdate()

	if err := e.repo.Save(ctx, o); err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}
	return o, nil
}

func (e *Engine) occupy(ctx context.Context, tableID, orderID uuid.UUID) {
	if e.tables == nil {
		return
	}
	if _, err := e.tables.Occupy(ctx, tableID, orderID); err != nil {
		if errors.Is(err, floor.ErrTableNotFound) {
			e.logger.Info("order references missing table", "order_id", orderID.String(), "table_id", tableID.String())
			return
		}
		e.logger.Error("cannot occupy table", "error", err, "table_id", tableID.String())
	}
}

func (e *Engine) release(ctx context.Context, tableID, orderID uuid.UUID) {
	if e.tables == nil {
		return
	}
	if _, err := e.tables.Release(ctx, tableID, orderID); err != nil {
		if errors.Is(err, floor.ErrTableNotFound) {
			e.logger.Info("paid order references missing table", "order_id", orderID.String(), "table_id", tableID.String())
			return
		}
		if errors.Is(err, floor.ErrTableHeldByOtherOrder) {
			e.logger.Info("table held by another order, left as is", "order_id", orderID.String(), "table_id", tableID.String())
			return
		}
		e.logger.Error("cannot release table", "error", err, "table_id", tableID.String())
	}
}

func (e *Engine) publish(ctx context.Context, eventType string, o *Order, item *OrderItem) {
	if e.publisher == nil {
		return
	}

	evt := event.OrderEvent{
		EventType:  eventType,
		OccurredAt: time.Now().UTC(),
		OrderID:    o.ID.String(),
		OrderType:  o.Type,
		Status:     o.Status,
		ItemCount:  o.ItemCount(),
		Total:      o.Total.StringFixed(2),
	}
	if o.HasTable() {
		evt.TableID = o.TableID.String()
	}
	if item != nil {
		evt.OrderItemID = item.ID.String()
		evt.MenuItemID = item.MenuItemID.String()
		evt.MenuItemName = item.Name
		evt.Quantity = item.Quantity
	}

	payload, err := json.Marshal(evt)
	if err != nil {
		e.logger.Error("cannot marshal order event", "error", err, "event_type", eventType)
		return
	}
	if err := e.publisher.Publish(ctx, event.OrdersTopic, payload); err != nil {
		e.logger.Error("cannot publish order event", "error", err, "event_type", eventType)
	}
}
