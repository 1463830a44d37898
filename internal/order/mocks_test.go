package order

import (
	"context"
	"fmt"
	"sync"

	"github.com/appetiteclub/pos/internal/catalog"
	"github.com/appetiteclub/pos/internal/floor"
	"github.com/google/uuid"
)

// MockPublisher is a mock implementation of events.Publisher for testing
type MockPublisher struct {
	mu          sync.Mutex
	messages    [][]byte
	PublishFunc func(ctx context.Context, topic string, msg []byte) error
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, msg []byte) error {
	m.mu.Lock()
	m.messages = append(m.messages, msg)
	m.mu.Unlock()
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, topic, msg)
	}
	return nil
}

// MockOrderRepo is a mock implementation of OrderRepo for testing
type MockOrderRepo struct {
	mu         sync.RWMutex
	orders     map[uuid.UUID]*Order
	order      []uuid.UUID
	CreateFunc func(ctx context.Context, order *Order) error
	SaveFunc   func(ctx context.Context, order *Order) error
}

func NewMockOrderRepo() *MockOrderRepo {
	return &MockOrderRepo{
		orders: make(map[uuid.UUID]*Order),
	}
}

func (m *MockOrderRepo) Create(ctx context.Context, o *Order) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, o)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[o.ID] = o.Clone()
	m.order = append(m.order, o.ID)
	return nil
}

func (m *MockOrderRepo) Get(ctx context.Context, id uuid.UUID) (*Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, id)
	}
	return o.Clone(), nil
}

func (m *MockOrderRepo) List(ctx context.Context) ([]*Order, error) {
	return m.ListByStatus(ctx, "")
}

func (m *MockOrderRepo) ListByStatus(ctx context.Context, status string) ([]*Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*Order
	for _, id := range m.order {
		o := m.orders[id]
		if status == "" || o.Status == status {
			result = append(result, o.Clone())
		}
	}
	return result, nil
}

func (m *MockOrderRepo) Save(ctx context.Context, o *Order) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, o)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.orders[o.ID]; !ok {
		return fmt.Errorf("%w: %s", ErrOrderNotFound, o.ID)
	}
	m.orders[o.ID] = o.Clone()
	return nil
}

func (m *MockOrderRepo) stored(id uuid.UUID) *Order {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.orders[id]
}

// MockTables is a mock implementation of TableTransitioner for testing
type MockTables struct {
	mu     sync.Mutex
	tables map[uuid.UUID]*floor.Table
}

func NewMockTables(tables ...*floor.Table) *MockTables {
	m := &MockTables{tables: make(map[uuid.UUID]*floor.Table)}
	for _, t := range tables {
		m.tables[t.ID] = t
	}
	return m
}

func (m *MockTables) Occupy(ctx context.Context, id, orderID uuid.UUID) (*floor.Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tables[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", floor.ErrTableNotFound, id)
	}
	t.Occupy(orderID)
	return t, nil
}

func (m *MockTables) Release(ctx context.Context, id, orderID uuid.UUID) (*floor.Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tables[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", floor.ErrTableNotFound, id)
	}
	if t.HeldByOther(orderID) {
		return nil, fmt.Errorf("%w: %s", floor.ErrTableHeldByOtherOrder, id)
	}
	t.Release()
	return t, nil
}

// MockMenu is a mock implementation of MenuLookup for testing
type MockMenu struct {
	items map[uuid.UUID]*catalog.MenuItem
}

func NewMockMenu(items ...*catalog.MenuItem) *MockMenu {
	m := &MockMenu{items: make(map[uuid.UUID]*catalog.MenuItem)}
	for _, item := range items {
		m.items[item.ID] = item
	}
	return m
}

func (m *MockMenu) Get(ctx context.Context, id uuid.UUID) (*catalog.MenuItem, error) {
	item, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", catalog.ErrMenuItemNotFound, id)
	}
	cp := *item
	return &cp, nil
}
