package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MockMenuRepo is a mock implementation of MenuRepo for testing
type MockMenuRepo struct {
	mu         sync.RWMutex
	items      map[uuid.UUID]*MenuItem
	order      []uuid.UUID
	CreateFunc func(ctx context.Context, item *MenuItem) error
	ListFunc   func(ctx context.Context) ([]*MenuItem, error)
	SaveFunc   func(ctx context.Context, item *MenuItem) error
}

func NewMockMenuRepo() *MockMenuRepo {
	return &MockMenuRepo{
		items: make(map[uuid.UUID]*MenuItem),
	}
}

func (m *MockMenuRepo) add(item *MenuItem) {
	m.items[item.ID] = item
	m.order = append(m.order, item.ID)
}

func (m *MockMenuRepo) Create(ctx context.Context, item *MenuItem) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, item)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.add(item)
	return nil
}

func (m *MockMenuRepo) Get(ctx context.Context, id uuid.UUID) (*MenuItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	item, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMenuItemNotFound, id)
	}
	return item, nil
}

func (m *MockMenuRepo) List(ctx context.Context) ([]*MenuItem, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*MenuItem
	for _, id := range m.order {
		result = append(result, m.items[id])
	}
	return result, nil
}

func (m *MockMenuRepo) ListByCategory(ctx context.Context, category string) ([]*MenuItem, error) {
	all, _ := m.List(ctx)
	var result []*MenuItem
	for _, item := range all {
		if item.Category == category {
			result = append(result, item)
		}
	}
	return result, nil
}

func (m *MockMenuRepo) Save(ctx context.Context, item *MenuItem) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, item)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[item.ID]; !ok {
		return ErrMenuItemNotFound
	}
	m.items[item.ID] = item
	return nil
}

func (m *MockMenuRepo) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return ErrMenuItemNotFound
	}
	delete(m.items, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// MockInventoryRepo is a mock implementation of InventoryRepo for testing
type MockInventoryRepo struct {
	mu              sync.RWMutex
	items           map[uuid.UUID]*InventoryItem
	order           []uuid.UUID
	AdjustStockFunc func(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (*InventoryItem, error)
}

func NewMockInventoryRepo() *MockInventoryRepo {
	return &MockInventoryRepo{
		items: make(map[uuid.UUID]*InventoryItem),
	}
}

func (m *MockInventoryRepo) Create(ctx context.Context, item *InventoryItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[item.ID] = item
	m.order = append(m.order, item.ID)
	return nil
}

func (m *MockInventoryRepo) Get(ctx context.Context, id uuid.UUID) (*InventoryItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	item, ok := m.items[id]
	if !ok {
		return nil, ErrInventoryItemNotFound
	}
	return item, nil
}

func (m *MockInventoryRepo) List(ctx context.Context) ([]*InventoryItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*InventoryItem
	for _, id := range m.order {
		result = append(result, m.items[id])
	}
	return result, nil
}

func (m *MockInventoryRepo) AdjustStock(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (*InventoryItem, error) {
	if m.AdjustStockFunc != nil {
		return m.AdjustStockFunc(ctx, id, delta)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInventoryItemNotFound, id)
	}
	item.AdjustStock(delta)
	return item, nil
}
