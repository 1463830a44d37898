package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/appetiteclub/pos/internal/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type InventoryRepo struct {
	mutex sync.RWMutex
	order []uuid.UUID
	items map[uuid.UUID]*catalog.InventoryItem
}

func NewInventoryRepo() *InventoryRepo {
	return &InventoryRepo{
		items: make(map[uuid.UUID]*catalog.InventoryItem),
	}
}

func (r *InventoryRepo) Create(ctx context.Context, item *catalog.InventoryItem) error {
	if item == nil {
		return fmt.Errorf("inventory item is nil")
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.items[item.ID]; exists {
		return fmt.Errorf("inventory item %s already exists", item.ID)
	}

	cp := *item
	r.items[item.ID] = &cp
	r.order = append(r.order, item.ID)
	return nil
}

func (r *InventoryRepo) Get(ctx context.Context, id uuid.UUID) (*catalog.InventoryItem, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", catalog.ErrInventoryItemNotFound, id)
	}

	cp := *item
	return &cp, nil
}

func (r *InventoryRepo) List(ctx context.Context) ([]*catalog.InventoryItem, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	result := make([]*catalog.InventoryItem, 0, len(r.order))
	for _, id := range r.order {
		cp := *r.items[id]
		result = append(result, &cp)
	}
	return result, nil
}

func (r *InventoryRepo) AdjustStock(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (*catalog.InventoryItem, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	item, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", catalog.ErrInventoryItemNotFound, id)
	}

	item.AdjustStock(delta)

	cp := *item
	return &cp, nil
}
