package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/appetiteclub/pos/internal/catalog"
	"github.com/google/uuid"
)

type MenuRepo struct {
	mutex sync.RWMutex
	order []uuid.UUID
	items map[uuid.UUID]*catalog.MenuItem
}

func NewMenuRepo() *MenuRepo {
	return &MenuRepo{
		items: make(map[uuid.UUID]*catalog.MenuItem),
	}
}

func (r *MenuRepo) Create(ctx context.Context, item *catalog.MenuItem) error {
	if item == nil {
		return fmt.Errorf("menu item is nil")
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.items[item.ID]; exists {
		return fmt.Errorf("menu item %s already exists", item.ID)
	}

	cp := *item
	r.items[item.ID] = &cp
	r.order = append(r.order, item.ID)
	return nil
}

func (r *MenuRepo) Get(ctx context.Context, id uuid.UUID) (*catalog.MenuItem, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", catalog.ErrMenuItemNotFound, id)
	}

	cp := *item
	return &cp, nil
}

func (r *MenuRepo) List(ctx context.Context) ([]*catalog.MenuItem, error) {
	return r.filter(func(*catalog.MenuItem) bool { return true }), nil
}

// ListByCategory matches the category case-insensitively.
func (r *MenuRepo) ListByCategory(ctx context.Context, category string) ([]*catalog.MenuItem, error) {
	return r.filter(func(item *catalog.MenuItem) bool {
		return strings.EqualFold(item.Category, category)
	}), nil
}

func (r *MenuRepo) Save(ctx context.Context, item *catalog.MenuItem) error {
	if item == nil {
		return fmt.Errorf("menu item is nil")
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		return fmt.Errorf("%w: %s", catalog.ErrMenuItemNotFound, item.ID)
	}

	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *MenuRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.items[id]; !ok {
		return fmt.Errorf("%w: %s", catalog.ErrMenuItemNotFound, id)
	}

	delete(r.items, id)
	r.order = removeID(r.order, id)
	return nil
}

func (r *MenuRepo) filter(keep func(*catalog.MenuItem) bool) []*catalog.MenuItem {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	result := make([]*catalog.MenuItem, 0, len(r.order))
	for _, id := range r.order {
		item := r.items[id]
		if keep(item) {
			cp := *item
			result = append(result, &cp)
		}
	}
	return result
}

func removeID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	for i, existing := range ids {
		if existing == id {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return ids
}
