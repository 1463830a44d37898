package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/appetiteclub/pos/internal/floor"
	"github.com/google/uuid"
)

type TableRepo struct {
	mutex  sync.RWMutex
	tables map[uuid.UUID]*floor.Table
}

func NewTableRepo() *TableRepo {
	return &TableRepo{
		tables: make(map[uuid.UUID]*floor.Table),
	}
}

func (r *TableRepo) Create(ctx context.Context, table *floor.Table) error {
	if table == nil {
		return fmt.Errorf("table is nil")
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.tables[table.ID]; exists {
		return fmt.Errorf("table %s already exists", table.ID)
	}
	for _, existing := range r.tables {
		if existing.Number == table.Number {
			return fmt.Errorf("table number %d already in use", table.Number)
		}
	}

	r.tables[table.ID] = copyTable(table)
	return nil
}

func (r *TableRepo) Get(ctx context.Context, id uuid.UUID) (*floor.Table, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	table, ok := r.tables[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", floor.ErrTableNotFound, id)
	}
	return copyTable(table), nil
}

func (r *TableRepo) List(ctx context.Context) ([]*floor.Table, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	result := make([]*floor.Table, 0, len(r.tables))
	for _, table := range r.tables {
		result = append(result, copyTable(table))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Number < result[j].Number
	})
	return result, nil
}

func (r *TableRepo) Save(ctx context.Context, table *floor.Table) error {
	if table == nil {
		return fmt.Errorf("table is nil")
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.tables[table.ID]; !ok {
		return fmt.Errorf("%w: %s", floor.ErrTableNotFound, table.ID)
	}

	r.tables[table.ID] = copyTable(table)
	return nil
}

func (r *TableRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.tables[id]; !ok {
		return fmt.Errorf("%w: %s", floor.ErrTableNotFound, id)
	}

	delete(r.tables, id)
	return nil
}

func copyTable(t *floor.Table) *floor.Table {
	cp := *t
	if t.CurrentOrderID != nil {
		orderID := *t.CurrentOrderID
		cp.CurrentOrderID = &orderID
	}
	return &cp
}
