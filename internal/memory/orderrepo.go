package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/appetiteclub/pos/internal/order"
	"github.com/google/uuid"
)

type OrderRepo struct {
	mutex  sync.RWMutex
	order  []uuid.UUID
	orders map[uuid.UUID]*order.Order
}

func NewOrderRepo() *OrderRepo {
	return &OrderRepo{
		orders: make(map[uuid.UUID]*order.Order),
	}
}

func (r *OrderRepo) Create(ctx context.Context, o *order.Order) error {
	if o == nil {
		return fmt.Errorf("order is nil")
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.orders[o.ID]; exists {
		return fmt.Errorf("order %s already exists", o.ID)
	}

	r.orders[o.ID] = o.Clone()
	r.order = append(r.order, o.ID)
	return nil
}

func (r *OrderRepo) Get(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", order.ErrOrderNotFound, id)
	}
	return o.Clone(), nil
}

func (r *OrderRepo) List(ctx context.Context) ([]*order.Order, error) {
	return r.filter(""), nil
}

func (r *OrderRepo) ListByStatus(ctx context.Context, status string) ([]*order.Order, error) {
	return r.filter(status), nil
}

func (r *OrderRepo) Save(ctx context.Context, o *order.Order) error {
	if o == nil {
		return fmt.Errorf("order is nil")
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.orders[o.ID]; !ok {
		return fmt.Errorf("%w: %s", order.ErrOrderNotFound, o.ID)
	}

	r.orders[o.ID] = o.Clone()
	return nil
}

func (r *OrderRepo) filter(status string) []*order.Order {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	result := make([]*order.Order, 0, len(r.order))
	for _, id := range r.order {
		o := r.orders[id]
		if status == "" || o.Status == status {
			result = append(result, o.Clone())
		}
	}
	return result
}
