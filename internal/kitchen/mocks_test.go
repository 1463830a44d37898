package kitchen

import (
	"context"
	"fmt"
	"sync"

	"github.com/appetiteclub/pos/internal/floor"
	"github.com/appetiteclub/pos/internal/order"
	"github.com/aquamarinepk/aqm/events"
	"github.com/google/uuid"
)

// MockOrderSource is a mock implementation of OrderSource for testing
type MockOrderSource struct {
	orders            []*order.Order
	ListFunc          func(ctx context.Context, status string) ([]*order.Order, error)
	MarkItemReadyFunc func(ctx context.Context, orderID, itemID uuid.UUID) (*order.Order, error)
}

func (m *MockOrderSource) List(ctx context.Context, status string) ([]*order.Order, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, status)
	}
	var result []*order.Order
	for _, o := range m.orders {
		if status == "" || o.Status == status {
			result = append(result, o)
		}
	}
	return result, nil
}

func (m *MockOrderSource) MarkItemReady(ctx context.Context, orderID, itemID uuid.UUID) (*order.Order, error) {
	if m.MarkItemReadyFunc != nil {
		return m.MarkItemReadyFunc(ctx, orderID, itemID)
	}
	for _, o := range m.orders {
		if o.ID != orderID {
			continue
		}
		item := o.FindItem(itemID)
		if item == nil {
			return nil, fmt.Errorf("%w: %s", order.ErrOrderItemNotFound, itemID)
		}
		item.MarkAsReady()
		return o, nil
	}
	return nil, fmt.Errorf("%w: %s", order.ErrOrderNotFound, orderID)
}

// MockTableSource is a mock implementation of TableSource for testing
type MockTableSource struct {
	tables []*floor.Table
}

func (m *MockTableSource) List(ctx context.Context) ([]*floor.Table, error) {
	return m.tables, nil
}

// MockSubscriber is a mock implementation of events.Subscriber for testing
type MockSubscriber struct {
	mu       sync.Mutex
	handlers map[string]events.HandlerFunc
}

func NewMockSubscriber() *MockSubscriber {
	return &MockSubscriber{handlers: make(map[string]events.HandlerFunc)}
}

func (m *MockSubscriber) Subscribe(ctx context.Context, topic string, handler events.HandlerFunc) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[topic] = handler
	return nil
}

func (m *MockSubscriber) deliver(ctx context.Context, topic string, msg []byte) error {
	m.mu.Lock()
	handler := m.handlers[topic]
	m.mu.Unlock()
	if handler == nil {
		return fmt.Errorf("no handler for %s", topic)
	}
	return handler(ctx, msg)
}
