package insight

import (
	"context"

	"github.com/appetiteclub/pos/internal/catalog"
	"github.com/appetiteclub/pos/internal/order"
)

// MockSummarizer is a mock implementation of Summarizer for testing
type MockSummarizer struct {
	SummarizeFunc     func(ctx context.Context, orders []*order.Order, inventory []*catalog.InventoryItem) (string, error)
	SummarizeMenuFunc func(ctx context.Context, menu []*catalog.MenuItem) (string, error)
}

func (m *MockSummarizer) Summarize(ctx context.Context, orders []*order.Order, inventory []*catalog.InventoryItem) (string, error) {
	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, orders, inventory)
	}
	return "", nil
}

func (m *MockSummarizer) SummarizeMenu(ctx context.Context, menu []*catalog.MenuItem) (string, error) {
	if m.SummarizeMenuFunc != nil {
		return m.SummarizeMenuFunc(ctx, menu)
	}
	return "", nil
}

type MockOrderLister struct {
	orders []*order.Order
}

func (m *MockOrderLister) List(ctx context.Context, status string) ([]*order.Order, error) {
	return m.orders, nil
}

type MockInventoryLister struct {
	items []*catalog.InventoryItem
	err   error
}

func (m *MockInventoryLister) List(ctx context.Context) ([]*catalog.InventoryItem, error) {
	return m.items, m.err
}

type MockMenuLister struct {
	items []*catalog.MenuItem
}

func (m *MockMenuLister) List(ctx context.Context) ([]*catalog.MenuItem, error) {
	return m.items, nil
}
