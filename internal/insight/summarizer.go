package insight

import (
	"context"
	"errors"

	"github.com/appetiteclub/pos/internal/catalog"
	"github.com/appetiteclub/pos/internal/order"
)

var ErrSummarizerUnavailable = errors.New("summarizer unavailable")

// Summarizer turns restaurant snapshots into advisory text. Calls are slow
// and may fail.
type Summarizer interface {
	Summarize(ctx context.Context, orders []*order.Order, inventory []*catalog.InventoryItem) (string, error)
	SummarizeMenu(ctx context.Context, menu []*catalog.MenuItem) (string, error)
}

// Unavailable is used when no text generation backend is configured.
type Unavailable struct{}

func (Unavailable) Summarize(ctx context.Context, orders []*order.Order, inventory []*catalog.InventoryItem) (string, error) {
	return "", ErrSummarizerUnavailable
}

func (Unavailable) SummarizeMenu(ctx context.Context, menu []*catalog.MenuItem) (string, error) {
	return "", ErrSummarizerUnavailable
}
