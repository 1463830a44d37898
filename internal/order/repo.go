package order

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderItemNotFound = errors.New("order item not found")
	ErrOrderNotOpen      = errors.New("order is not open")
	ErrInvalidDraft      = errors.New("invalid draft")
	ErrTableHasOpenOrder = errors.New("table already has an open order")
)

type OrderRepo interface {
	Create(ctx context.Context, order *Order) error
	Get(ctx context.Context, id uuid.UUID) (*Order, error)
	// List returns orders in creation order.
	List(ctx context.Context) ([]*Order, error)
	ListByStatus(ctx context.Context, status string) ([]*Order, error)
	Save(ctx context.Context, order *Order) error
}
