package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrMenuItemNotFound      = errors.New("menu item not found")
	ErrInventoryItemNotFound = errors.New("inventory item not found")
)

type MenuRepo interface {
	Create(ctx context.Context, item *MenuItem) error
	Get(ctx context.Context, id uuid.UUID) (*MenuItem, error)
	List(ctx context.Context) ([]*MenuItem, error)
	ListByCategory(ctx context.Context, category string) ([]*MenuItem, error)
	Save(ctx context.Context, item *MenuItem) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type InventoryRepo interface {
	Create(ctx context.Context, item *InventoryItem) error
	Get(ctx context.Context, id uuid.UUID) (*InventoryItem, error)
	List(ctx context.Context) ([]*InventoryItem, error)
	// AdjustStock applies delta atomically and returns the updated item.
	AdjustStock(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (*InventoryItem, error)
}
