package floor

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrTableNotFound         = errors.New("table not found")
	ErrTableNotDirty         = errors.New("table is not dirty")
	ErrInvalidStatus         = errors.New("invalid table status")
	ErrTableHeldByOtherOrder = errors.New("table is held by another order")
)

type TableRepo interface {
	Create(ctx context.Context, table *Table) error
	Get(ctx context.Context, id uuid.UUID) (*Table, error)
	// List returns tables sorted by number.
	List(ctx context.Context) ([]*Table, error)
	Save(ctx context.Context, table *Table) error
	Delete(ctx context.Context, id uuid.UUID) error
}
