package order

import (
	"fmt"

	"github.com/appetiteclub/pos/internal/catalog"
	"github.com/google/uuid"
)

// addLine merges by menu item id: a present item grows by quantity,
// anything else is appended with the catalog name and price.
func addLine(items []*OrderItem, menuItem *catalog.MenuItem, quantity int, modifiers []string) ([]*OrderItem, *OrderItem) {
	if quantity <= 0 {
		quantity = 1
	}

	for _, item := range items {
		if item.MenuItemID == menuItem.ID {
			item.Quantity += quantity
			return items, item
		}
	}

	item := NewOrderItem()
	item.MenuItemID = menuItem.ID
	item.Name = menuItem.Name
	item.Price = menuItem.Price
	item.Quantity = quantity
	if len(modifiers) > 0 {
		item.Modifiers = append([]string{}, modifiers...)
	}

	return append(items, item), item
}

// adjustLine applies delta to one line and drops it once it reaches zero.
// The returned item is nil when the line was removed.
func adjustLine(items []*OrderItem, itemID uuid.UUID, delta int) ([]*OrderItem, *OrderItem, error) {
	for i, item := range items {
		if item.ID != itemID {
			continue
		}

		item.Quantity += delta
		if item.Quantity <= 0 {
			return append(items[:i:i], items[i+1:]...), nil, nil
		}
		return items, item, nil
	}

	return items, nil, fmt.Errorf("%w: %s", ErrOrderItemNotFound, itemID)
}
