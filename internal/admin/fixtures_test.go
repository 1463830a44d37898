package admin

import (
	"context"
	"testing"
	"time"

	"github.com/appetiteclub/pos/internal/catalog"
	"github.com/appetiteclub/pos/internal/floor"
	"github.com/appetiteclub/pos/internal/memory"
	"github.com/appetiteclub/pos/internal/order"
	"github.com/appetiteclub/pos/pkg/enums/orderstatus"
	"github.com/appetiteclub/pos/pkg/enums/tablestatus"
	"github.com/shopspring/decimal"
)

func newOrder(status, price string, quantity int) *order.Order {
	o := order.NewOrder()
	o.Type = "takeout"
	o.Status = status
	o.CreatedAt = time.Date(2024, 5, 1, 19, 30, 0, 0, time.UTC)

	item := order.NewOrderItem()
	item.Name = "Wagyu Burger"
	item.Price = decimal.RequireFromString(price)
	item.Quantity = quantity
	o.Items = append(o.Items, item)
	o.Recalculate()
	return o
}

func newInventoryItem(name, stock, threshold string) *catalog.InventoryItem {
	item := catalog.NewInventoryItem()
	item.Name = name
	item.Unit = "units"
	item.CurrentStock = decimal.RequireFromString(stock)
	item.MinThreshold = decimal.RequireFromString(threshold)
	return item
}

func newTableWithStatus(number int, status string) *floor.Table {
	t := floor.NewTable(number, 4)
	t.Status = status
	return t
}

type fixture struct {
	orders    *memory.OrderRepo
	inventory *memory.InventoryRepo
	tables    *memory.TableRepo
}

// newFixture holds two paid orders (37.95 and 20.35), one open order, one
// low stock row and tables in three statuses.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	f := &fixture{
		orders:    memory.NewOrderRepo(),
		inventory: memory.NewInventoryRepo(),
		tables:    memory.NewTableRepo(),
	}

	paid := orderstatus.Statuses.Paid.Code()
	open := orderstatus.Statuses.Open.Code()
	for _, o := range []*order.Order{
		newOrder(paid, "34.50", 1),
		newOrder(paid, "18.50", 1),
		newOrder(open, "8.00", 2),
	} {
		if err := f.orders.Create(ctx, o); err != nil {
			t.Fatalf("Create() order error = %v", err)
		}
	}

	for _, item := range []*catalog.InventoryItem{
		newInventoryItem("Beef Patties", "50", "20"),
		newInventoryItem("Craft Beer Kegs", "2", "3"),
	} {
		if err := f.inventory.Create(ctx, item); err != nil {
			t.Fatalf("Create() inventory error = %v", err)
		}
	}

	for i, status := range []string{
		tablestatus.Statuses.Available.Code(),
		tablestatus.Statuses.Available.Code(),
		tablestatus.Statuses.Occupied.Code(),
		tablestatus.Statuses.Dirty.Code(),
	} {
		if err := f.tables.Create(ctx, newTableWithStatus(i+1, status)); err != nil {
			t.Fatalf("Create() table error = %v", err)
		}
	}

	return f
}
