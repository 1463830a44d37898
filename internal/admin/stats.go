package admin

import (
	"github.com/appetiteclub/pos/internal/catalog"
	"github.com/appetiteclub/pos/internal/floor"
	"github.com/appetiteclub/pos/internal/order"
	"github.com/appetiteclub/pos/pkg/enums/tablestatus"
	"github.com/shopspring/decimal"
)

type Stats struct {
	Revenue       decimal.Decimal          `json:"revenue"`
	OrderCount    int                      `json:"order_count"`
	AverageTicket decimal.Decimal          `json:"average_ticket"`
	OpenOrders    int                      `json:"open_orders"`
	LowStock      []*catalog.InventoryItem `json:"low_stock"`
	Tables        map[string]int           `json:"tables"`
}

// ComputeStats aggregates the dashboard figures. Revenue counts paid orders
// only while the average ticket divides it by every order on record.
func ComputeStats(orders []*order.Order, inventory []*catalog.InventoryItem, tables []*floor.Table) Stats {
	stats := Stats{
		Revenue:       decimal.Zero,
		AverageTicket: decimal.Zero,
		OrderCount:    len(orders),
		LowStock:      catalog.LowStock(inventory),
		Tables:        make(map[string]int, len(tablestatus.All)),
	}

	for _, o := range orders {
		if o.IsPaid() {
			stats.Revenue = stats.Revenue.Add(o.Total)
		}
		if o.IsOpen() {
			stats.OpenOrders++
		}
	}

	if stats.OrderCount > 0 {
		stats.AverageTicket = stats.Revenue.Div(decimal.NewFromInt(int64(stats.OrderCount))).Round(2)
	}

	for _, s := range tablestatus.All {
		stats.Tables[s.Code()] = 0
	}
	for _, t := range tables {
		stats.Tables[t.Status]++
	}

	return stats
}
