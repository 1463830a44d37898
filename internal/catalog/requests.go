package catalog

import "github.com/shopspring/decimal"

type MenuItemRequest struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	InStock     int             `json:"in_stock"`
}

type InventoryItemCreateRequest struct {
	Name         string          `json:"name"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	Unit         string          `json:"unit"`
	MinThreshold decimal.Decimal `json:"min_threshold"`
}

type StockAdjustRequest struct {
	Delta decimal.Decimal `json:"delta"`
}
