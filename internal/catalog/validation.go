package catalog

import (
	"context"
	"strings"
)

func ValidateMenuItem(ctx context.Context, req MenuItemRequest) []string {
	var errors []string

	if strings.TrimSpace(req.Name) == "" {
		errors = append(errors, "name is required")
	}

	if strings.TrimSpace(req.Category) == "" {
		errors = append(errors, "category is required")
	}

	if req.Price.IsNegative() {
		errors = append(errors, "price cannot be negative")
	}

	if req.InStock < 0 {
		errors = append(errors, "in_stock cannot be negative")
	}

	return errors
}

func ValidateInventoryItem(ctx context.Context, req InventoryItemCreateRequest) []string {
	var errors []string

	if strings.TrimSpace(req.Name) == "" {
		errors = append(errors, "name is required")
	}

	if strings.TrimSpace(req.Unit) == "" {
		errors = append(errors, "unit is required")
	}

	if req.CurrentStock.IsNegative() {
		errors = append(errors, "current_stock cannot be negative")
	}

	if req.MinThreshold.IsNegative() {
		errors = append(errors, "min_threshold cannot be negative")
	}

	return errors
}
