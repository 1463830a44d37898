package order

import (
	"context"

	"github.com/appetiteclub/pos/pkg/enums/itemstatus"
	"github.com/appetiteclub/pos/pkg/enums/orderstatus"
	"github.com/appetiteclub/pos/pkg/enums/ordertype"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func ValidateDraftRequest(ctx context.Context, req DraftRequest) []string {
	var errors []string

	if req.Type != "" && ordertype.ByName(req.Type) == nil {
		errors = append(errors, "invalid order type")
	}

	if len(req.Items) == 0 {
		errors = append(errors, "order must have at least one item")
	}

	for _, item := range req.Items {
		if item.MenuItemID == uuid.Nil {
			errors = append(errors, "menu_item_id is required")
		}
		if item.Quantity < 0 {
			errors = append(errors, "quantity cannot be negative")
		}
	}

	return errors
}

func ValidateOrderUpdate(ctx context.Context, req OrderUpdateRequest) []string {
	var errors []string

	if ordertype.ByName(req.Type) == nil {
		errors = append(errors, "invalid order type")
	}

	if orderstatus.ByName(req.Status) == nil {
		errors = append(errors, "invalid order status")
	}

	for _, item := range req.Items {
		if item.Name == "" {
			errors = append(errors, "item name is required")
		}
		if item.Quantity <= 0 {
			errors = append(errors, "item quantity must be positive")
		}
		if item.Price.LessThan(decimal.Zero) {
			errors = append(errors, "item price cannot be negative")
		}
		if item.Status != "" && itemstatus.ByName(item.Status) == nil {
			errors = append(errors, "invalid item status")
		}
	}

	return errors
}

func ValidateAddItem(ctx context.Context, req AddItemRequest) []string {
	var errors []string

	if req.MenuItemID == uuid.Nil {
		errors = append(errors, "menu_item_id is required")
	}

	return errors
}

func ValidateQuantity(ctx context.Context, req QuantityRequest) []string {
	var errors []string

	if req.Delta == 0 {
		errors = append(errors, "delta cannot be zero")
	}

	return errors
}
