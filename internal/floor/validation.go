package floor

import (
	"context"

	"github.com/appetiteclub/pos/pkg/enums/tablestatus"
)

func ValidateTableCreate(ctx context.Context, req TableCreateRequest) []string {
	var errors []string

	if req.Capacity < 0 {
		errors = append(errors, "capacity cannot be negative")
	}

	return errors
}

func ValidateTableStatus(ctx context.Context, req TableStatusRequest) []string {
	var errors []string

	if tablestatus.ByName(req.Status) == nil {
		errors = append(errors, "invalid status")
	}

	return errors
}

func ValidateTablePosition(ctx context.Context, req TablePositionRequest) []string {
	var errors []string

	if req.X < 0 || req.Y < 0 {
		errors = append(errors, "position cannot be negative")
	}

	return errors
}
