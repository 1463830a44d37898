package commands

import (
	"context"
	"fmt"

	"github.com/aquamarinepk/aqm"
)

// ValidateSeed applies the seed file to an empty session and checks that
// every row landed.
func ValidateSeed(ctx context.Context, config *aqm.Config, logger aqm.Logger) error {
	s := newSession(logger)
	defer s.bus.Close()

	doc, err := s.seed(ctx, config, logger)
	if err != nil {
		return err
	}

	tables, err := s.tables.List(ctx)
	if err != nil {
		return fmt.Errorf("list tables: %w", err)
	}
	menu, err := s.menu.List(ctx)
	if err != nil {
		return fmt.Errorf("list menu: %w", err)
	}
	inventory, err := s.inventory.List(ctx)
	if err != nil {
		return fmt.Errorf("list inventory: %w", err)
	}

	if len(menu) != len(doc.Menu) {
		return fmt.Errorf("menu has %d items, seed file lists %d (duplicate names?)", len(menu), len(doc.Menu))
	}
	if len(inventory) != len(doc.Inventory) {
		return fmt.Errorf("inventory has %d rows, seed file lists %d (duplicate names?)", len(inventory), len(doc.Inventory))
	}
	if len(tables) != len(doc.Tables) {
		logger.Info("some seed tables were skipped", "seeded", len(tables), "listed", len(doc.Tables))
	}

	logger.Info("seed file is valid", "tables", len(tables), "menu_items", len(menu), "inventory_rows", len(inventory))
	return nil
}
