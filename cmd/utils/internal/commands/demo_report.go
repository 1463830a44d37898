package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/appetiteclub/pos/cmd/utils/internal/demo"
	"github.com/appetiteclub/pos/internal/admin"
	"github.com/aquamarinepk/aqm"
)

const defaultReportFile = "pos-demo-report.xlsx"

// DemoReport seeds an offline session, plays the demo scenarios through the
// order engine and writes the admin sales report to report.file.
func DemoReport(ctx context.Context, config *aqm.Config, logger aqm.Logger) error {
	s := newSession(logger)
	defer s.bus.Close()

	if _, err := s.seed(ctx, config, logger); err != nil {
		return err
	}

	runner := demo.NewRunner(s.engine, s.floor, s.menu, logger)
	if _, err := runner.Run(ctx, demo.Scenarios); err != nil {
		return fmt.Errorf("run demo scenarios: %w", err)
	}

	orders, err := s.engine.List(ctx, "")
	if err != nil {
		return fmt.Errorf("list orders: %w", err)
	}
	inventory, err := s.inventory.List(ctx)
	if err != nil {
		return fmt.Errorf("list inventory: %w", err)
	}
	tables, err := s.floor.List(ctx)
	if err != nil {
		return fmt.Errorf("list tables: %w", err)
	}

	stats := admin.ComputeStats(orders, inventory, tables)
	logger.Info("demo session stats",
		"revenue", stats.Revenue.StringFixed(2),
		"orders", stats.OrderCount,
		"average_ticket", stats.AverageTicket.StringFixed(2),
		"open_orders", stats.OpenOrders,
		"low_stock", len(stats.LowStock),
	)

	path := config.GetStringOrDef("report.file", defaultReportFile)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer file.Close()

	if err := admin.WriteReport(file, orders, inventory); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	logger.Info("demo report written", "file", path)
	return nil
}
