package admin

import (
	"fmt"
	"io"
	"time"

	"github.com/appetiteclub/pos/internal/catalog"
	"github.com/appetiteclub/pos/internal/order"
	"github.com/xuri/excelize/v2"
)

const (
	OrdersSheet    = "Orders"
	InventorySheet = "Inventory"
)

var (
	orderHeaders     = []interface{}{"Order ID", "Table ID", "Type", "Status", "Items", "Subtotal", "Tax", "Total", "Created At"}
	inventoryHeaders = []interface{}{"Name", "Current Stock", "Unit", "Min Threshold", "Low"}
)

// WriteReport writes an xlsx workbook with one sheet for orders and one for
// inventory.
func WriteReport(w io.Writer, orders []*order.Order, inventory []*catalog.InventoryItem) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", OrdersSheet); err != nil {
		return fmt.Errorf("rename orders sheet: %w", err)
	}
	if _, err := f.NewSheet(InventorySheet); err != nil {
		return fmt.Errorf("create inventory sheet: %w", err)
	}

	if err := writeRow(f, OrdersSheet, 1, orderHeaders); err != nil {
		return err
	}
	for i, o := range orders {
		tableID := ""
		if o.HasTable() {
			tableID = o.TableID.String()
		}
		row := []interface{}{
			o.ID.String(),
			tableID,
			o.Type,
			o.Status,
			o.ItemCount(),
			o.Subtotal.InexactFloat64(),
			o.Tax.InexactFloat64(),
			o.Total.InexactFloat64(),
			o.CreatedAt.Format(time.RFC3339),
		}
		if err := writeRow(f, OrdersSheet, i+2, row); err != nil {
			return err
		}
	}

	if err := writeRow(f, InventorySheet, 1, inventoryHeaders); err != nil {
		return err
	}
	for i, item := range inventory {
		row := []interface{}{
			item.Name,
			item.CurrentStock.InexactFloat64(),
			item.Unit,
			item.MinThreshold.InexactFloat64(),
			item.IsLow(),
		}
		if err := writeRow(f, InventorySheet, i+2, row); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}
