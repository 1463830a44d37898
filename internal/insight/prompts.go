package insight

import (
	"encoding/json"
	"fmt"

	"github.com/appetiteclub/pos/internal/catalog"
	"github.com/appetiteclub/pos/internal/order"
)

// RecentOrders is how many of the latest orders go into the operations prompt.
const RecentOrders = 5

const operationsPrompt = `As a restaurant data analyst, analyze the following current state of the restaurant and provide brief, actionable insights.

Current Orders (last few): %s
Current Inventory Levels: %s

Focus on:
1. Items that might run out soon.
2. Revenue trends (if any).
3. Operational efficiency suggestions.

Format the response as clear bullet points.`

const menuPrompt = `Analyze this restaurant menu: %s.
Suggest 2-3 improvements for menu engineering (pricing adjustments, better item naming, or category balance) to increase profitability.`

func OperationsPrompt(orders []*order.Order, inventory []*catalog.InventoryItem) (string, error) {
	if len(orders) > RecentOrders {
		orders = orders[len(orders)-RecentOrders:]
	}

	ordersJSON, err := json.Marshal(orders)
	if err != nil {
		return "", fmt.Errorf("marshal orders: %w", err)
	}

	inventoryJSON, err := json.Marshal(inventory)
	if err != nil {
		return "", fmt.Errorf("marshal inventory: %w", err)
	}

	return fmt.Sprintf(operationsPrompt, ordersJSON, inventoryJSON), nil
}

func MenuPrompt(menu []*catalog.MenuItem) (string, error) {
	menuJSON, err := json.Marshal(menu)
	if err != nil {
		return "", fmt.Errorf("marshal menu: %w", err)
	}
	return fmt.Sprintf(menuPrompt, menuJSON), nil
}
