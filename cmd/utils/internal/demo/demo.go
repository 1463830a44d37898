package demo

import (
	"context"
	"fmt"
	"strings"

	"github.com/appetiteclub/pos/internal/catalog"
	"github.com/appetiteclub/pos/internal/floor"
	"github.com/appetiteclub/pos/internal/order"
	"github.com/aquamarinepk/aqm"
	"github.com/google/uuid"
)

// Line is one menu item of a demo order, referenced by name.
type Line struct {
	Dish      string
	Quantity  int
	Modifiers []string
}

// Scenario describes one demo order. Table 0 means takeout.
type Scenario struct {
	Name         string
	Table        int
	CustomerName string
	Lines        []Line
	ReadyLines   int
	Pay          bool
	Clear        bool
}

// Scenarios mirror a typical early evening: a paid and bussed table, a
// paid table still dirty, a busy open table and a takeout.
var Scenarios = []Scenario{
	{
		Name:  "couple at table 1",
		Table: 1,
		Lines: []Line{
			{Dish: "Wagyu Burger", Quantity: 1, Modifiers: []string{"medium rare"}},
			{Dish: "Truffle Fries", Quantity: 2},
		},
		Pay:   true,
		Clear: true,
	},
	{
		Name:  "family at table 5",
		Table: 5,
		Lines: []Line{
			{Dish: "Margarita Pizza", Quantity: 2},
			{Dish: "Caesar Salad", Quantity: 1},
			{Dish: "Chocolate Lava Cake", Quantity: 3},
		},
		Pay: true,
	},
	{
		Name:  "after work drinks at table 7",
		Table: 7,
		Lines: []Line{
			{Dish: "Craft Beer", Quantity: 4},
			{Dish: "Truffle Fries", Quantity: 1},
		},
		ReadyLines: 1,
	},
	{
		Name:         "takeout pickup",
		CustomerName: "Rivera",
		Lines: []Line{
			{Dish: "Caesar Salad", Quantity: 2, Modifiers: []string{"dressing on the side"}},
		},
	},
}

// Runner plays scenarios through the order engine and the floor.
type Runner struct {
	engine *order.Engine
	floor  *floor.Floor
	menu   catalog.MenuRepo
	logger aqm.Logger
}

func NewRunner(engine *order.Engine, floorPlan *floor.Floor, menu catalog.MenuRepo, logger aqm.Logger) *Runner {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	return &Runner{
		engine: engine,
		floor:  floorPlan,
		menu:   menu,
		logger: logger,
	}
}

// Run plays every scenario and returns the orders in creation order.
func (r *Runner) Run(ctx context.Context, scenarios []Scenario) ([]*order.Order, error) {
	dishes, err := r.dishes(ctx)
	if err != nil {
		return nil, err
	}

	tables, err := r.tables(ctx)
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(scenarios))
	for _, s := range scenarios {
		o, err := r.play(ctx, s, dishes, tables)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
		}
		r.logger.Info("demo order created", "scenario", s.Name, "status", o.Status, "total", o.Total.StringFixed(2))
		orders = append(orders, o)
	}

	return orders, nil
}

func (r *Runner) play(ctx context.Context, s Scenario, dishes map[string]*catalog.MenuItem, tables map[int]uuid.UUID) (*order.Order, error) {
	var tableID *uuid.UUID
	if s.Table > 0 {
		id, ok := tables[s.Table]
		if !ok {
			return nil, fmt.Errorf("table %d not on the floor", s.Table)
		}
		tableID = &id
	}

	draft := order.NewDraft(tableID)
	draft.CustomerName = s.CustomerName
	for _, line := range s.Lines {
		dish, ok := dishes[strings.ToLower(line.Dish)]
		if !ok {
			return nil, fmt.Errorf("dish %q not on the menu", line.Dish)
		}
		draft.AddMenuItem(dish, line.Quantity, line.Modifiers)
	}

	o, err := r.engine.CreateOrder(ctx, draft)
	if err != nil {
		return nil, err
	}

	for i := 0; i < s.ReadyLines && i < len(o.Items); i++ {
		if o, err = r.engine.MarkItemReady(ctx, o.ID, o.Items[i].ID); err != nil {
			return nil, err
		}
	}

	if s.Pay {
		if o, err = r.engine.Pay(ctx, o.ID); err != nil {
			return nil, err
		}
	}

	if s.Clear && tableID != nil {
		if _, err := r.floor.ClearTable(ctx, *tableID); err != nil {
			return nil, err
		}
	}

	return o, nil
}

func (r *Runner) dishes(ctx context.Context) (map[string]*catalog.MenuItem, error) {
	items, err := r.menu.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list menu: %w", err)
	}

	dishes := make(map[string]*catalog.MenuItem, len(items))
	for _, item := range items {
		dishes[strings.ToLower(item.Name)] = item
	}
	return dishes, nil
}

func (r *Runner) tables(ctx context.Context) (map[int]uuid.UUID, error) {
	list, err := r.floor.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}

	tables := make(map[int]uuid.UUID, len(list))
	for _, t := range list {
		tables[t.Number] = t.ID
	}
	return tables, nil
}
