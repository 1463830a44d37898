package seeding

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/appetiteclub/pos/internal/catalog"
	"github.com/appetiteclub/pos/internal/floor"
	"github.com/aquamarinepk/aqm"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

type Document struct {
	Tables    []TableSeed     `yaml:"tables"`
	Menu      []MenuItemSeed  `yaml:"menu"`
	Inventory []InventorySeed `yaml:"inventory"`
}

type TableSeed struct {
	Number   int `yaml:"number"`
	Capacity int `yaml:"capacity"`
}

type MenuItemSeed struct {
	Name        string `yaml:"name"`
	Price       string `yaml:"price"`
	Category    string `yaml:"category"`
	Description string `yaml:"description"`
	Image       string `yaml:"image"`
	InStock     int    `yaml:"in_stock"`
}

type InventorySeed struct {
	Name         string `yaml:"name"`
	CurrentStock string `yaml:"current_stock"`
	Unit         string `yaml:"unit"`
	MinThreshold string `yaml:"min_threshold"`
}

type Repos struct {
	Tables    floor.TableRepo
	Menu      catalog.MenuRepo
	Inventory catalog.InventoryRepo
}

func Load(data []byte) (*Document, error) {
	if len(data) == 0 {
		return nil, errors.New("seed document is empty")
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode seed document: %w", err)
	}

	return &doc, nil
}

// Apply creates whatever the document lists that is not there yet. Tables
// match by number, menu and inventory rows by name.
func Apply(ctx context.Context, doc *Document, repos Repos, logger aqm.Logger) error {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}

	if err := applyTables(ctx, doc.Tables, repos.Tables, logger); err != nil {
		return err
	}
	if err := applyMenu(ctx, doc.Menu, repos.Menu, logger); err != nil {
		return err
	}
	return applyInventory(ctx, doc.Inventory, repos.Inventory, logger)
}

func applyTables(ctx context.Context, seeds []TableSeed, repo floor.TableRepo, logger aqm.Logger) error {
	existing, err := repo.List(ctx)
	if err != nil {
		return fmt.Errorf("list existing tables: %w", err)
	}

	numbers := make(map[int]bool, len(existing))
	for _, t := range existing {
		numbers[t.Number] = true
	}

	for _, s := range seeds {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.Number <= 0 {
			logger.Info("skipping seed table with invalid number", "number", s.Number)
			continue
		}
		if numbers[s.Number] {
			continue
		}

		table := floor.NewTable(s.Number, s.Capacity)
		table.BeforeCreate()
		if err := repo.Create(ctx, table); err != nil {
			return fmt.Errorf("create seed table %d: %w", s.Number, err)
		}
		numbers[s.Number] = true
	}

	logger.Info("table seeds applied", "count", len(seeds))
	return nil
}

func applyMenu(ctx context.Context, seeds []MenuItemSeed, repo catalog.MenuRepo, logger aqm.Logger) error {
	existing, err := repo.List(ctx)
	if err != nil {
		return fmt.Errorf("list existing menu items: %w", err)
	}

	names := make(map[string]bool, len(existing))
	for _, item := range existing {
		names[strings.ToLower(item.Name)] = true
	}

	for _, s := range seeds {
		if err := ctx.Err(); err != nil {
			return err
		}
		if names[strings.ToLower(s.Name)] {
			continue
		}

		price, err := decimal.NewFromString(s.Price)
		if err != nil {
			return fmt.Errorf("seed menu item %q price: %w", s.Name, err)
		}

		item := catalog.NewMenuItem()
		item.Apply(catalog.MenuItemRequest{
			Name:        s.Name,
			Price:       price,
			Category:    s.Category,
			Description: s.Description,
			Image:       s.Image,
			InStock:     s.InStock,
		})
		item.BeforeCreate()
		if err := repo.Create(ctx, item); err != nil {
			return fmt.Errorf("create seed menu item %q: %w", s.Name, err)
		}
		names[strings.ToLower(s.Name)] = true
	}

	logger.Info("menu seeds applied", "count", len(seeds))
	return nil
}

func applyInventory(ctx context.Context, seeds []InventorySeed, repo catalog.InventoryRepo, logger aqm.Logger) error {
	existing, err := repo.List(ctx)
	if err != nil {
		return fmt.Errorf("list existing inventory: %w", err)
	}

	names := make(map[string]bool, len(existing))
	for _, item := range existing {
		names[strings.ToLower(item.Name)] = true
	}

	for _, s := range seeds {
		if err := ctx.Err(); err != nil {
			return err
		}
		if names[strings.ToLower(s.Name)] {
			continue
		}

		stock, err := decimal.NewFromString(s.CurrentStock)
		if err != nil {
			return fmt.Errorf("seed inventory %q stock: %w", s.Name, err)
		}
		threshold, err := decimal.NewFromString(s.MinThreshold)
		if err != nil {
			return fmt.Errorf("seed inventory %q threshold: %w", s.Name, err)
		}

		item := catalog.NewInventoryItem()
		item.Name = s.Name
		item.CurrentStock = stock
		item.Unit = s.Unit
		item.MinThreshold = threshold
		item.BeforeCreate()
		if err := repo.Create(ctx, item); err != nil {
			return fmt.Errorf("create seed inventory %q: %w", s.Name, err)
		}
		names[strings.ToLower(s.Name)] = true
	}

	logger.Info("inventory seeds applied", "count", len(seeds))
	return nil
}

// SeedingFunc returns an aqm lifecycle OnStart-compatible function. Seeds
// are applied before the HTTP server starts taking requests.
func SeedingFunc(seedCtx context.Context, repos Repos, data []byte, logger aqm.Logger) func(ctx context.Context) error {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}

	return func(ctx context.Context) error {
		doc, err := Load(data)
		if err != nil {
			return err
		}

		logger.Info("applying seeds")
		if err := Apply(seedCtx, doc, repos, logger); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("apply seeds: %w", err)
		}
		return nil
	}
}

func StopFunc(cancel context.CancelFunc) func(context.Context) error {
	return func(context.Context) error {
		if cancel != nil {
			cancel()
		}
		return nil
	}
}
