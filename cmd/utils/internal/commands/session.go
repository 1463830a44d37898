package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/appetiteclub/pos/internal/floor"
	"github.com/appetiteclub/pos/internal/memory"
	"github.com/appetiteclub/pos/internal/order"
	"github.com/appetiteclub/pos/internal/seeding"
	"github.com/appetiteclub/pos/pkg"
	"github.com/aquamarinepk/aqm"
)

const defaultSeedFile = "seed.yaml"

// session is an offline POS wired on memory repos and a local bus.
type session struct {
	menu      *memory.MenuRepo
	inventory *memory.InventoryRepo
	tables    *memory.TableRepo
	orders    *memory.OrderRepo
	bus       *pkg.LocalBus
	floor     *floor.Floor
	engine    *order.Engine
}

func newSession(logger aqm.Logger) *session {
	s := &session{
		menu:      memory.NewMenuRepo(),
		inventory: memory.NewInventoryRepo(),
		tables:    memory.NewTableRepo(),
		orders:    memory.NewOrderRepo(),
		bus:       pkg.NewLocalBus(logger),
	}
	s.floor = floor.NewFloor(s.tables, s.bus, logger)
	s.engine = order.NewEngine(order.EngineDeps{
		OrderRepo: s.orders,
		Tables:    s.floor,
		Menu:      s.menu,
		Publisher: s.bus,
	}, logger)
	return s
}

func (s *session) repos() seeding.Repos {
	return seeding.Repos{
		Tables:    s.tables,
		Menu:      s.menu,
		Inventory: s.inventory,
	}
}

// seed loads the seed document named by seed.file and applies it.
func (s *session) seed(ctx context.Context, config *aqm.Config, logger aqm.Logger) (*seeding.Document, error) {
	path := config.GetStringOrDef("seed.file", defaultSeedFile)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file %s: %w", path, err)
	}

	doc, err := seeding.Load(data)
	if err != nil {
		return nil, err
	}

	if err := seeding.Apply(ctx, doc, s.repos(), logger); err != nil {
		return nil, fmt.Errorf("apply seed file %s: %w", path, err)
	}
	return doc, nil
}
