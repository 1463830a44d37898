package insight

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/appetiteclub/pos/internal/catalog"
	"github.com/appetiteclub/pos/internal/order"
	"github.com/aquamarinepk/aqm"
)

// Panel texts. Placeholders stay until a call resolves.
const (
	OperationsPlaceholder = "Operational insights unavailable."
	MenuPlaceholder       = "Menu suggestions unavailable."

	OperationsFallback = "Could not generate insights at this time."
	MenuFallback       = "Menu analysis unavailable."

	OperationsEmpty = "No insights available."
	MenuEmpty       = "Menu analysis failed."
)

type Panel struct {
	Text      string     `json:"text"`
	Pending   bool       `json:"pending"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type Panels struct {
	Operations Panel `json:"operations"`
	Menu       Panel `json:"menu"`
}

type OrderLister interface {
	List(ctx context.Context, status string) ([]*order.Order, error)
}

type InventoryLister interface {
	List(ctx context.Context) ([]*catalog.InventoryItem, error)
}

type MenuLister interface {
	List(ctx context.Context) ([]*catalog.MenuItem, error)
}

type ServiceDeps struct {
	Summarizer Summarizer
	Orders     OrderLister
	Inventory  InventoryLister
	Menu       MenuLister
}

// Service keeps the two advisory panels of the admin dashboard. Nothing in
// the order, floor or catalog paths waits on it.
type Service struct {
	summarizer Summarizer
	orders     OrderLister
	inventory  InventoryLister
	menu       MenuLister
	logger     aqm.Logger

	mu     sync.RWMutex
	panels Panels
}

func NewService(deps ServiceDeps, logger aqm.Logger) *Service {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	summarizer := deps.Summarizer
	if summarizer == nil {
		summarizer = Unavailable{}
	}
	return &Service{
		summarizer: summarizer,
		orders:     deps.Orders,
		inventory:  deps.Inventory,
		menu:       deps.Menu,
		logger:     logger,
		panels: Panels{
			Operations: Panel{Text: OperationsPlaceholder},
			Menu:       Panel{Text: MenuPlaceholder},
		},
	}
}

func (s *Service) Panels() Panels {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.panels
}

// Refresh starts both panel calls and returns at once. The channel is closed
// when both have settled. A slower, older call may still overwrite a panel.
func (s *Service) Refresh() <-chan struct{} {
	done := make(chan struct{})

	s.mu.Lock()
	s.panels.Operations.Pending = true
	s.panels.Menu.Pending = true
	s.mu.Unlock()

	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.refreshOperations(ctx)
	}()
	go func() {
		defer wg.Done()
		s.refreshMenu(ctx)
	}()
	go func() {
		wg.Wait()
		close(done)
	}()

	return done
}

func (s *Service) refreshOperations(ctx context.Context) {
	text, err := recovered(func() (string, error) { return s.summarizeOperations(ctx) })
	s.setPanel(&s.panels.Operations, resolve(text, err, OperationsFallback, OperationsEmpty))
	if err != nil {
		s.logger.Info("operations insight failed", "error", err)
	}
}

func (s *Service) refreshMenu(ctx context.Context) {
	text, err := recovered(func() (string, error) { return s.summarizeMenu(ctx) })
	s.setPanel(&s.panels.Menu, resolve(text, err, MenuFallback, MenuEmpty))
	if err != nil {
		s.logger.Info("menu insight failed", "error", err)
	}
}

// recovered runs call and reports a panic as an error.
func recovered(call func() (string, error)) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("summarizer panic: %v", r)
		}
	}()
	return call()
}

func (s *Service) summarizeOperations(ctx context.Context) (string, error) {
	var orders []*order.Order
	var inventory []*catalog.InventoryItem
	var err error

	if s.orders != nil {
		if orders, err = s.orders.List(ctx, ""); err != nil {
			return "", err
		}
	}
	if s.inventory != nil {
		if inventory, err = s.inventory.List(ctx); err != nil {
			return "", err
		}
	}

	return s.summarizer.Summarize(ctx, orders, inventory)
}

func (s *Service) summarizeMenu(ctx context.Context) (string, error) {
	var menu []*catalog.MenuItem
	var err error

	if s.menu != nil {
		if menu, err = s.menu.List(ctx); err != nil {
			return "", err
		}
	}

	return s.summarizer.SummarizeMenu(ctx, menu)
}

func (s *Service) setPanel(panel *Panel, text string) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	panel.Text = text
	panel.Pending = false
	panel.UpdatedAt = &now
}

func resolve(text string, err error, fallback, empty string) string {
	if err != nil {
		return fallback
	}
	if strings.TrimSpace(text) == "" {
		return empty
	}
	return text
}
