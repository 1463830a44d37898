package kitchen

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/appetiteclub/pos/internal/floor"
	"github.com/appetiteclub/pos/internal/order"
	"github.com/appetiteclub/pos/pkg/enums/orderstatus"
	"github.com/google/uuid"
)

// LateAfterMinutes is the wait above which a ticket is flagged late.
const LateAfterMinutes = 15

// Ticket is the kitchen's read model of one open order.
type Ticket struct {
	OrderID      uuid.UUID    `json:"order_id"`
	TableID      *uuid.UUID   `json:"table_id,omitempty"`
	TableNumber  int          `json:"table_number,omitempty"`
	OrderType    string       `json:"order_type"`
	CustomerName string       `json:"customer_name,omitempty"`
	Items        []TicketItem `json:"items"`
	CreatedAt    time.Time    `json:"created_at"`
	WaitMinutes  int          `json:"wait_minutes"`
	Late         bool         `json:"late"`
}

type TicketItem struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	Modifiers []string  `json:"modifiers"`
	Status    string    `json:"status"`
}

// BuildBoard keeps open orders only, oldest first. Table numbers are
// resolved from tables and left empty for removed tables.
func BuildBoard(orders []*order.Order, tables []*floor.Table, now time.Time) []Ticket {
	numbers := make(map[uuid.UUID]int, len(tables))
	for _, t := range tables {
		numbers[t.ID] = t.Number
	}

	board := make([]Ticket, 0, len(orders))
	for _, o := range orders {
		if !o.IsOpen() {
			continue
		}

		ticket := Ticket{
			OrderID:      o.ID,
			OrderType:    o.Type,
			CustomerName: o.CustomerName,
			CreatedAt:    o.CreatedAt,
			WaitMinutes:  WaitMinutes(o.CreatedAt, now),
			Items:        make([]TicketItem, 0, len(o.Items)),
		}
		ticket.Late = ticket.WaitMinutes > LateAfterMinutes
		if o.HasTable() {
			tableID := *o.TableID
			ticket.TableID = &tableID
			ticket.TableNumber = numbers[tableID]
		}
		for _, item := range o.Items {
			ticket.Items = append(ticket.Items, TicketItem{
				ID:        item.ID,
				Name:      item.Name,
				Quantity:  item.Quantity,
				Modifiers: append([]string{}, item.Modifiers...),
				Status:    item.Status,
			})
		}
		board = append(board, ticket)
	}

	sort.SliceStable(board, func(i, j int) bool {
		return board[i].CreatedAt.Before(board[j].CreatedAt)
	})
	return board
}

// WaitMinutes is the elapsed time in whole minutes, never negative.
func WaitMinutes(createdAt, now time.Time) int {
	elapsed := now.Sub(createdAt)
	if elapsed < 0 {
		return 0
	}
	return int(elapsed / time.Minute)
}

type OrderSource interface {
	List(ctx context.Context, status string) ([]*order.Order, error)
	MarkItemReady(ctx context.Context, orderID, itemID uuid.UUID) (*order.Order, error)
}

type TableSource interface {
	List(ctx context.Context) ([]*floor.Table, error)
}

// View loads the current orders and tables and projects them into a board.
type View struct {
	orders OrderSource
	tables TableSource
	now    func() time.Time
}

func NewView(orders OrderSource, tables TableSource) *View {
	return &View{
		orders: orders,
		tables: tables,
		now:    time.Now,
	}
}

func (v *View) Board(ctx context.Context) ([]Ticket, error) {
	orders, err := v.orders.List(ctx, orderstatus.Statuses.Open.Code())
	if err != nil {
		return nil, fmt.Errorf("list open orders: %w", err)
	}

	tables, err := v.tables.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}

	return BuildBoard(orders, tables, v.now()), nil
}

// MarkItemReady is handed to the order engine, the board itself keeps no state.
func (v *View) MarkItemReady(ctx context.Context, orderID, itemID uuid.UUID) (*order.Order, error) {
	return v.orders.MarkItemReady(ctx, orderID, itemID)
}
