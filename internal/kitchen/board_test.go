package kitchen

import (
	"context"
	"testing"
	"time"

	"github.com/appetiteclub/pos/internal/floor"
	"github.com/appetiteclub/pos/internal/order"
	"github.com/appetiteclub/pos/pkg/enums/orderstatus"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func newTestOrder(tableID *uuid.UUID, status string, createdAt time.Time) *order.Order {
	o := order.NewOrder()
	o.Type = "takeout"
	if tableID != nil {
		id := *tableID
		o.TableID = &id
		o.Type = "dine_in"
	}
	o.Status = status
	o.CreatedAt = createdAt

	item := order.NewOrderItem()
	item.MenuItemID = uuid.New()
	item.Name = "Wagyu Burger"
	item.Price = decimal.RequireFromString("18.50")
	item.Quantity = 2
	item.Modifiers = []string{"medium rare"}
	o.Items = append(o.Items, item)
	o.Recalculate()
	return o
}

func TestWaitMinutes(t *testing.T) {
	now := time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		createdAt time.Time
		want      int
	}{
		{name: "justNow", createdAt: now, want: 0},
		{name: "underAMinute", createdAt: now.Add(-59 * time.Second), want: 0},
		{name: "sevenAndAHalf", createdAt: now.Add(-7*time.Minute - 30*time.Second), want: 7},
		{name: "overAnHour", createdAt: now.Add(-75 * time.Minute), want: 75},
		{name: "futureClock", createdAt: now.Add(2 * time.Minute), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WaitMinutes(tt.createdAt, now); got != tt.want {
				t.Errorf("WaitMinutes() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBuildBoard(t *testing.T) {
	now := time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)
	table := floor.NewTable(7, 4)
	removed := uuid.New()

	newest := newTestOrder(nil, orderstatus.Statuses.Open.Code(), now.Add(-2*time.Minute))
	oldest := newTestOrder(&table.ID, orderstatus.Statuses.Open.Code(), now.Add(-20*time.Minute))
	orphan := newTestOrder(&removed, orderstatus.Statuses.Open.Code(), now.Add(-10*time.Minute))
	paid := newTestOrder(&table.ID, orderstatus.Statuses.Paid.Code(), now.Add(-30*time.Minute))

	board := BuildBoard([]*order.Order{newest, paid, oldest, orphan}, []*floor.Table{table}, now)

	if len(board) != 3 {
		t.Fatalf("BuildBoard() = %d tickets, want 3", len(board))
	}

	wantOrder := []uuid.UUID{oldest.ID, orphan.ID, newest.ID}
	for i, id := range wantOrder {
		if board[i].OrderID != id {
			t.Errorf("board[%d] = %s, want %s", i, board[i].OrderID, id)
		}
	}

	if board[0].TableNumber != 7 {
		t.Errorf("TableNumber = %d, want 7", board[0].TableNumber)
	}
	if board[0].WaitMinutes != 20 {
		t.Errorf("WaitMinutes = %d, want 20", board[0].WaitMinutes)
	}
	if board[1].TableNumber != 0 || board[1].TableID == nil {
		t.Errorf("orphan ticket should keep its table id without a number, got %d", board[1].TableNumber)
	}
	if board[2].TableID != nil {
		t.Error("takeout ticket should have no table")
	}

	item := board[0].Items[0]
	if item.Name != "Wagyu Burger" || item.Quantity != 2 || item.Status != "pending" {
		t.Errorf("ticket item = %+v", item)
	}
	if len(item.Modifiers) != 1 || item.Modifiers[0] != "medium rare" {
		t.Errorf("Modifiers = %v, want [medium rare]", item.Modifiers)
	}
}

func TestBuildBoardEmpty(t *testing.T) {
	board := BuildBoard(nil, nil, time.Now())
	if board == nil || len(board) != 0 {
		t.Errorf("BuildBoard() = %v, want empty slice", board)
	}
}

func TestViewBoard(t *testing.T) {
	now := time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)
	table := floor.NewTable(3, 4)
	source := &MockOrderSource{orders: []*order.Order{
		newTestOrder(&table.ID, orderstatus.Statuses.Open.Code(), now.Add(-5*time.Minute)),
		newTestOrder(nil, orderstatus.Statuses.Paid.Code(), now.Add(-9*time.Minute)),
	}}

	view := NewView(source, &MockTableSource{tables: []*floor.Table{table}})
	view.now = func() time.Time { return now }

	board, err := view.Board(context.Background())
	if err != nil {
		t.Fatalf("Board() error = %v", err)
	}
	if len(board) != 1 {
		t.Fatalf("Board() = %d tickets, want 1", len(board))
	}
	if board[0].TableNumber != 3 || board[0].WaitMinutes != 5 {
		t.Errorf("ticket = table %d waiting %d, want table 3 waiting 5", board[0].TableNumber, board[0].WaitMinutes)
	}
}

func TestBuildBoardLate(t *testing.T) {
	now := time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		wait time.Duration
		want bool
	}{
		{name: "fresh", wait: 3 * time.Minute, want: false},
		{name: "exactlyFifteen", wait: 15 * time.Minute, want: false},
		{name: "sixteen", wait: 16 * time.Minute, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newTestOrder(nil, orderstatus.Statuses.Open.Code(), now.Add(-tt.wait))

			board := BuildBoard([]*order.Order{o}, nil, now)

			if board[0].Late != tt.want {
				t.Errorf("Late = %v, want %v (waiting %d)", board[0].Late, tt.want, board[0].WaitMinutes)
			}
		})
	}
}
