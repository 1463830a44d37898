package kitchen

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/appetiteclub/pos/pkg"
	"github.com/appetiteclub/pos/pkg/event"
	"github.com/aquamarinepk/aqm"
	"github.com/aquamarinepk/aqm/events"
	"github.com/gorilla/websocket"
)

const (
	feedSendBuffer = 8
	feedWriteWait  = 10 * time.Second
)

// FeedMessage is the frame pushed to every kitchen screen.
type FeedMessage struct {
	Type    string   `json:"type"`
	Cause   string   `json:"cause,omitempty"`
	Tickets []Ticket `json:"tickets"`
}

type feedClient struct {
	conn *websocket.Conn
	send chan []byte
}

// Feed pushes the full board to connected kitchen screens on connect and
// after every order or layout event.
type Feed struct {
	view       *View
	subscriber events.Subscriber
	upgrader   websocket.Upgrader
	logger     aqm.Logger

	mu      sync.Mutex
	clients map[*feedClient]struct{}
}

func NewFeed(view *View, subscriber events.Subscriber, logger aqm.Logger) *Feed {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	return &Feed{
		view:       view,
		subscriber: subscriber,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger:  logger,
		clients: make(map[*feedClient]struct{}),
	}
}

func (f *Feed) Start(ctx context.Context) error {
	if f.subscriber == nil {
		return fmt.Errorf("kitchen feed subscriber not configured")
	}

	f.logger.Info("starting kitchen feed", "topic", event.OrdersTopic)
	if err := f.subscriber.Subscribe(ctx, event.OrdersTopic, f.handleOrderEvent); err != nil {
		return fmt.Errorf("subscribe to %s: %w", event.OrdersTopic, err)
	}
	if err := f.subscriber.Subscribe(ctx, pkg.TableLayoutTopic, f.handleLayoutEvent); err != nil {
		return fmt.Errorf("subscribe to %s: %w", pkg.TableLayoutTopic, err)
	}
	return nil
}

// Stop disconnects every screen.
func (f *Feed) Stop(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for client := range f.clients {
		close(client.send)
		delete(f.clients, client)
	}
	return nil
}

func (f *Feed) ClientCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.clients)
}

func (f *Feed) handleOrderEvent(ctx context.Context, msg []byte) error {
	var evt event.OrderEvent
	if err := json.Unmarshal(msg, &evt); err != nil {
		f.logger.Info("invalid order event", "error", err)
		return nil
	}
	return f.Broadcast(ctx, evt.EventType)
}

func (f *Feed) handleLayoutEvent(ctx context.Context, msg []byte) error {
	var evt pkg.TableLayoutEvent
	if err := json.Unmarshal(msg, &evt); err != nil {
		f.logger.Info("invalid table layout event", "error", err)
		return nil
	}
	return f.Broadcast(ctx, evt.EventType)
}

// Broadcast sends a fresh board to every screen. Slow screens are skipped
// for this frame rather than stalling the publisher.
func (f *Feed) Broadcast(ctx context.Context, cause string) error {
	frame, err := f.frame(ctx, "board.updated", cause)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for client := range f.clients {
		select {
		case client.send <- frame:
		default:
			f.logger.Debug("kitchen screen too slow, frame dropped")
		}
	}
	return nil
}

// ServeHTTP upgrades the request and registers the screen.
func (f *Feed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		f.logger.Info("kitchen feed upgrade failed", "error", err)
		return
	}

	client := &feedClient{
		conn: conn,
		send: make(chan []byte, feedSendBuffer),
	}

	frame, err := f.frame(r.Context(), "board.snapshot", "")
	if err != nil {
		f.logger.Error("cannot build kitchen board", "error", err)
		conn.Close()
		return
	}
	client.send <- frame

	f.mu.Lock()
	f.clients[client] = struct{}{}
	f.mu.Unlock()

	go f.writeLoop(client)
	go f.readLoop(client)
}

func (f *Feed) frame(ctx context.Context, frameType, cause string) ([]byte, error) {
	tickets, err := f.view.Board(ctx)
	if err != nil {
		return nil, fmt.Errorf("build board: %w", err)
	}

	frame, err := json.Marshal(FeedMessage{Type: frameType, Cause: cause, Tickets: tickets})
	if err != nil {
		return nil, fmt.Errorf("marshal board: %w", err)
	}
	return frame, nil
}

func (f *Feed) writeLoop(client *feedClient) {
	defer client.conn.Close()

	for frame := range client.send {
		client.conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
		if err := client.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			f.logger.Debug("kitchen feed write failed", "error", err)
			f.unregister(client)
			return
		}
	}
}

// readLoop only watches for the screen going away.
func (f *Feed) readLoop(client *feedClient) {
	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			f.unregister(client)
			return
		}
	}
}

func (f *Feed) unregister(client *feedClient) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.clients[client]; ok {
		delete(f.clients, client)
		close(client.send)
	}
}
