package pkg

import (
	"context"
	"errors"
	"sync"

	"github.com/aquamarinepk/aqm"
	"github.com/aquamarinepk/aqm/events"
)

// LocalBus is an in-process events.Publisher and events.Subscriber.
// Handlers run synchronously on the publishing goroutine, in subscription order.
type LocalBus struct {
	mu       sync.RWMutex
	handlers map[string][]events.HandlerFunc
	logger   aqm.Logger
}

func NewLocalBus(logger aqm.Logger) *LocalBus {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	return &LocalBus{
		handlers: make(map[string][]events.HandlerFunc),
		logger:   logger,
	}
}

func (b *LocalBus) Publish(ctx context.Context, topic string, msg []byte) error {
	b.mu.RLock()
	handlers := append([]events.HandlerFunc(nil), b.handlers[topic]...)
	b.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(ctx, msg); err != nil {
			b.logger.Error("event handler failed", "topic", topic, "error", err)
		}
	}
	return nil
}

func (b *LocalBus) Subscribe(ctx context.Context, topic string, handler events.HandlerFunc) error {
	if handler == nil {
		return errors.New("handler is required")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[topic] = append(b.handlers[topic], handler)
	return nil
}

func (b *LocalBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = make(map[string][]events.HandlerFunc)
	return nil
}
