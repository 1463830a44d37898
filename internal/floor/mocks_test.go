package floor

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MockPublisher is a mock implementation of events.Publisher for testing
type MockPublisher struct {
	mu          sync.Mutex
	published   []publishedEvent
	PublishFunc func(ctx context.Context, topic string, msg []byte) error
}

type publishedEvent struct {
	topic string
	msg   []byte
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, msg []byte) error {
	m.mu.Lock()
	m.published = append(m.published, publishedEvent{topic: topic, msg: msg})
	m.mu.Unlock()
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, topic, msg)
	}
	return nil
}

func (m *MockPublisher) topics() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var topics []string
	for _, p := range m.published {
		topics = append(topics, p.topic)
	}
	return topics
}

// MockTableRepo is a mock implementation of TableRepo for testing
type MockTableRepo struct {
	mu       sync.RWMutex
	tables   map[uuid.UUID]*Table
	ListFunc func(ctx context.Context) ([]*Table, error)
}

func NewMockTableRepo() *MockTableRepo {
	return &MockTableRepo{
		tables: make(map[uuid.UUID]*Table),
	}
}

func (m *MockTableRepo) Create(ctx context.Context, table *Table) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *table
	m.tables[table.ID] = &cp
	return nil
}

func (m *MockTableRepo) Get(ctx context.Context, id uuid.UUID) (*Table, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	table, ok := m.tables[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, id)
	}
	cp := *table
	return &cp, nil
}

func (m *MockTableRepo) List(ctx context.Context) ([]*Table, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*Table, 0, len(m.tables))
	for _, table := range m.tables {
		cp := *table
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Number < result[j].Number })
	return result, nil
}

func (m *MockTableRepo) Save(ctx context.Context, table *Table) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tables[table.ID]; !ok {
		return ErrTableNotFound
	}
	cp := *table
	m.tables[table.ID] = &cp
	return nil
}

func (m *MockTableRepo) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tables[id]; !ok {
		return fmt.Errorf("%w: %s", ErrTableNotFound, id)
	}
	delete(m.tables, id)
	return nil
}
