package cart

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/casinoeats/casinoeats/services/ordering/internal/catalog"
	"github.com/casinoeats/casinoeats/services/ordering/internal/order"
)

// MockProductRepo is a mock implementation of catalog.ProductRepo for testing
type MockProductRepo struct {
	mu       sync.RWMutex
	products map[uuid.UUID]*catalog.Product

	GetFunc func(ctx context.Context, id uuid.UUID) (*catalog.Product, error)
}

func NewMockProductRepo() *MockProductRepo {
	return &MockProductRepo{
		products: make(map[uuid.UUID]*catalog.Product),
	}
}

func (m *MockProductRepo) Create(ctx context.Context, product *catalog.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[product.ID] = product
	return nil
}

func (m *MockProductRepo) Get(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	product, ok := m.products[id]
	if !ok {
		return nil, fmt.Errorf("product not found")
	}
	return product, nil
}

func (m *MockProductRepo) List(ctx context.Context) ([]*catalog.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*catalog.Product
	for _, p := range m.products {
		result = append(result, p)
	}
	return result, nil
}

func (m *MockProductRepo) ListByCategories(ctx context.Context, categories []string) ([]*catalog.Product, error) {
	all, _ := m.List(ctx)
	var result []*catalog.Product
	for _, p := range all {
		for _, c := range categories {
			if p.Category == c {
				result = append(result, p)
			}
		}
	}
	return result, nil
}

func (m *MockProductRepo) Save(ctx context.Context, product *catalog.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[product.ID] = product
	return nil
}

func (m *MockProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.products, id)
	return nil
}

// MockOrderRepo is a mock implementation of order.OrderRepo for testing
type MockOrderRepo struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]*order.Order

	CreateFunc func(ctx context.Context, o *order.Order) error
}

func NewMockOrderRepo() *MockOrderRepo {
	return &MockOrderRepo{
		orders: make(map[uuid.UUID]*order.Order),
	}
}

func (m *MockOrderRepo) Create(ctx context.Context, o *order.Order) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, o)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[o.ID] = o
	return nil
}

func (m *MockOrderRepo) Get(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, fmt.Errorf("order not found")
	}
	return o, nil
}

func (m *MockOrderRepo) List(ctx context.Context) ([]*order.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*order.Order
	for _, o := range m.orders {
		result = append(result, o)
	}
	return result, nil
}

func (m *MockOrderRepo) ListByDateRange(ctx context.Context, from, to time.Time) ([]*order.Order, error) {
	all, _ := m.List(ctx)
	var result []*order.Order
	for _, o := range all {
		if !from.IsZero() && o.SubmittedAt.Before(from) {
			continue
		}
		if !to.IsZero() && o.SubmittedAt.After(to) {
			continue
		}
		result = append(result, o)
	}
	return result, nil
}

func (m *MockOrderRepo) Save(ctx context.Context, o *order.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[o.ID] = o
	return nil
}

// MockPublisher is a mock implementation of events.Publisher for testing
type MockPublisher struct {
	mu        sync.Mutex
	Published [][]byte
	Topics    []string
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, msg []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Topics = append(m.Topics, topic)
	m.Published = append(m.Published, msg)
	return nil
}
