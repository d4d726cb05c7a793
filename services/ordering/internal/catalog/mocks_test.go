package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MockProductRepo is a mock implementation of ProductRepo for testing
type MockProductRepo struct {
	mu       sync.RWMutex
	products map[uuid.UUID]*Product
	order    []uuid.UUID

	CreateFunc func(ctx context.Context, product *Product) error
	GetFunc    func(ctx context.Context, id uuid.UUID) (*Product, error)
	ListFunc   func(ctx context.Context) ([]*Product, error)
	SaveFunc   func(ctx context.Context, product *Product) error
	DeleteFunc func(ctx context.Context, id uuid.UUID) error
}

func NewMockProductRepo() *MockProductRepo {
	return &MockProductRepo{
		products: make(map[uuid.UUID]*Product),
	}
}

func (m *MockProductRepo) Create(ctx context.Context, product *Product) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, product)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[product.ID] = product
	m.order = append(m.order, product.ID)
	return nil
}

func (m *MockProductRepo) Get(ctx context.Context, id uuid.UUID) (*Product, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	product, ok := m.products[id]
	if !ok {
		return nil, nil
	}
	return product, nil
}

func (m *MockProductRepo) List(ctx context.Context) ([]*Product, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*Product, 0, len(m.order))
	for _, id := range m.order {
		if p, ok := m.products[id]; ok {
			result = append(result, p)
		}
	}
	return result, nil
}

func (m *MockProductRepo) ListByCategories(ctx context.Context, categories []string) ([]*Product, error) {
	all, err := m.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]*Product, 0, len(all))
	for _, p := range all {
		for _, c := range categories {
			if p.Category == c {
				result = append(result, p)
				break
			}
		}
	}
	return result, nil
}

func (m *MockProductRepo) Save(ctx context.Context, product *Product) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, product)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[product.ID]; !ok {
		return fmt.Errorf("product not found")
	}
	m.products[product.ID] = product
	return nil
}

func (m *MockProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return fmt.Errorf("product not found")
	}
	delete(m.products, id)
	for i, pid := range m.order {
		if pid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}
