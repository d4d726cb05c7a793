package operations

import (
	"context"
	"sync"
)

// mockOrderSource is a controllable OrderSource and OrderUpdater for testing
type mockOrderSource struct {
	mu      sync.Mutex
	orders  []orderResource
	listErr error

	// gate, when set, blocks ListOrders until released. Used to interleave
	// overlapping fetches deterministically.
	gate chan struct{}

	ListCalls   []listCall
	UpdateCalls []updateCall

	UpdateFunc func(ctx context.Context, id, status string) (*orderResource, error)
}

type listCall struct {
	Desde string
	Hasta string
}

type updateCall struct {
	ID     string
	Status string
}

func newMockOrderSource(orders ...orderResource) *mockOrderSource {
	return &mockOrderSource{orders: orders}
}

func (m *mockOrderSource) ListOrders(ctx context.Context, desde, hasta string) ([]orderResource, error) {
	m.mu.Lock()
	gate := m.gate
	m.ListCalls = append(m.ListCalls, listCall{Desde: desde, Hasta: hasta})
	orders := make([]orderResource, len(m.orders))
	copy(orders, m.orders)
	err := m.listErr
	m.mu.Unlock()

	// A gated fetch returns the data captured on entry, like a slow response
	// carrying what the server held when the request landed.
	if gate != nil {
		<-gate
	}

	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (m *mockOrderSource) UpdateOrderStatus(ctx context.Context, id, status string) (*orderResource, error) {
	m.mu.Lock()
	m.UpdateCalls = append(m.UpdateCalls, updateCall{ID: id, Status: status})
	m.mu.Unlock()

	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, status)
	}
	return &orderResource{ID: id, Status: status}, nil
}

func (m *mockOrderSource) setOrders(orders []orderResource) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = orders
}

func (m *mockOrderSource) setErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listErr = err
}

func (m *mockOrderSource) setGate(gate chan struct{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gate = gate
}
