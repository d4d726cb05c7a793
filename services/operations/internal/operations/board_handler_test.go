package operations

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/appetiteclub/apt"
	"github.com/go-chi/chi/v5"

	"github.com/casinoeats/casinoeats/pkg/enums/orderstatus"
)

func newBoardRouter(source *mockOrderSource) (chi.Router, *OrderBoardCache) {
	cache := NewOrderBoardCache(source, apt.NewNoopLogger())
	h := NewHandler(cache, source, apt.NewConfig(), apt.NewNoopLogger())
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r, cache
}

func TestListBoardOrders(t *testing.T) {
	source := newMockOrderSource(
		boardOrder("o1", orderstatus.Statuses.Pending.Name, 5000),
	)
	router, _ := newBoardRouter(source)

	req := httptest.NewRequest(http.MethodGet, "/board/orders?desde=2026-08-15&hasta=2026-08-15", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data []orderResource `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("cannot decode response: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].ID != "o1" {
		t.Errorf("unexpected board orders %+v", resp.Data)
	}

	if len(source.ListCalls) != 1 {
		t.Fatalf("expected 1 fetch, got %d", len(source.ListCalls))
	}
	if call := source.ListCalls[0]; call.Desde != "2026-08-15" {
		t.Errorf("expected date range forwarded to source, got %+v", call)
	}
}

func TestListBoardOrdersInvalidDate(t *testing.T) {
	router, _ := newBoardRouter(newMockOrderSource())

	req := httptest.NewRequest(http.MethodGet, "/board/orders?desde=ayer", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestListBoardOrdersSourceDown(t *testing.T) {
	source := newMockOrderSource()
	source.setErr(fmt.Errorf("connection refused"))
	router, _ := newBoardRouter(source)

	req := httptest.NewRequest(http.MethodGet, "/board/orders?desde=2026-08-15", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", rec.Code)
	}
}

func TestActiveAndHistoryEndpoints(t *testing.T) {
	source := newMockOrderSource(
		boardOrder("p", orderstatus.Statuses.Pending.Name, 1000),
		boardOrder("d", orderstatus.Statuses.Delivered.Name, 4000),
	)
	router, cache := newBoardRouter(source)
	if err := cache.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		path   string
		wantID string
	}{
		{path: "/board/active", wantID: "p"},
		{path: "/board/history", wantID: "d"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", rec.Code)
			}

			var resp struct {
				Data []orderResource `json:"data"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("cannot decode response: %v", err)
			}
			if len(resp.Data) != 1 || resp.Data[0].ID != tt.wantID {
				t.Errorf("unexpected orders %+v", resp.Data)
			}
		})
	}
}

func TestGetSummaryEndpoint(t *testing.T) {
	source := newMockOrderSource(
		boardOrder("p", orderstatus.Statuses.Pending.Name, 1000),
		boardOrder("d", orderstatus.Statuses.Delivered.Name, 4000),
	)
	router, cache := newBoardRouter(source)
	if err := cache.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/board/summary", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp struct {
		Data BoardSummary `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("cannot decode response: %v", err)
	}
	if resp.Data.Total != 2 || resp.Data.Delivered != 1 || resp.Data.Revenue != 4000 {
		t.Errorf("unexpected summary %+v", resp.Data)
	}
}

func TestBoardUpdateOrderStatus(t *testing.T) {
	source := newMockOrderSource(boardOrder("o1", orderstatus.Statuses.Pending.Name, 5000))
	router, _ := newBoardRouter(source)

	body, _ := json.Marshal(StatusUpdateRequest{Status: orderstatus.Statuses.Ready.Name})
	req := httptest.NewRequest(http.MethodPut, "/board/orders/o1/status", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	if len(source.UpdateCalls) != 1 {
		t.Fatalf("expected 1 update call, got %d", len(source.UpdateCalls))
	}
	if call := source.UpdateCalls[0]; call.ID != "o1" || call.Status != orderstatus.Statuses.Ready.Name {
		t.Errorf("unexpected update call %+v", call)
	}

	// The command is followed by a refresh of the snapshot.
	if len(source.ListCalls) == 0 {
		t.Error("expected a board refresh after the update")
	}
}

func TestBoardUpdateOrderStatusInvalid(t *testing.T) {
	source := newMockOrderSource()
	router, _ := newBoardRouter(source)

	body, _ := json.Marshal(StatusUpdateRequest{Status: "Volando"})
	req := httptest.NewRequest(http.MethodPut, "/board/orders/o1/status", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if len(source.UpdateCalls) != 0 {
		t.Error("invalid status must not reach the ordering service")
	}
}

func TestBoardUpdateOrderStatusRejected(t *testing.T) {
	source := newMockOrderSource()
	source.UpdateFunc = func(ctx context.Context, id, status string) (*orderResource, error) {
		return nil, fmt.Errorf("status transition not allowed")
	}
	router, cache := newBoardRouter(source)

	body, _ := json.Marshal(StatusUpdateRequest{Status: orderstatus.Statuses.Pending.Name})
	req := httptest.NewRequest(http.MethodPut, "/board/orders/o1/status", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", rec.Code)
	}
	// A rejected command must not leave a locally mutated view behind.
	if len(cache.Orders()) != 0 {
		t.Error("rejected update must not mutate the board snapshot")
	}
}
