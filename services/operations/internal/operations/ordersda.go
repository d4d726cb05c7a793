package operations

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/appetiteclub/apt"
)

// lineResource is a single line inside an order as served by the ordering
// service.
type lineResource struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

// orderResource mirrors the aggregate returned by the ordering service.
type orderResource struct {
	ID          string         `json:"id"`
	TableNumber int            `json:"numero_mesa"`
	Items       []lineResource `json:"productos"`
	Total       int64          `json:"total"`
	Status      string         `json:"estado"`
	Note        string         `json:"nota,omitempty"`
	SubmittedAt time.Time      `json:"fecha_pedido"`
	DeliveredAt *time.Time     `json:"fecha_entregado,omitempty"`
}

// StatusUpdateRequest defines the payload supported by the ordering service.
type StatusUpdateRequest struct {
	Status string `json:"estado"`
}

// OrderDataAccess centralizes decoding of ordering service responses.
type OrderDataAccess struct {
	client *apt.ServiceClient
}

func NewOrderDataAccess(client *apt.ServiceClient) *OrderDataAccess {
	return &OrderDataAccess{client: client}
}

// ListOrders fetches the orders for a day range. Bounds are day-granularity
// strings (YYYY-MM-DD); empty bounds fetch everything. A transient failure is
// retried once before giving up.
func (da *OrderDataAccess) ListOrders(ctx context.Context, desde, hasta string) ([]orderResource, error) {
	if da == nil || da.client == nil {
		return nil, fmt.Errorf("ordering client not configured")
	}

	path := "/orders"
	if desde != "" || hasta != "" {
		q := url.Values{}
		if desde != "" {
			q.Set("desde", desde)
		}
		if hasta != "" {
			q.Set("hasta", hasta)
		}
		path = path + "?" + q.Encode()
	}

	resp, err := da.client.Request(ctx, "GET", path, nil)
	if err != nil {
		resp, err = da.client.Request(ctx, "GET", path, nil)
		if err != nil {
			return nil, err
		}
	}

	var orders []orderResource
	if err := decodeSuccessResponse(resp, &orders); err != nil {
		return nil, err
	}

	return orders, nil
}

func (da *OrderDataAccess) GetOrder(ctx context.Context, id string) (*orderResource, error) {
	if da == nil || da.client == nil {
		return nil, fmt.Errorf("ordering client not configured")
	}

	resp, err := da.client.Get(ctx, "orders", id)
	if err != nil {
		return nil, err
	}

	var order orderResource
	if err := decodeSuccessResponse(resp, &order); err != nil {
		return nil, err
	}

	return &order, nil
}

// UpdateOrderStatus asks the ordering service to move an order. The board
// never mutates its own view here; the refreshed snapshot is the only way a
// change becomes visible.
func (da *OrderDataAccess) UpdateOrderStatus(ctx context.Context, id, status string) (*orderResource, error) {
	if da == nil || da.client == nil {
		return nil, fmt.Errorf("ordering client not configured")
	}
	if id == "" {
		return nil, fmt.Errorf("missing order id")
	}

	path := fmt.Sprintf("/orders/%s/status", id)
	resp, err := da.client.Request(ctx, "PUT", path, StatusUpdateRequest{Status: status})
	if err != nil {
		return nil, err
	}

	var order orderResource
	if err := decodeSuccessResponse(resp, &order); err != nil {
		return nil, err
	}

	return &order, nil
}
