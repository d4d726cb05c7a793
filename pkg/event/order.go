package event

import "time"

const (
	// OrdersTopic carries every order lifecycle event published by the
	// ordering service. The operations board treats any message on this
	// topic as an invalidation signal for its cached view.
	OrdersTopic = "orders.lifecycle"

	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status.changed"
)

// OrderEvent is published whenever an order is created or its status moves.
// Payload fields are denormalized so consumers can update summaries without
// a round trip to the ordering service.
type OrderEvent struct {
	EventType      string    `json:"event_type"`
	OccurredAt     time.Time `json:"occurred_at"`
	OrderID        string    `json:"order_id"`
	TableNumber    int       `json:"table_number"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	Total          int64     `json:"total"`
}
