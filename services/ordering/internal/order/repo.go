package order

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type OrderRepo interface {
	Create(ctx context.Context, order *Order) error
	Get(ctx context.Context, id uuid.UUID) (*Order, error)
	List(ctx context.Context) ([]*Order, error)
	// ListByDateRange returns orders whose submission time falls within
	// [from, to], newest first. A zero bound leaves that side of the range
	// open.
	ListByDateRange(ctx context.Context, from, to time.Time) ([]*Order, error)
	Save(ctx context.Context, order *Order) error
}
