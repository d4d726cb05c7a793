package operations

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/appetiteclub/apt"

	"github.com/casinoeats/casinoeats/pkg/enums/orderstatus"
)

// DefaultPollInterval is how often the board re-fetches when no event has
// invalidated it first.
const DefaultPollInterval = 30 * time.Second

// OrderSource fetches the orders for a day range from the ordering service.
type OrderSource interface {
	ListOrders(ctx context.Context, desde, hasta string) ([]orderResource, error)
}

// OrderBoardCache holds the staff board's snapshot of orders. It is refreshed
// on an interval and whenever an order event arrives; reads never block on
// the network. Fetches are sequenced so a slow response can never overwrite
// the result of a later one.
type OrderBoardCache struct {
	mu        sync.RWMutex
	orders    []orderResource
	desde     string
	hasta     string
	fetchedAt time.Time

	seq         atomic.Uint64
	lastApplied uint64

	source   OrderSource
	logger   apt.Logger
	interval time.Duration
}

func NewOrderBoardCache(source OrderSource, logger apt.Logger) *OrderBoardCache {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &OrderBoardCache{
		source:   source,
		logger:   logger,
		interval: DefaultPollInterval,
	}
}

// Start launches the poll loop after an initial warm fetch.
func (c *OrderBoardCache) Start(ctx context.Context) error {
	if err := c.Refresh(ctx); err != nil {
		c.logger.Info("initial board fetch failed, will retry on poll", "error", err)
	}

	go func() {
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := c.Refresh(ctx); err != nil {
					c.logger.Info("board poll failed, keeping last snapshot", "error", err)
				}
			}
		}
	}()

	return nil
}

// Refresh fetches the current range and swaps in the result. When two
// refreshes overlap, whichever fetch STARTED last wins; the other result is
// dropped on arrival, as is any result fetched for a range the board no
// longer shows. A failed fetch leaves the previous snapshot in place.
func (c *OrderBoardCache) Refresh(ctx context.Context) error {
	c.mu.RLock()
	desde, hasta := c.desde, c.hasta
	c.mu.RUnlock()

	seq := c.seq.Add(1)

	orders, err := c.source.ListOrders(ctx, desde, hasta)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq <= c.lastApplied {
		c.logger.Debug("dropping stale board fetch", "seq", seq, "applied", c.lastApplied)
		return nil
	}
	if desde != c.desde || hasta != c.hasta {
		c.logger.Debug("dropping board fetch for superseded range", "desde", desde, "hasta", hasta)
		return nil
	}

	c.lastApplied = seq
	c.orders = orders
	c.fetchedAt = time.Now()

	c.logger.Debug("board snapshot refreshed", "orders", len(orders), "desde", desde, "hasta", hasta)
	return nil
}

// SetRange points the board at a different day range and refreshes it.
func (c *OrderBoardCache) SetRange(ctx context.Context, desde, hasta string) error {
	c.mu.Lock()
	changed := c.desde != desde || c.hasta != hasta
	c.desde = desde
	c.hasta = hasta
	c.mu.Unlock()

	if !changed && !c.Stale() {
		return nil
	}
	return c.Refresh(ctx)
}

func (c *OrderBoardCache) Range() (string, string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.desde, c.hasta
}

// Orders returns the full snapshot, newest first as served by the ordering
// service.
func (c *OrderBoardCache) Orders() []orderResource {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]orderResource, len(c.orders))
	copy(result, c.orders)
	return result
}

// Active returns the orders still moving through the pipeline.
func (c *OrderBoardCache) Active() []orderResource {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]orderResource, 0, len(c.orders))
	for _, o := range c.orders {
		if o.Status != orderstatus.Statuses.Delivered.Name {
			result = append(result, o)
		}
	}
	return result
}

// History returns the delivered orders.
func (c *OrderBoardCache) History() []orderResource {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]orderResource, 0)
	for _, o := range c.orders {
		if o.Status == orderstatus.Statuses.Delivered.Name {
			result = append(result, o)
		}
	}
	return result
}

func (c *OrderBoardCache) FetchedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fetchedAt
}

// Stale reports whether the snapshot is older than the poll interval.
func (c *OrderBoardCache) Stale() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Since(c.fetchedAt) > c.interval
}

// BoardSummary aggregates the snapshot into the counters the staff view
// shows at a glance.
type BoardSummary struct {
	Total         int   `json:"total"`
	Pending       int   `json:"pendientes"`
	InPreparation int   `json:"en_preparacion"`
	Ready         int   `json:"preparados"`
	Delivered     int   `json:"entregados"`
	Revenue       int64 `json:"monto_total"`
}

// Summary counts orders per status. Revenue counts delivered orders only.
func (c *OrderBoardCache) Summary() BoardSummary {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := BoardSummary{Total: len(c.orders)}
	for _, o := range c.orders {
		switch o.Status {
		case orderstatus.Statuses.Pending.Name:
			s.Pending++
		case orderstatus.Statuses.InPreparation.Name:
			s.InPreparation++
		case orderstatus.Statuses.Ready.Name:
			s.Ready++
		case orderstatus.Statuses.Delivered.Name:
			s.Delivered++
			s.Revenue += o.Total
		}
	}
	return s
}
