package operations

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/events"

	"github.com/casinoeats/casinoeats/pkg/event"
)

// OrderEventSubscriber invalidates the board whenever the ordering service
// announces a change. The event payload is only a hint; the snapshot is
// always rebuilt from a full fetch.
type OrderEventSubscriber struct {
	subscriber events.Subscriber
	cache      *OrderBoardCache
	logger     apt.Logger
}

func NewOrderEventSubscriber(sub events.Subscriber, cache *OrderBoardCache, logger apt.Logger) *OrderEventSubscriber {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &OrderEventSubscriber{
		subscriber: sub,
		cache:      cache,
		logger:     logger,
	}
}

func (s *OrderEventSubscriber) Start(ctx context.Context) error {
	s.logger.Info("starting order event subscriber", "topic", event.OrdersTopic)
	if s.subscriber == nil {
		return fmt.Errorf("order event subscriber not configured")
	}
	return s.subscriber.Subscribe(ctx, event.OrdersTopic, s.handleEvent)
}

func (s *OrderEventSubscriber) handleEvent(ctx context.Context, msg []byte) error {
	var evt event.OrderEvent
	if err := json.Unmarshal(msg, &evt); err != nil {
		s.logger.Info("invalid order event", "error", err)
		return nil
	}

	s.logger.Debug("order event received", "event_type", evt.EventType, "order_id", evt.OrderID)

	if s.cache == nil {
		return nil
	}

	go func() {
		if err := s.cache.Refresh(ctx); err != nil {
			s.logger.Info("board refresh after event failed", "error", err)
		}
	}()

	return nil
}
