package event

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/stationery/backoffice/internal/domain/shared"
	"go.uber.org/zap"
)

// DefaultDedupTTL is how long a handled event id is remembered
const DefaultDedupTTL = 24 * time.Hour

const dedupKeyPrefix = "event:"

// DedupHandler wraps a handler so that each event id is handled at most once
// per TTL, even when a publisher retries after a partial failure.
type DedupHandler struct {
	handler    shared.EventHandler
	store      shared.IdempotencyStore
	ttl        time.Duration
	logger     *zap.Logger
	handled    atomic.Int64
	duplicates atomic.Int64
}

// NewDedupHandler wraps handler with store. A non-positive ttl selects DefaultDedupTTL.
func NewDedupHandler(handler shared.EventHandler, store shared.IdempotencyStore, ttl time.Duration, logger *zap.Logger) *DedupHandler {
	if ttl <= 0 {
		ttl = DefaultDedupTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DedupHandler{handler: handler, store: store, ttl: ttl, logger: logger}
}

// EventTypes returns the wrapped handler's event types
func (h *DedupHandler) EventTypes() []string {
	return h.handler.EventTypes()
}

// Handle runs the wrapped handler unless the event id was already claimed.
// A store failure lets the event through; counting twice beats not counting.
func (h *DedupHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	key := dedupKeyPrefix + event.EventID().String()
	fresh, err := h.store.MarkProcessed(ctx, key, h.ttl)
	if err != nil {
		h.logger.Warn("dedup store unavailable, handling event anyway",
			zap.String("event_id", event.EventID().String()),
			zap.String("event_type", event.EventType()),
			zap.Error(err),
		)
	} else if !fresh {
		h.duplicates.Add(1)
		h.logger.Debug("duplicate event skipped",
			zap.String("event_id", event.EventID().String()),
			zap.String("event_type", event.EventType()),
		)
		return nil
	}

	if err := h.handler.Handle(ctx, event); err != nil {
		return err
	}
	h.handled.Add(1)
	return nil
}

// Stats returns how many events were handled and how many were skipped as duplicates
func (h *DedupHandler) Stats() (handled, duplicates int64) {
	return h.handled.Load(), h.duplicates.Load()
}

// Ensure DedupHandler implements EventHandler
var _ shared.EventHandler = (*DedupHandler)(nil)
