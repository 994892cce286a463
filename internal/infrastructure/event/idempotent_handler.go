package event

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rentals/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// DefaultIdempotencyTTL is how long a processed event ID is remembered
const DefaultIdempotencyTTL = 24 * time.Hour

// IdempotencyStats is a snapshot of an IdempotentHandler's counters
type IdempotencyStats struct {
	Processed int64 `json:"processed"`
	Duplicate int64 `json:"duplicate"`
	Failed    int64 `json:"failed"`
}

// IdempotentHandler runs the wrapped handler at most once per event ID
type IdempotentHandler struct {
	handler shared.EventHandler
	store   shared.IdempotencyStore
	name    string
	ttl     time.Duration
	logger  *zap.Logger

	processed atomic.Int64
	duplicate atomic.Int64
	failed    atomic.Int64
}

var _ shared.EventHandler = (*IdempotentHandler)(nil)

// NewIdempotentHandler wraps handler. name namespaces the stored keys so two
// handlers can each process the same event.
func NewIdempotentHandler(handler shared.EventHandler, store shared.IdempotencyStore, name string, ttl time.Duration, logger *zap.Logger) *IdempotentHandler {
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IdempotentHandler{
		handler: handler,
		store:   store,
		name:    name,
		ttl:     ttl,
		logger:  logger,
	}
}

func (h *IdempotentHandler) EventTypes() []string {
	return h.handler.EventTypes()
}

// Handle skips events already marked. A store failure is logged and the event
// is processed anyway.
func (h *IdempotentHandler) Handle(ctx context.Context, e shared.DomainEvent) error {
	key := h.name + ":" + e.EventID().String()
	fields := []zap.Field{
		zap.String("event_id", e.EventID().String()),
		zap.String("event_type", e.EventType()),
		zap.String("handler", h.name),
	}

	isNew, err := h.store.MarkProcessed(ctx, key, h.ttl)
	switch {
	case err != nil:
		h.logger.Warn("Idempotency check failed, processing anyway", append(fields, zap.Error(err))...)
	case !isNew:
		h.duplicate.Add(1)
		h.logger.Debug("Duplicate event skipped", fields...)
		return nil
	}

	if err := h.handler.Handle(ctx, e); err != nil {
		// the key stays set until ttl so a failing event is not retried in a loop
		h.failed.Add(1)
		return err
	}
	h.processed.Add(1)
	return nil
}

// Stats returns the current counters
func (h *IdempotentHandler) Stats() IdempotencyStats {
	return IdempotencyStats{
		Processed: h.processed.Load(),
		Duplicate: h.duplicate.Load(),
		Failed:    h.failed.Load(),
	}
}
