package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/rentals/backend/internal/domain/shared"
	"github.com/rentals/backend/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type testEvent struct {
	shared.BaseDomainEvent
}

func newTestEvent(eventType string) *testEvent {
	return &testEvent{BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "Test", uuid.New(), uuid.New())}
}

type testHandler struct {
	mu         sync.Mutex
	eventTypes []string
	handled    []shared.DomainEvent
	err        error
	panicWith  any
}

func newTestHandler(eventTypes ...string) *testHandler {
	return &testHandler{eventTypes: eventTypes}
}

func (h *testHandler) Handle(_ context.Context, e shared.DomainEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handled = append(h.handled, e)
	if h.panicWith != nil {
		panic(h.panicWith)
	}
	return h.err
}

func (h *testHandler) EventTypes() []string { return h.eventTypes }

func (h *testHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.handled)
}

func TestInMemoryEventBus_Publish(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	booked := newTestHandler("booking.created")
	all := newTestHandler()
	bus.Subscribe(booked)
	bus.Subscribe(all)

	require.NoError(t, bus.Publish(context.Background(),
		newTestEvent("booking.created"),
		newTestEvent("contract.sent"),
	))

	assert.Equal(t, 1, booked.count())
	assert.Equal(t, 2, all.count(), "wildcard handler sees every event")
}

func TestInMemoryEventBus_SubscribeOverridesTypes(t *testing.T) {
	bus := NewInMemoryEventBus(nil)
	h := newTestHandler("booking.created")
	bus.Subscribe(h, "booking.cancelled")

	_ = bus.Publish(context.Background(), newTestEvent("booking.created"), newTestEvent("booking.cancelled"))
	assert.Equal(t, 1, h.count())
}

func TestInMemoryEventBus_HandlerFailuresAreIsolated(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	bus := NewInMemoryEventBus(zap.New(core))

	failing := newTestHandler("booking.created")
	failing.err = errors.New("smtp down")
	panicking := newTestHandler("booking.created")
	panicking.panicWith = "boom"
	healthy := newTestHandler("booking.created")
	bus.Subscribe(failing)
	bus.Subscribe(panicking)
	bus.Subscribe(healthy)

	err := bus.Publish(context.Background(), newTestEvent("booking.created"))

	require.NoError(t, err)
	assert.Equal(t, 1, healthy.count())
	assert.Equal(t, 2, logs.FilterMessage("Event handler failed").Len())
}

func TestInMemoryEventBus_LogsThroughRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	bus := NewInMemoryEventBus(zap.NewNop())
	h := newTestHandler("booking.created")
	h.err = errors.New("nope")
	bus.Subscribe(h)

	ctx := logger.WithContext(context.Background(), zap.New(core))
	_ = bus.Publish(ctx, newTestEvent("booking.created"))

	assert.Equal(t, 1, logs.Len())
}

func TestInMemoryEventBus_UnsubscribeAndLifecycle(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	h := newTestHandler("booking.created")
	bus.Subscribe(h)

	require.NoError(t, bus.Start(context.Background()))
	assert.True(t, bus.Running())

	_ = bus.Publish(context.Background(), newTestEvent("booking.created"))
	bus.Unsubscribe(h)
	_ = bus.Publish(context.Background(), newTestEvent("booking.created"))
	assert.Equal(t, 1, h.count())

	require.NoError(t, bus.Stop(context.Background()))
	assert.False(t, bus.Running())
}
