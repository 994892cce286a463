package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandlerRegistry(t *testing.T) {
	r := NewHandlerRegistry()
	typed := newTestHandler()
	wildcard := newTestHandler()

	r.Register(typed, "booking.created", "booking.cancelled")
	r.Register(typed, "booking.created")
	r.Register(wildcard)

	assert.Equal(t, 2, r.Len())
	handlers := r.GetHandlers("booking.created")
	if assert.Len(t, handlers, 2, "duplicate registration is ignored") {
		assert.Same(t, typed, handlers[0])
		assert.Same(t, wildcard, handlers[1])
	}
	assert.Len(t, r.GetHandlers("contract.sent"), 1)

	r.Unregister(typed)
	assert.Len(t, r.GetHandlers("booking.created"), 1)
	assert.Len(t, r.GetHandlers("booking.cancelled"), 1)
	assert.Equal(t, 1, r.Len())

	r.Unregister(wildcard)
	assert.Empty(t, r.GetHandlers("booking.created"))
	assert.Equal(t, 0, r.Len())
}
