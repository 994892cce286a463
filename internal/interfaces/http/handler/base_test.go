package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rentals/backend/internal/domain/shared"
	"github.com/rentals/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseHandler_HandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"not found", shared.NewNotFound("Booking"), http.StatusNotFound, dto.ErrCodeNotFound, "Booking not found"},
		{"forbidden", shared.NewForbidden("Not your booking"), http.StatusForbidden, dto.ErrCodeForbidden, "Not your booking"},
		{"unauthorized", shared.ErrUnauthorized, http.StatusUnauthorized, dto.ErrCodeUnauthorized, shared.ErrUnauthorized.Message},
		{"invalid state", shared.NewInvalidState("Only pending bookings can be confirmed"), http.StatusBadRequest, dto.ErrCodeInvalidState, "Only pending bookings can be confirmed"},
		{"conflict", shared.NewConflict("This time slot is already booked"), http.StatusBadRequest, dto.ErrCodeConflict, "This time slot is already booked"},
		{"invalid input", shared.NewInvalidInput("Visit date must be in the future"), http.StatusBadRequest, dto.ErrCodeInvalidInput, "Visit date must be in the future"},
		{"wrapped domain error", fmt.Errorf("load: %w", shared.NewNotFound("Contract")), http.StatusNotFound, dto.ErrCodeNotFound, "Contract not found"},
		{"infrastructure error", errors.New("connection refused"), http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var h BaseHandler
			engine := newTestEngine(shared.Actor{})
			engine.GET("/test", func(c *gin.Context) { h.HandleError(c, tt.err) })

			w := doRequest(engine, http.MethodGet, "/test", nil)
			requireErrorCode(t, w, tt.wantStatus, tt.wantCode)
			resp := decodeResponse(t, w)
			assert.Equal(t, tt.wantMsg, resp.Error.Message)
			assert.NotEmpty(t, resp.Error.RequestID)
		})
	}
}

func TestBaseHandler_HandleError_Nil(t *testing.T) {
	var h BaseHandler
	engine := newTestEngine(shared.Actor{})
	engine.GET("/test", func(c *gin.Context) {
		h.HandleError(c, nil)
		c.Status(http.StatusTeapot)
	})

	w := doRequest(engine, http.MethodGet, "/test", nil)
	assert.Equal(t, http.StatusTeapot, w.Code)
}

func TestBaseHandler_Actor(t *testing.T) {
	var h BaseHandler
	handle := func(c *gin.Context) {
		actor, ok := h.Actor(c)
		if !ok {
			return
		}
		c.String(http.StatusOK, actor.Role.String())
	}

	anon := newTestEngine(shared.Actor{})
	anon.GET("/test", handle)
	requireErrorCode(t, doRequest(anon, http.MethodGet, "/test", nil), http.StatusUnauthorized, dto.ErrCodeUnauthorized)

	authed := newTestEngine(newActor(shared.RoleOwner))
	authed.GET("/test", handle)
	w := doRequest(authed, http.MethodGet, "/test", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OWNER", w.Body.String())
}

func TestBaseHandler_PathID(t *testing.T) {
	var h BaseHandler
	engine := newTestEngine(shared.Actor{})
	engine.GET("/things/:id", func(c *gin.Context) {
		id, ok := h.PathID(c, "id")
		if !ok {
			return
		}
		c.String(http.StatusOK, id.String())
	})

	w := doRequest(engine, http.MethodGet, "/things/not-a-uuid", nil)
	requireErrorCode(t, w, http.StatusBadRequest, dto.ErrCodeInvalidInput)

	w = doRequest(engine, http.MethodGet, "/things/6f1c1f7e-8a51-4a3b-9f3f-1d2e3c4b5a69", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBaseHandler_BindJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name" binding:"required"`
	}
	var h BaseHandler
	engine := newTestEngine(shared.Actor{})
	engine.POST("/test", func(c *gin.Context) {
		var p payload
		if !h.BindJSON(c, &p) {
			return
		}
		c.String(http.StatusOK, p.Name)
	})
	engine.POST("/optional", func(c *gin.Context) {
		var p struct {
			Reason *string `json:"reason"`
		}
		if !h.BindOptionalJSON(c, &p) {
			return
		}
		c.Status(http.StatusNoContent)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		requireErrorCode(t, doRequest(engine, http.MethodPost, "/test", "{nope"), http.StatusBadRequest, dto.ErrCodeInvalidJSON)
	})

	t.Run("validation failure has details", func(t *testing.T) {
		w := doRequest(engine, http.MethodPost, "/test", map[string]string{})
		requireErrorCode(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
		resp := decodeResponse(t, w)
		require.Len(t, resp.Error.Details, 1)
		assert.Equal(t, "name", resp.Error.Details[0].Field)
	})

	t.Run("valid body", func(t *testing.T) {
		w := doRequest(engine, http.MethodPost, "/test", map[string]string{"name": "x"})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("optional body may be empty", func(t *testing.T) {
		w := doRequest(engine, http.MethodPost, "/optional", nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("optional body must still be valid JSON", func(t *testing.T) {
		requireErrorCode(t, doRequest(engine, http.MethodPost, "/optional", "[1,"), http.StatusBadRequest, dto.ErrCodeInvalidJSON)
	})
}
