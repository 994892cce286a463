package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appproperty "github.com/rentals/backend/internal/application/property"
	"github.com/rentals/backend/internal/domain/property"
	"github.com/rentals/backend/internal/domain/shared"
)

// PropertyService is the application surface the property handler needs
type PropertyService interface {
	Create(ctx context.Context, actor shared.Actor, req appproperty.CreatePropertyRequest) (*appproperty.PropertyResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*appproperty.PropertyResponse, error)
	Update(ctx context.Context, actor shared.Actor, id uuid.UUID, req appproperty.UpdatePropertyRequest) (*appproperty.PropertyResponse, error)
	GetAvailability(ctx context.Context, id uuid.UUID) (*appproperty.AvailabilityResponse, error)
	ReplaceAvailability(ctx context.Context, actor shared.Actor, id uuid.UUID, req appproperty.ReplaceAvailabilityRequest) (*appproperty.AvailabilityResponse, error)
	AddOverride(ctx context.Context, actor shared.Actor, id uuid.UUID, req appproperty.CreateOverrideRequest) (*appproperty.DateOverrideResponse, error)
	DeleteOverride(ctx context.Context, actor shared.Actor, id, overrideID uuid.UUID) error
	GetAvailableSlots(ctx context.Context, id uuid.UUID, date time.Time) (*appproperty.AvailableSlotsResponse, error)
}

// PropertyHandler handles property and availability endpoints
type PropertyHandler struct {
	BaseHandler
	propertyService PropertyService
}

// NewPropertyHandler creates a new PropertyHandler
func NewPropertyHandler(propertyService PropertyService) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService}
}

// AvailableSlotsQuery is the query of the available-slots endpoint
type AvailableSlotsQuery struct {
	Date string `form:"date" binding:"required,isodate" example:"2026-05-04"`
}

// GetAvailableSlots godoc
// @ID           getPropertyAvailableSlots
// @Summary      List bookable visit times
// @Description  Resolves the free "HH:MM" visit start times of a property on a date
// @Tags         properties
// @Produce      json
// @Param        id    path      string  true  "Property ID" format(uuid)
// @Param        date  query     string  true  "Date (YYYY-MM-DD)"
// @Success      200   {object}  APIResponse[appproperty.AvailableSlotsResponse]
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /properties/{id}/available-slots [get]
func (h *PropertyHandler) GetAvailableSlots(c *gin.Context) {
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	var q AvailableSlotsQuery
	if !h.BindQuery(c, &q) {
		return
	}
	date, err := property.ParseDate(q.Date)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	slots, err := h.propertyService.GetAvailableSlots(c.Request.Context(), id, date)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, slots)
}

// Create godoc
// @ID           createProperty
// @Summary      List a new property
// @Tags         properties
// @Accept       json
// @Produce      json
// @Param        request  body      appproperty.CreatePropertyRequest  true  "Property"
// @Success      201      {object}  APIResponse[appproperty.PropertyResponse]
// @Failure      400      {object}  ErrorResponse
// @Failure      401      {object}  ErrorResponse
// @Failure      403      {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /properties [post]
func (h *PropertyHandler) Create(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	var req appproperty.CreatePropertyRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p, err := h.propertyService.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, p)
}

// Get godoc
// @ID           getProperty
// @Summary      Get a property
// @Tags         properties
// @Produce      json
// @Param        id  path      string  true  "Property ID" format(uuid)
// @Success      200 {object}  APIResponse[appproperty.PropertyResponse]
// @Failure      404 {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /properties/{id} [get]
func (h *PropertyHandler) Get(c *gin.Context) {
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	p, err := h.propertyService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// Update godoc
// @ID           updateProperty
// @Summary      Update a property
// @Tags         properties
// @Accept       json
// @Produce      json
// @Param        id       path      string                             true  "Property ID" format(uuid)
// @Param        request  body      appproperty.UpdatePropertyRequest  true  "Fields to change"
// @Success      200      {object}  APIResponse[appproperty.PropertyResponse]
// @Failure      400      {object}  ErrorResponse
// @Failure      403      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /properties/{id} [put]
func (h *PropertyHandler) Update(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	var req appproperty.UpdatePropertyRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p, err := h.propertyService.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// GetAvailability godoc
// @ID           getPropertyAvailability
// @Summary      Get the weekly schedule and date overrides
// @Tags         properties
// @Produce      json
// @Param        id  path      string  true  "Property ID" format(uuid)
// @Success      200 {object}  APIResponse[appproperty.AvailabilityResponse]
// @Failure      404 {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /properties/{id}/availability [get]
func (h *PropertyHandler) GetAvailability(c *gin.Context) {
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	a, err := h.propertyService.GetAvailability(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, a)
}

// ReplaceAvailability godoc
// @ID           replacePropertyAvailability
// @Summary      Replace the weekly visit schedule
// @Tags         properties
// @Accept       json
// @Produce      json
// @Param        id       path      string                                  true  "Property ID" format(uuid)
// @Param        request  body      appproperty.ReplaceAvailabilityRequest  true  "Weekly windows"
// @Success      200      {object}  APIResponse[appproperty.AvailabilityResponse]
// @Failure      400      {object}  ErrorResponse
// @Failure      403      {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /properties/{id}/availability [put]
func (h *PropertyHandler) ReplaceAvailability(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	var req appproperty.ReplaceAvailabilityRequest
	if !h.BindJSON(c, &req) {
		return
	}

	a, err := h.propertyService.ReplaceAvailability(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, a)
}

// AddOverride godoc
// @ID           createPropertyOverride
// @Summary      Block a date or add extra visit hours
// @Tags         properties
// @Accept       json
// @Produce      json
// @Param        id       path      string                             true  "Property ID" format(uuid)
// @Param        request  body      appproperty.CreateOverrideRequest  true  "Override"
// @Success      201      {object}  APIResponse[appproperty.DateOverrideResponse]
// @Failure      400      {object}  ErrorResponse
// @Failure      403      {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /properties/{id}/overrides [post]
func (h *PropertyHandler) AddOverride(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	var req appproperty.CreateOverrideRequest
	if !h.BindJSON(c, &req) {
		return
	}

	o, err := h.propertyService.AddOverride(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, o)
}

// DeleteOverride godoc
// @ID           deletePropertyOverride
// @Summary      Remove a date override
// @Tags         properties
// @Param        id          path  string  true  "Property ID" format(uuid)
// @Param        overrideId  path  string  true  "Override ID" format(uuid)
// @Success      204
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /properties/{id}/overrides/{overrideId} [delete]
func (h *PropertyHandler) DeleteOverride(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	overrideID, ok := h.PathID(c, "overrideId")
	if !ok {
		return
	}

	if err := h.propertyService.DeleteOverride(c.Request.Context(), actor, id, overrideID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
