package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appbooking "github.com/rentals/backend/internal/application/booking"
	appproperty "github.com/rentals/backend/internal/application/property"
	"github.com/rentals/backend/internal/domain/shared"
	"github.com/rentals/backend/internal/infrastructure/export"
	"github.com/rentals/backend/internal/infrastructure/logger"
	"github.com/rentals/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// BookingService is the application surface the booking handler needs
type BookingService interface {
	Create(ctx context.Context, actor shared.Actor, req appbooking.CreateBookingRequest) (*appbooking.BookingResponse, error)
	GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*appbooking.BookingResponse, error)
	Update(ctx context.Context, actor shared.Actor, id uuid.UUID, req appbooking.UpdateBookingRequest) (*appbooking.BookingResponse, error)
	Cancel(ctx context.Context, actor shared.Actor, id uuid.UUID, req appbooking.CancelBookingRequest) (*appbooking.BookingResponse, error)
	Confirm(ctx context.Context, actor shared.Actor, id uuid.UUID) (*appbooking.BookingResponse, error)
	ListMine(ctx context.Context, actor shared.Actor, filter appbooking.BookingListFilter) (*appbooking.BookingListResponse, error)
	ListForProperty(ctx context.Context, actor shared.Actor, propertyID uuid.UUID, filter appbooking.BookingListFilter) (*appbooking.BookingListResponse, error)
	ExportForProperty(ctx context.Context, actor shared.Actor, propertyID uuid.UUID) (*appproperty.PropertyResponse, []appbooking.BookingResponse, error)
}

// BookingHandler handles visit booking endpoints
type BookingHandler struct {
	BaseHandler
	bookingService BookingService
	now            func() time.Time
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(bookingService BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService, now: time.Now}
}

// Create godoc
// @ID           createBooking
// @Summary      Request a property visit
// @Description  Books a visit slot. The slot must be free and offered by the property's availability.
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        request  body      appbooking.CreateBookingRequest  true  "Booking request"
// @Success      201      {object}  APIResponse[appbooking.BookingResponse]
// @Failure      400      {object}  ErrorResponse
// @Failure      401      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	var req appbooking.CreateBookingRequest
	if !h.BindJSON(c, &req) {
		return
	}

	b, err := h.bookingService.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, b)
}

// ListMine godoc
// @ID           listMyBookings
// @Summary      List the caller's bookings
// @Tags         bookings
// @Produce      json
// @Param        page       query     int  false  "Page number"  default(1)
// @Param        page_size  query     int  false  "Page size"    default(20)
// @Success      200        {object}  APIResponse[[]appbooking.BookingResponse]
// @Failure      401        {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /bookings [get]
func (h *BookingHandler) ListMine(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	var filter appbooking.BookingListFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	list, err := h.bookingService.ListMine(c.Request.Context(), actor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page := dto.Pagination{Page: filter.Page, PageSize: filter.PageSize}.Defaults()
	h.SuccessWithMeta(c, list.Items, list.Total, page.Page, page.PageSize)
}

// Get godoc
// @ID           getBooking
// @Summary      Get a booking
// @Tags         bookings
// @Produce      json
// @Param        id   path      string  true  "Booking ID" format(uuid)
// @Success      200  {object}  APIResponse[appbooking.BookingResponse]
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	b, err := h.bookingService.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, b)
}

// Update godoc
// @ID           updateBooking
// @Summary      Update a booking
// @Description  Tenants may move the visit and edit their notes. Owners may also set ownerNotes and status.
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        id       path      string                           true  "Booking ID" format(uuid)
// @Param        request  body      appbooking.UpdateBookingRequest  true  "Fields to change"
// @Success      200      {object}  APIResponse[appbooking.BookingResponse]
// @Failure      400      {object}  ErrorResponse
// @Failure      403      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /bookings/{id} [put]
func (h *BookingHandler) Update(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	var req appbooking.UpdateBookingRequest
	if !h.BindJSON(c, &req) {
		return
	}

	b, err := h.bookingService.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, b)
}

// Cancel godoc
// @ID           cancelBooking
// @Summary      Cancel a booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        id       path      string                           true   "Booking ID" format(uuid)
// @Param        request  body      appbooking.CancelBookingRequest  false  "Cancellation reason"
// @Success      200      {object}  APIResponse[appbooking.BookingResponse]
// @Failure      400      {object}  ErrorResponse
// @Failure      403      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	var req appbooking.CancelBookingRequest
	if !h.BindOptionalJSON(c, &req) {
		return
	}

	b, err := h.bookingService.Cancel(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, b)
}

// Confirm godoc
// @ID           confirmBooking
// @Summary      Confirm a pending booking
// @Tags         bookings
// @Produce      json
// @Param        id   path      string  true  "Booking ID" format(uuid)
// @Success      200  {object}  APIResponse[appbooking.BookingResponse]
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /bookings/{id}/confirm [post]
func (h *BookingHandler) Confirm(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	b, err := h.bookingService.Confirm(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, b)
}

// ListForProperty godoc
// @ID           listPropertyBookings
// @Summary      List the bookings of a property
// @Tags         properties
// @Produce      json
// @Param        id         path      string  true   "Property ID" format(uuid)
// @Param        page       query     int     false  "Page number"  default(1)
// @Param        page_size  query     int     false  "Page size"    default(20)
// @Success      200        {object}  APIResponse[[]appbooking.BookingResponse]
// @Failure      403        {object}  ErrorResponse
// @Failure      404        {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /properties/{id}/bookings [get]
func (h *BookingHandler) ListForProperty(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	var filter appbooking.BookingListFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	list, err := h.bookingService.ListForProperty(c.Request.Context(), actor, id, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page := dto.Pagination{Page: filter.Page, PageSize: filter.PageSize}.Defaults()
	h.SuccessWithMeta(c, list.Items, list.Total, page.Page, page.PageSize)
}

// Export godoc
// @ID           exportPropertyBookings
// @Summary      Download the bookings of a property as xlsx
// @Tags         properties
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id   path  string  true  "Property ID" format(uuid)
// @Success      200  {file}    binary
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /properties/{id}/bookings/export [get]
func (h *BookingHandler) Export(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	p, bookings, err := h.bookingService.ExportForProperty(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	now := h.now()
	data, err := export.BookingsWorkbook(*p, bookings, now)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	logger.GetGinLogger(c).Info("Bookings exported",
		zap.String("property_id", p.ID.String()),
		zap.Int("rows", len(bookings)),
	)

	c.Header("Content-Disposition", `attachment; filename="`+export.FileName(*p, now)+`"`)
	c.Data(http.StatusOK, export.ContentType, data)
}
