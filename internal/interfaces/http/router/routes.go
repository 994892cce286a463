package router

import (
	"github.com/gin-gonic/gin"
	"github.com/rentals/backend/internal/domain/shared"
	"github.com/rentals/backend/internal/interfaces/http/handler"
	"github.com/rentals/backend/internal/interfaces/http/middleware"
)

// Handlers bundles the API handlers mounted under /api/v1
type Handlers struct {
	Property *handler.PropertyHandler
	Booking  *handler.BookingHandler
	Contract *handler.ContractHandler
	Document *handler.DocumentHandler
}

// APIGroups builds the route groups of the API. The authn chain must reject
// anonymous callers; it guards every route except the public slot lookup.
func APIGroups(h Handlers, authn ...gin.HandlerFunc) []RouteRegistrar {
	ownerOnly := middleware.RequireRoles(shared.RoleOwner, shared.RoleAdmin)

	public := NewDomainGroup("properties-public", "/properties").
		GET("/:id/available-slots", h.Property.GetAvailableSlots)

	properties := NewDomainGroup("properties", "/properties").Use(authn...).
		POST("", ownerOnly, h.Property.Create).
		GET("/:id", h.Property.Get).
		PUT("/:id", ownerOnly, h.Property.Update).
		GET("/:id/availability", h.Property.GetAvailability).
		PUT("/:id/availability", ownerOnly, h.Property.ReplaceAvailability).
		POST("/:id/overrides", ownerOnly, h.Property.AddOverride).
		DELETE("/:id/overrides/:overrideId", ownerOnly, h.Property.DeleteOverride).
		GET("/:id/bookings", ownerOnly, h.Booking.ListForProperty).
		GET("/:id/bookings/export", ownerOnly, h.Booking.Export)

	bookings := NewDomainGroup("bookings", "/bookings").Use(authn...).
		POST("", h.Booking.Create).
		GET("", h.Booking.ListMine).
		GET("/:id", h.Booking.Get).
		PUT("/:id", h.Booking.Update).
		POST("/:id/cancel", h.Booking.Cancel).
		POST("/:id/confirm", h.Booking.Confirm)

	contracts := NewDomainGroup("contracts", "/contracts").Use(authn...).
		POST("", ownerOnly, h.Contract.Create).
		GET("", h.Contract.List).
		GET("/:id", h.Contract.Get).
		PUT("/:id", h.Contract.Update).
		DELETE("/:id", h.Contract.Delete).
		PUT("/:id/send", h.Contract.Send).
		PUT("/:id/sign", h.Contract.Sign).
		PUT("/:id/activate", h.Contract.Activate).
		PUT("/:id/terminate", h.Contract.Terminate).
		PUT("/:id/cancel", h.Contract.Cancel).
		GET("/:id/pdf", h.Contract.PDF)

	documents := NewDomainGroup("documents", "/contracts/:id/documents").Use(authn...).
		POST("", h.Document.Upload).
		GET("", h.Document.Checklist).
		GET("/files", h.Document.List).
		POST("/upload-url", h.Document.UploadURL).
		PUT("/:docId/validate", h.Document.Validate).
		PUT("/:docId/reject", h.Document.Reject).
		DELETE("/:docId", h.Document.Delete)

	return []RouteRegistrar{public, properties, bookings, contracts, documents}
}
