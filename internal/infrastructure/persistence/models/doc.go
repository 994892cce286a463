// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Structure:
// - base.go: BaseModel and AggregateModel
// - property.go: properties, weekly visit slots and date overrides
// - booking.go: visit bookings
// - contract.go: lease contracts
// - document.go: contract documents
//
// The SQL files under migrations/ are authoritative for postgres. AllModels
// is used by AutoMigrate for the sqlite driver and repository tests.
package models

// AllModels lists every persisted model
func AllModels() []any {
	return []any{
		&PropertyModel{},
		&AvailabilitySlotModel{},
		&DateOverrideModel{},
		&BookingModel{},
		&ContractModel{},
		&ContractDocumentModel{},
	}
}
