package contract

import (
	"github.com/google/uuid"
	"github.com/rentals/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeContract = "Contract"

// Event type constants
const (
	EventTypeContractCreated     = "contract.created"
	EventTypeContractSent        = "contract.sent"
	EventTypeContractPartySigned = "contract.party_signed"
	EventTypeContractSigned      = "contract.signed"
	EventTypeContractActivated   = "contract.activated"
	EventTypeContractTerminated  = "contract.terminated"
	EventTypeContractCancelled   = "contract.cancelled"
	EventTypeContractExpired     = "contract.expired"
)

// ContractParties carries the parties of the contract for notification routing
type ContractParties struct {
	PropertyID uuid.UUID `json:"property_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	TenantID   uuid.UUID `json:"tenant_id"`
}

func partiesOf(c *Contract) ContractParties {
	return ContractParties{PropertyID: c.PropertyID, OwnerID: c.OwnerID, TenantID: c.TenantID}
}

// ContractCreatedEvent is raised when an owner drafts a contract
type ContractCreatedEvent struct {
	shared.BaseDomainEvent
	ContractParties
	MonthlyRent decimal.Decimal `json:"monthly_rent"`
}

// NewContractCreatedEvent creates a new ContractCreatedEvent
func NewContractCreatedEvent(c *Contract) *ContractCreatedEvent {
	return &ContractCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeContractCreated, AggregateTypeContract, c.ID, c.OwnerID),
		ContractParties: partiesOf(c),
		MonthlyRent:     c.MonthlyRent,
	}
}

// ContractSentEvent is raised when a draft is sent to the tenant
type ContractSentEvent struct {
	shared.BaseDomainEvent
	ContractParties
}

// NewContractSentEvent creates a new ContractSentEvent
func NewContractSentEvent(c *Contract) *ContractSentEvent {
	return &ContractSentEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeContractSent, AggregateTypeContract, c.ID, c.OwnerID),
		ContractParties: partiesOf(c),
	}
}

// ContractPartySignedEvent is raised each time one party signs
type ContractPartySignedEvent struct {
	shared.BaseDomainEvent
	ContractParties
	Party Party `json:"party"`
}

// NewContractSignedEvent creates a new ContractPartySignedEvent
func NewContractSignedEvent(c *Contract, party Party, actorID uuid.UUID) *ContractPartySignedEvent {
	return &ContractPartySignedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeContractPartySigned, AggregateTypeContract, c.ID, actorID),
		ContractParties: partiesOf(c),
		Party:           party,
	}
}

// ContractFullySignedEvent is raised when the second signature lands
type ContractFullySignedEvent struct {
	shared.BaseDomainEvent
	ContractParties
}

// NewContractFullySignedEvent creates a new ContractFullySignedEvent
func NewContractFullySignedEvent(c *Contract) *ContractFullySignedEvent {
	return &ContractFullySignedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeContractSigned, AggregateTypeContract, c.ID, uuid.Nil),
		ContractParties: partiesOf(c),
	}
}

// ContractActivatedEvent is raised when the lease starts
type ContractActivatedEvent struct {
	shared.BaseDomainEvent
	ContractParties
}

// NewContractActivatedEvent creates a new ContractActivatedEvent
func NewContractActivatedEvent(c *Contract, actorID uuid.UUID) *ContractActivatedEvent {
	return &ContractActivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeContractActivated, AggregateTypeContract, c.ID, actorID),
		ContractParties: partiesOf(c),
	}
}

// ContractTerminatedEvent is raised when the owner terminates the lease
type ContractTerminatedEvent struct {
	shared.BaseDomainEvent
	ContractParties
}

// NewContractTerminatedEvent creates a new ContractTerminatedEvent
func NewContractTerminatedEvent(c *Contract, actorID uuid.UUID) *ContractTerminatedEvent {
	return &ContractTerminatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeContractTerminated, AggregateTypeContract, c.ID, actorID),
		ContractParties: partiesOf(c),
	}
}

// ContractCancelledEvent is raised when the owner cancels the contract
type ContractCancelledEvent struct {
	shared.BaseDomainEvent
	ContractParties
	Reason string `json:"reason,omitempty"`
}

// NewContractCancelledEvent creates a new ContractCancelledEvent
func NewContractCancelledEvent(c *Contract, actorID uuid.UUID) *ContractCancelledEvent {
	e := &ContractCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeContractCancelled, AggregateTypeContract, c.ID, actorID),
		ContractParties: partiesOf(c),
	}
	if c.CancellationReason != nil {
		e.Reason = *c.CancellationReason
	}
	return e
}

// ContractExpiredEvent is raised by the lifecycle sweeper
type ContractExpiredEvent struct {
	shared.BaseDomainEvent
	ContractParties
}

// NewContractExpiredEvent creates a new ContractExpiredEvent
func NewContractExpiredEvent(c *Contract) *ContractExpiredEvent {
	return &ContractExpiredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeContractExpired, AggregateTypeContract, c.ID, uuid.Nil),
		ContractParties: partiesOf(c),
	}
}
