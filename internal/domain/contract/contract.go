package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rentals/backend/internal/domain/property"
	"github.com/rentals/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ContractStatus represents the lifecycle status of a lease contract
type ContractStatus string

const (
	ContractStatusDraft      ContractStatus = "DRAFT"
	ContractStatusSent       ContractStatus = "SENT"
	ContractStatusSigned     ContractStatus = "SIGNED"
	ContractStatusActive     ContractStatus = "ACTIVE"
	ContractStatusTerminated ContractStatus = "TERMINATED"
	ContractStatusCancelled  ContractStatus = "CANCELLED"
	ContractStatusExpired    ContractStatus = "EXPIRED"
)

// IsValid checks if the status is a valid ContractStatus
func (s ContractStatus) IsValid() bool {
	switch s {
	case ContractStatusDraft, ContractStatusSent, ContractStatusSigned, ContractStatusActive,
		ContractStatusTerminated, ContractStatusCancelled, ContractStatusExpired:
		return true
	}
	return false
}

// String returns the string representation of ContractStatus
func (s ContractStatus) String() string {
	return string(s)
}

// IsTerminal reports whether the contract has reached an end state
func (s ContractStatus) IsTerminal() bool {
	return s == ContractStatusTerminated || s == ContractStatusCancelled || s == ContractStatusExpired
}

// IsEditable reports whether lease terms may still change
func (s ContractStatus) IsEditable() bool {
	return s == ContractStatusDraft || s == ContractStatusSent || s == ContractStatusSigned
}

// CanTransitionTo checks if the status can transition to the target status
func (s ContractStatus) CanTransitionTo(target ContractStatus) bool {
	switch s {
	case ContractStatusDraft:
		return target == ContractStatusSent || target == ContractStatusSigned ||
			target == ContractStatusCancelled || target == ContractStatusTerminated
	case ContractStatusSent:
		return target == ContractStatusSigned || target == ContractStatusCancelled || target == ContractStatusTerminated
	case ContractStatusSigned:
		// Back to DRAFT/SENT when edited terms void the signatures
		return target == ContractStatusActive || target == ContractStatusCancelled || target == ContractStatusTerminated ||
			target == ContractStatusSent || target == ContractStatusDraft
	case ContractStatusActive:
		return target == ContractStatusTerminated || target == ContractStatusCancelled || target == ContractStatusExpired
	case ContractStatusTerminated, ContractStatusCancelled, ContractStatusExpired:
		return false // Terminal states
	}
	return false
}

// Party identifies which side of the contract a user is on
type Party string

const (
	PartyOwner  Party = "OWNER"
	PartyTenant Party = "TENANT"
)

// Contract is a lease between a property owner and a tenant
type Contract struct {
	shared.BaseAggregateRoot
	PropertyID         uuid.UUID
	OwnerID            uuid.UUID
	TenantID           uuid.UUID
	Status             ContractStatus
	StartDate          time.Time
	EndDate            time.Time
	MonthlyRent        decimal.Decimal
	Charges            decimal.Decimal
	Deposit            decimal.Decimal
	Terms              *string
	Content            *string
	CustomClauses      []string
	OwnerSignature     *string
	TenantSignature    *string
	OwnerSignedAt      *time.Time
	TenantSignedAt     *time.Time
	SentAt             *time.Time
	ActivatedAt        *time.Time
	TerminatedAt       *time.Time
	CancelledAt        *time.Time
	ExpiredAt          *time.Time
	CancellationReason *string
}

// LeaseTerms groups the negotiable fields of a contract
type LeaseTerms struct {
	StartDate     time.Time
	EndDate       time.Time
	MonthlyRent   decimal.Decimal
	Charges       decimal.Decimal
	Deposit       decimal.Decimal
	Terms         *string
	Content       *string
	CustomClauses []string
}

func (t LeaseTerms) validate() error {
	if t.StartDate.IsZero() || t.EndDate.IsZero() {
		return shared.NewInvalidInput("Start date and end date are required")
	}
	if !t.EndDate.After(t.StartDate) {
		return shared.NewInvalidInput("End date must be after start date")
	}
	if t.MonthlyRent.LessThanOrEqual(decimal.Zero) {
		return shared.NewInvalidInput("Monthly rent must be positive")
	}
	if t.Charges.IsNegative() {
		return shared.NewInvalidInput("Charges cannot be negative")
	}
	if t.Deposit.IsNegative() {
		return shared.NewInvalidInput("Deposit cannot be negative")
	}
	return nil
}

// NewContract creates a DRAFT contract between the property owner and a tenant
func NewContract(propertyID, ownerID, tenantID uuid.UUID, terms LeaseTerms) (*Contract, error) {
	if propertyID == uuid.Nil {
		return nil, shared.NewInvalidInput("Property ID cannot be empty")
	}
	if ownerID == uuid.Nil || tenantID == uuid.Nil {
		return nil, shared.NewInvalidInput("Owner and tenant are required")
	}
	if ownerID == tenantID {
		return nil, shared.NewInvalidInput("Owner and tenant must be different users")
	}
	terms.StartDate = property.NormalizeDate(terms.StartDate)
	terms.EndDate = property.NormalizeDate(terms.EndDate)
	if err := terms.validate(); err != nil {
		return nil, err
	}

	c := &Contract{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PropertyID:        propertyID,
		OwnerID:           ownerID,
		TenantID:          tenantID,
		Status:            ContractStatusDraft,
	}
	c.setTerms(terms)
	c.AddDomainEvent(NewContractCreatedEvent(c))
	return c, nil
}

func (c *Contract) setTerms(t LeaseTerms) {
	c.StartDate = t.StartDate
	c.EndDate = t.EndDate
	c.MonthlyRent = t.MonthlyRent
	c.Charges = t.Charges
	c.Deposit = t.Deposit
	c.Terms = trimmed(t.Terms)
	c.Content = trimmed(t.Content)
	c.CustomClauses = cleanClauses(t.CustomClauses)
}

// LeaseTerms returns the current negotiable fields
func (c *Contract) LeaseTerms() LeaseTerms {
	return LeaseTerms{
		StartDate:     c.StartDate,
		EndDate:       c.EndDate,
		MonthlyRent:   c.MonthlyRent,
		Charges:       c.Charges,
		Deposit:       c.Deposit,
		Terms:         c.Terms,
		Content:       c.Content,
		CustomClauses: c.CustomClauses,
	}
}

// PartyOf returns the side userID is on, if any
func (c *Contract) PartyOf(userID uuid.UUID) (Party, bool) {
	switch {
	case userID == uuid.Nil:
		return "", false
	case userID == c.OwnerID:
		return PartyOwner, true
	case userID == c.TenantID:
		return PartyTenant, true
	}
	return "", false
}

// IsParty reports whether userID is the owner or the tenant
func (c *Contract) IsParty(userID uuid.UUID) bool {
	_, ok := c.PartyOf(userID)
	return ok
}

// CanRead reports whether actor may view the contract
func (c *Contract) CanRead(actor shared.Actor) bool {
	return actor.IsAdmin() || c.IsParty(actor.UserID)
}

func (c *Contract) requireOwner(actor shared.Actor, action string) error {
	if !actor.Is(c.OwnerID) {
		return shared.NewForbidden(fmt.Sprintf("Only the contract owner can %s this contract", action))
	}
	return nil
}

// IsFullySigned reports whether both parties have signed
func (c *Contract) IsFullySigned() bool {
	return c.OwnerSignature != nil && c.TenantSignature != nil
}

// IsExpiredAt reports whether an active lease has passed its end date
func (c *Contract) IsExpiredAt(now time.Time) bool {
	return c.Status == ContractStatusActive && property.NormalizeDate(now).After(c.EndDate)
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func cleanClauses(clauses []string) []string {
	out := make([]string, 0, len(clauses))
	for _, c := range clauses {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}
