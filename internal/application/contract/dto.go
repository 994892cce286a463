package contract

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentals/backend/internal/domain/contract"
	"github.com/rentals/backend/internal/domain/property"
	"github.com/shopspring/decimal"
)

// CreateContractRequest represents an owner's request to draft a lease
type CreateContractRequest struct {
	PropertyID    uuid.UUID        `json:"propertyId" binding:"required"`
	TenantID      uuid.UUID        `json:"tenantId" binding:"required"`
	StartDate     string           `json:"startDate" binding:"required,isodate"`
	EndDate       string           `json:"endDate" binding:"required,isodate"`
	MonthlyRent   decimal.Decimal  `json:"monthlyRent"`
	Charges       *decimal.Decimal `json:"charges"`
	Deposit       *decimal.Decimal `json:"deposit"`
	Terms         *string          `json:"terms" binding:"omitempty,max=20000"`
	Content       *string          `json:"content" binding:"omitempty,max=200000"`
	CustomClauses []string         `json:"customClauses" binding:"omitempty,max=50,dive,max=2000"`
}

// UpdateContractRequest represents a partial update of lease terms
type UpdateContractRequest struct {
	StartDate     *string          `json:"startDate" binding:"omitempty,isodate"`
	EndDate       *string          `json:"endDate" binding:"omitempty,isodate"`
	MonthlyRent   *decimal.Decimal `json:"monthlyRent"`
	Charges       *decimal.Decimal `json:"charges"`
	Deposit       *decimal.Decimal `json:"deposit"`
	Terms         *string          `json:"terms" binding:"omitempty,max=20000"`
	Content       *string          `json:"content" binding:"omitempty,max=200000"`
	CustomClauses *[]string        `json:"customClauses" binding:"omitempty,max=50,dive,max=2000"`
}

// ToPatch converts the request into a domain patch
func (r UpdateContractRequest) ToPatch() (contract.TermsPatch, error) {
	patch := contract.TermsPatch{
		MonthlyRent: r.MonthlyRent,
		Charges:     r.Charges,
		Deposit:     r.Deposit,
		Terms:       r.Terms,
		Content:     r.Content,
	}
	if r.StartDate != nil {
		d, err := property.ParseDate(*r.StartDate)
		if err != nil {
			return patch, err
		}
		patch.StartDate = &d
	}
	if r.EndDate != nil {
		d, err := property.ParseDate(*r.EndDate)
		if err != nil {
			return patch, err
		}
		patch.EndDate = &d
	}
	if r.CustomClauses != nil {
		patch.CustomClauses = *r.CustomClauses
		if patch.CustomClauses == nil {
			patch.CustomClauses = []string{}
		}
	}
	return patch, nil
}

// SignContractRequest carries the caller's signature
type SignContractRequest struct {
	Signature string `json:"signature" binding:"required,max=100000"`
}

// CancelContractRequest carries an optional cancellation reason
type CancelContractRequest struct {
	Reason *string `json:"reason" binding:"omitempty,max=1000"`
}

// ContractListFilter represents filters for contract listings
type ContractListFilter struct {
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Status     string `form:"status" binding:"omitempty,oneof=DRAFT SENT SIGNED ACTIVE TERMINATED CANCELLED EXPIRED"`
	PropertyID string `form:"property_id" binding:"omitempty,uuid"`
}

// ContractResponse represents a contract in API responses
type ContractResponse struct {
	ID                 uuid.UUID       `json:"id"`
	PropertyID         uuid.UUID       `json:"propertyId"`
	OwnerID            uuid.UUID       `json:"ownerId"`
	TenantID           uuid.UUID       `json:"tenantId"`
	Status             string          `json:"status"`
	StartDate          string          `json:"startDate"`
	EndDate            string          `json:"endDate"`
	MonthlyRent        decimal.Decimal `json:"monthlyRent"`
	Charges            decimal.Decimal `json:"charges"`
	Deposit            decimal.Decimal `json:"deposit"`
	Terms              *string         `json:"terms,omitempty"`
	Content            *string         `json:"content,omitempty"`
	CustomClauses      []string        `json:"customClauses"`
	OwnerSigned        bool            `json:"ownerSigned"`
	TenantSigned       bool            `json:"tenantSigned"`
	OwnerSignedAt      *time.Time      `json:"ownerSignedAt,omitempty"`
	TenantSignedAt     *time.Time      `json:"tenantSignedAt,omitempty"`
	SentAt             *time.Time      `json:"sentAt,omitempty"`
	ActivatedAt        *time.Time      `json:"activatedAt,omitempty"`
	TerminatedAt       *time.Time      `json:"terminatedAt,omitempty"`
	CancelledAt        *time.Time      `json:"cancelledAt,omitempty"`
	ExpiredAt          *time.Time      `json:"expiredAt,omitempty"`
	CancellationReason *string         `json:"cancellationReason,omitempty"`
	Version            int             `json:"version"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

// ContractListResponse is a page of contracts
type ContractListResponse struct {
	Items []ContractResponse `json:"items"`
	Total int64              `json:"total"`
}

// ToContractResponse converts a domain contract to its response. Signature
// payloads stay server-side; only their presence is exposed.
func ToContractResponse(c *contract.Contract) ContractResponse {
	clauses := c.CustomClauses
	if clauses == nil {
		clauses = []string{}
	}
	return ContractResponse{
		ID:                 c.ID,
		PropertyID:         c.PropertyID,
		OwnerID:            c.OwnerID,
		TenantID:           c.TenantID,
		Status:             string(c.Status),
		StartDate:          c.StartDate.Format(property.DateLayout),
		EndDate:            c.EndDate.Format(property.DateLayout),
		MonthlyRent:        c.MonthlyRent,
		Charges:            c.Charges,
		Deposit:            c.Deposit,
		Terms:              c.Terms,
		Content:            c.Content,
		CustomClauses:      clauses,
		OwnerSigned:        c.OwnerSignature != nil,
		TenantSigned:       c.TenantSignature != nil,
		OwnerSignedAt:      c.OwnerSignedAt,
		TenantSignedAt:     c.TenantSignedAt,
		SentAt:             c.SentAt,
		ActivatedAt:        c.ActivatedAt,
		TerminatedAt:       c.TerminatedAt,
		CancelledAt:        c.CancelledAt,
		ExpiredAt:          c.ExpiredAt,
		CancellationReason: c.CancellationReason,
		Version:            c.Version,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}

// ContractPrintData is everything a renderer needs to print a lease
type ContractPrintData struct {
	Contract      ContractResponse
	PropertyTitle string
	Address       string
	GeneratedAt   time.Time
}
