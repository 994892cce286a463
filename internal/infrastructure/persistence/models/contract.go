package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rentals/backend/internal/domain/contract"
	"github.com/rentals/backend/internal/domain/property"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ContractModel is the persistence model for the Contract aggregate.
type ContractModel struct {
	AggregateModel
	PropertyID         uuid.UUID               `gorm:"type:uuid;not null;index"`
	OwnerID            uuid.UUID               `gorm:"type:uuid;not null;index"`
	TenantID           uuid.UUID               `gorm:"type:uuid;not null;index"`
	Status             contract.ContractStatus `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	StartDate          time.Time               `gorm:"type:date;not null"`
	EndDate            time.Time               `gorm:"type:date;not null;index"`
	MonthlyRent        decimal.Decimal         `gorm:"type:decimal(12,2);not null"`
	Charges            decimal.Decimal         `gorm:"type:decimal(12,2);not null;default:0"`
	Deposit            decimal.Decimal         `gorm:"type:decimal(12,2);not null;default:0"`
	Terms              *string                 `gorm:"type:text"`
	Content            *string                 `gorm:"type:text"`
	CustomClauses      datatypes.JSON          `gorm:"type:jsonb"`
	OwnerSignature     *string                 `gorm:"type:text"`
	TenantSignature    *string                 `gorm:"type:text"`
	OwnerSignedAt      *time.Time
	TenantSignedAt     *time.Time
	SentAt             *time.Time
	ActivatedAt        *time.Time
	TerminatedAt       *time.Time
	CancelledAt        *time.Time
	ExpiredAt          *time.Time
	CancellationReason *string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ContractModel) TableName() string {
	return "contracts"
}

// ToDomain converts the persistence model to a domain Contract.
func (m *ContractModel) ToDomain() *contract.Contract {
	clauses := []string{}
	if len(m.CustomClauses) > 0 {
		// A malformed column is treated as no clauses
		_ = json.Unmarshal(m.CustomClauses, &clauses)
	}
	return &contract.Contract{
		BaseAggregateRoot:  m.ToAggregateRoot(),
		PropertyID:         m.PropertyID,
		OwnerID:            m.OwnerID,
		TenantID:           m.TenantID,
		Status:             m.Status,
		StartDate:          property.NormalizeDate(m.StartDate),
		EndDate:            property.NormalizeDate(m.EndDate),
		MonthlyRent:        m.MonthlyRent,
		Charges:            m.Charges,
		Deposit:            m.Deposit,
		Terms:              m.Terms,
		Content:            m.Content,
		CustomClauses:      clauses,
		OwnerSignature:     m.OwnerSignature,
		TenantSignature:    m.TenantSignature,
		OwnerSignedAt:      m.OwnerSignedAt,
		TenantSignedAt:     m.TenantSignedAt,
		SentAt:             m.SentAt,
		ActivatedAt:        m.ActivatedAt,
		TerminatedAt:       m.TerminatedAt,
		CancelledAt:        m.CancelledAt,
		ExpiredAt:          m.ExpiredAt,
		CancellationReason: m.CancellationReason,
	}
}

// FromDomain populates the persistence model from a domain Contract.
func (m *ContractModel) FromDomain(c *contract.Contract) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.PropertyID = c.PropertyID
	m.OwnerID = c.OwnerID
	m.TenantID = c.TenantID
	m.Status = c.Status
	m.StartDate = property.NormalizeDate(c.StartDate)
	m.EndDate = property.NormalizeDate(c.EndDate)
	m.MonthlyRent = c.MonthlyRent
	m.Charges = c.Charges
	m.Deposit = c.Deposit
	m.Terms = c.Terms
	m.Content = c.Content
	m.CustomClauses = ClausesJSON(c.CustomClauses)
	m.OwnerSignature = c.OwnerSignature
	m.TenantSignature = c.TenantSignature
	m.OwnerSignedAt = c.OwnerSignedAt
	m.TenantSignedAt = c.TenantSignedAt
	m.SentAt = c.SentAt
	m.ActivatedAt = c.ActivatedAt
	m.TerminatedAt = c.TerminatedAt
	m.CancelledAt = c.CancelledAt
	m.ExpiredAt = c.ExpiredAt
	m.CancellationReason = c.CancellationReason
}

// ContractModelFromDomain creates a new persistence model from a domain Contract.
func ContractModelFromDomain(c *contract.Contract) *ContractModel {
	m := &ContractModel{}
	m.FromDomain(c)
	return m
}

// ClausesJSON encodes custom clauses for the jsonb column
func ClausesJSON(clauses []string) datatypes.JSON {
	if clauses == nil {
		clauses = []string{}
	}
	b, err := json.Marshal(clauses)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(b)
}
