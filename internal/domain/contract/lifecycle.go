package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/rentals/backend/internal/domain/property"
	"github.com/rentals/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Send moves a draft to SENT so the tenant can review and sign it
func (c *Contract) Send(actor shared.Actor) error {
	if err := c.requireOwner(actor, "send"); err != nil {
		return err
	}
	if c.Status != ContractStatusDraft {
		return shared.NewInvalidState(fmt.Sprintf("Cannot send contract in %s status", c.Status))
	}

	now := time.Now()
	c.Status = ContractStatusSent
	c.SentAt = &now
	c.UpdatedAt = now

	c.AddDomainEvent(NewContractSentEvent(c))
	return nil
}

// Sign records the caller's signature. Signing again overwrites the
// caller's previous signature and timestamp.
func (c *Contract) Sign(actor shared.Actor, signature string) error {
	party, ok := c.PartyOf(actor.UserID)
	if !ok {
		return shared.NewForbidden("Only the owner or the tenant can sign this contract")
	}
	if !c.Status.IsEditable() {
		return shared.NewInvalidState(fmt.Sprintf("Cannot sign contract in %s status", c.Status))
	}
	signature = strings.TrimSpace(signature)
	if signature == "" {
		return shared.NewInvalidInput("Signature cannot be empty")
	}

	now := time.Now()
	switch party {
	case PartyOwner:
		c.OwnerSignature = &signature
		c.OwnerSignedAt = &now
	case PartyTenant:
		c.TenantSignature = &signature
		c.TenantSignedAt = &now
	}
	c.UpdatedAt = now

	c.AddDomainEvent(NewContractSignedEvent(c, party, actor.UserID))
	c.evaluateSignatures()
	return nil
}

// evaluateSignatures keeps SIGNED equivalent to "both signatures present"
// for every pre-activation status.
func (c *Contract) evaluateSignatures() {
	switch {
	case c.IsFullySigned() && c.Status != ContractStatusSigned && c.Status.CanTransitionTo(ContractStatusSigned):
		c.Status = ContractStatusSigned
		c.AddDomainEvent(NewContractFullySignedEvent(c))
	case !c.IsFullySigned() && c.Status == ContractStatusSigned:
		if c.SentAt != nil {
			c.Status = ContractStatusSent
		} else {
			c.Status = ContractStatusDraft
		}
	}
}

// Activate starts the lease. Both signatures must be present and
// pendingDocuments lists the required document categories not yet validated.
func (c *Contract) Activate(actor shared.Actor, pendingDocuments []string) error {
	if err := c.requireOwner(actor, "activate"); err != nil {
		return err
	}
	if c.Status != ContractStatusSigned {
		return shared.NewInvalidState(fmt.Sprintf("Cannot activate contract in %s status, it must be SIGNED", c.Status))
	}
	if len(pendingDocuments) > 0 {
		return shared.NewInvalidState("Required documents are not validated: " + strings.Join(pendingDocuments, ", "))
	}

	now := time.Now()
	c.Status = ContractStatusActive
	c.ActivatedAt = &now
	c.UpdatedAt = now

	c.AddDomainEvent(NewContractActivatedEvent(c, actor.UserID))
	return nil
}

// Terminate ends the lease early
func (c *Contract) Terminate(actor shared.Actor) error {
	if err := c.requireOwner(actor, "terminate"); err != nil {
		return err
	}
	if !c.Status.CanTransitionTo(ContractStatusTerminated) {
		return shared.NewInvalidState(fmt.Sprintf("Cannot terminate contract in %s status", c.Status))
	}

	now := time.Now()
	c.Status = ContractStatusTerminated
	c.TerminatedAt = &now
	c.UpdatedAt = now

	c.AddDomainEvent(NewContractTerminatedEvent(c, actor.UserID))
	return nil
}

// Cancel abandons the contract with an optional reason
func (c *Contract) Cancel(actor shared.Actor, reason *string) error {
	if err := c.requireOwner(actor, "cancel"); err != nil {
		return err
	}
	if !c.Status.CanTransitionTo(ContractStatusCancelled) {
		return shared.NewInvalidState(fmt.Sprintf("Cannot cancel contract in %s status", c.Status))
	}

	now := time.Now()
	c.Status = ContractStatusCancelled
	c.CancelledAt = &now
	c.CancellationReason = trimmed(reason)
	c.UpdatedAt = now

	c.AddDomainEvent(NewContractCancelledEvent(c, actor.UserID))
	return nil
}

// Expire closes an active lease whose end date has passed. Driven by the
// lifecycle sweeper.
func (c *Contract) Expire(now time.Time) error {
	if !c.Status.CanTransitionTo(ContractStatusExpired) {
		return shared.NewInvalidState(fmt.Sprintf("Cannot expire contract in %s status", c.Status))
	}
	if !c.IsExpiredAt(now) {
		return shared.NewInvalidState("Contract end date has not passed yet")
	}

	c.Status = ContractStatusExpired
	c.ExpiredAt = &now
	c.UpdatedAt = now

	c.AddDomainEvent(NewContractExpiredEvent(c))
	return nil
}

// TermsPatch is a partial update of lease terms. Nil members are left untouched.
type TermsPatch struct {
	StartDate     *time.Time
	EndDate       *time.Time
	MonthlyRent   *decimal.Decimal
	Charges       *decimal.Decimal
	Deposit       *decimal.Decimal
	Terms         *string
	Content       *string
	CustomClauses []string
}

// Update changes lease terms while the contract is not yet active. Any
// existing signature refers to the previous terms and is cleared.
func (c *Contract) Update(actor shared.Actor, patch TermsPatch) error {
	if err := c.requireOwner(actor, "update"); err != nil {
		return err
	}
	if !c.Status.IsEditable() {
		return shared.NewInvalidState(fmt.Sprintf("Cannot update contract in %s status", c.Status))
	}

	terms := c.LeaseTerms()
	if patch.StartDate != nil {
		terms.StartDate = property.NormalizeDate(*patch.StartDate)
	}
	if patch.EndDate != nil {
		terms.EndDate = property.NormalizeDate(*patch.EndDate)
	}
	if patch.MonthlyRent != nil {
		terms.MonthlyRent = *patch.MonthlyRent
	}
	if patch.Charges != nil {
		terms.Charges = *patch.Charges
	}
	if patch.Deposit != nil {
		terms.Deposit = *patch.Deposit
	}
	if patch.Terms != nil {
		terms.Terms = patch.Terms
	}
	if patch.Content != nil {
		terms.Content = patch.Content
	}
	if patch.CustomClauses != nil {
		terms.CustomClauses = patch.CustomClauses
	}
	if err := terms.validate(); err != nil {
		return err
	}

	c.setTerms(terms)
	if c.OwnerSignature != nil || c.TenantSignature != nil {
		c.clearSignatures()
		c.evaluateSignatures()
	}
	c.UpdatedAt = time.Now()
	return nil
}

func (c *Contract) clearSignatures() {
	c.OwnerSignature = nil
	c.OwnerSignedAt = nil
	c.TenantSignature = nil
	c.TenantSignedAt = nil
}

// CanDelete checks that the contract may be removed: owner only, DRAFT only
func (c *Contract) CanDelete(actor shared.Actor) error {
	if err := c.requireOwner(actor, "delete"); err != nil {
		return err
	}
	if c.Status != ContractStatusDraft {
		return shared.NewInvalidState(fmt.Sprintf("Cannot delete contract in %s status, only drafts can be deleted", c.Status))
	}
	return nil
}
