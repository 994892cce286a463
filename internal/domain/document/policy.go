package document

import (
	"github.com/rentals/backend/internal/domain/contract"
	"github.com/rentals/backend/internal/domain/shared"
)

// CanUpload checks that actor is a party to the contract
func CanUpload(c *contract.Contract, actor shared.Actor) error {
	if !c.IsParty(actor.UserID) {
		return shared.NewForbidden("Only the contract parties can upload documents")
	}
	return nil
}

// CanView checks that actor may read the checklist
func CanView(c *contract.Contract, actor shared.Actor) error {
	if !c.IsParty(actor.UserID) && !actor.IsAdmin() {
		return shared.NewForbidden("Only the contract parties can view documents")
	}
	return nil
}

// CanReview checks that actor owns the contract
func CanReview(c *contract.Contract, actor shared.Actor) error {
	if !actor.Is(c.OwnerID) {
		return shared.NewForbidden("Only the contract owner can review documents")
	}
	return nil
}

// CanDelete checks that actor uploaded the document or owns the contract
func CanDelete(c *contract.Contract, d *ContractDocument, actor shared.Actor) error {
	if !actor.Is(d.UploadedByID) && !actor.Is(c.OwnerID) {
		return shared.NewForbidden("Only the uploader or the contract owner can delete this document")
	}
	return nil
}
