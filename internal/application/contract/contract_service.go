package contract

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rentals/backend/internal/domain/contract"
	"github.com/rentals/backend/internal/domain/document"
	"github.com/rentals/backend/internal/domain/property"
	"github.com/rentals/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ActivationGate decides which document categories must be VALIDATED before
// a contract can become ACTIVE
type ActivationGate struct {
	RequiredCategories []string
	Enforce            bool
}

// Renderer prints a contract to PDF
type Renderer interface {
	Render(ctx context.Context, data ContractPrintData) ([]byte, error)
}

// ContractService handles the lease contract lifecycle
type ContractService struct {
	contractRepo   contract.ContractRepository
	propertyRepo   property.PropertyRepository
	documentRepo   document.DocumentRepository
	gate           ActivationGate
	renderer       Renderer
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
	now            func() time.Time
}

// ContractServiceOption configures a ContractService
type ContractServiceOption func(*ContractService)

// WithClock overrides the time source used for expiry and print dates
func WithClock(now func() time.Time) ContractServiceOption {
	return func(s *ContractService) {
		s.now = now
	}
}

// NewContractService creates a new ContractService
func NewContractService(
	contractRepo contract.ContractRepository,
	propertyRepo property.PropertyRepository,
	documentRepo document.DocumentRepository,
	gate ActivationGate,
	logger *zap.Logger,
	opts ...ContractServiceOption,
) *ContractService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &ContractService{
		contractRepo: contractRepo,
		propertyRepo: propertyRepo,
		documentRepo: documentRepo,
		gate:         gate,
		logger:       logger,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetEventPublisher sets the event publisher used for notifications
func (s *ContractService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetRenderer sets the PDF renderer
func (s *ContractService) SetRenderer(renderer Renderer) {
	s.renderer = renderer
}

// Create drafts a contract for a property the caller owns
func (s *ContractService) Create(ctx context.Context, actor shared.Actor, req CreateContractRequest) (*ContractResponse, error) {
	p, err := s.propertyRepo.FindByID(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if !p.OwnedBy(actor.UserID) {
		return nil, shared.NewForbidden("Only the property owner can create a contract")
	}

	start, err := property.ParseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := property.ParseDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	terms := contract.LeaseTerms{
		StartDate:     start,
		EndDate:       end,
		MonthlyRent:   req.MonthlyRent,
		Terms:         req.Terms,
		Content:       req.Content,
		CustomClauses: req.CustomClauses,
	}
	if req.Charges != nil {
		terms.Charges = *req.Charges
	}
	if req.Deposit != nil {
		terms.Deposit = *req.Deposit
	}

	c, err := contract.NewContract(p.ID, p.OwnerID, req.TenantID, terms)
	if err != nil {
		return nil, err
	}
	if err := s.contractRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("Contract drafted",
		zap.String("contract_id", c.ID.String()),
		zap.String("property_id", p.ID.String()),
	)
	s.publish(ctx, c)

	resp := ToContractResponse(c)
	return &resp, nil
}

// GetByID returns a contract visible to the caller
func (s *ContractService) GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*ContractResponse, error) {
	c, err := s.readable(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	resp := ToContractResponse(c)
	return &resp, nil
}

// List returns the contracts the caller is a party to, or all for admins
func (s *ContractService) List(ctx context.Context, actor shared.Actor, filter ContractListFilter) (*ContractListResponse, error) {
	f := contract.ContractFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  "created_at",
		}.Normalize(),
	}
	if filter.PropertyID != "" {
		propertyID, err := uuid.Parse(filter.PropertyID)
		if err != nil {
			return nil, shared.NewInvalidInput("Invalid property ID")
		}
		f.PropertyID = &propertyID
	}
	if !actor.IsAdmin() {
		partyID := actor.UserID
		f.PartyID = &partyID
	}
	if filter.Status != "" {
		status := contract.ContractStatus(filter.Status)
		f.Status = &status
	}

	contracts, total, err := s.contractRepo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]ContractResponse, len(contracts))
	for i := range contracts {
		items[i] = ToContractResponse(&contracts[i])
	}
	return &ContractListResponse{Items: items, Total: total}, nil
}

// Update changes lease terms before activation
func (s *ContractService) Update(ctx context.Context, actor shared.Actor, id uuid.UUID, req UpdateContractRequest) (*ContractResponse, error) {
	patch, err := req.ToPatch()
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, func(c *contract.Contract) error {
		return c.Update(actor, patch)
	})
}

// Delete removes a draft contract
func (s *ContractService) Delete(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	c, err := s.contractRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := c.CanDelete(actor); err != nil {
		return err
	}
	if err := s.contractRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Contract deleted", zap.String("contract_id", id.String()))
	return nil
}

// Send moves a draft to SENT
func (s *ContractService) Send(ctx context.Context, actor shared.Actor, id uuid.UUID) (*ContractResponse, error) {
	return s.mutate(ctx, id, func(c *contract.Contract) error {
		return c.Send(actor)
	})
}

// Sign records the caller's signature, advancing to SIGNED once both
// parties have signed
func (s *ContractService) Sign(ctx context.Context, actor shared.Actor, id uuid.UUID, req SignContractRequest) (*ContractResponse, error) {
	return s.mutate(ctx, id, func(c *contract.Contract) error {
		return c.Sign(actor, req.Signature)
	})
}

// Activate starts a signed lease once the document gate passes
func (s *ContractService) Activate(ctx context.Context, actor shared.Actor, id uuid.UUID) (*ContractResponse, error) {
	return s.mutate(ctx, id, func(c *contract.Contract) error {
		// Authorization and state first, so the document lookup never leaks
		// anything to a non-owner
		if !actor.Is(c.OwnerID) || c.Status != contract.ContractStatusSigned {
			return c.Activate(actor, nil)
		}
		pending, err := s.pendingDocuments(ctx, c.ID)
		if err != nil {
			return err
		}
		return c.Activate(actor, pending)
	})
}

// Terminate ends a lease early
func (s *ContractService) Terminate(ctx context.Context, actor shared.Actor, id uuid.UUID) (*ContractResponse, error) {
	return s.mutate(ctx, id, func(c *contract.Contract) error {
		return c.Terminate(actor)
	})
}

// Cancel abandons a contract
func (s *ContractService) Cancel(ctx context.Context, actor shared.Actor, id uuid.UUID, req CancelContractRequest) (*ContractResponse, error) {
	return s.mutate(ctx, id, func(c *contract.Contract) error {
		return c.Cancel(actor, req.Reason)
	})
}

// RenderPDF prints the contract for one of its parties
func (s *ContractService) RenderPDF(ctx context.Context, actor shared.Actor, id uuid.UUID) ([]byte, string, error) {
	if s.renderer == nil {
		return nil, "", fmt.Errorf("contract renderer is not configured")
	}
	c, err := s.readable(ctx, actor, id)
	if err != nil {
		return nil, "", err
	}
	p, err := s.propertyRepo.FindByID(ctx, c.PropertyID)
	if err != nil {
		return nil, "", err
	}

	pdf, err := s.renderer.Render(ctx, ContractPrintData{
		Contract:      ToContractResponse(c),
		PropertyTitle: p.Title,
		Address:       p.Address,
		GeneratedAt:   s.now(),
	})
	if err != nil {
		return nil, "", fmt.Errorf("render contract %s: %w", c.ID, err)
	}
	return pdf, fmt.Sprintf("contract-%s.pdf", c.ID), nil
}

// ExpireEnded moves ACTIVE contracts past their end date to EXPIRED and
// returns how many were expired
func (s *ContractService) ExpireEnded(ctx context.Context, batchSize int) (int, error) {
	now := s.now()
	due, err := s.contractRepo.FindActiveEndingBefore(ctx, property.NormalizeDate(now), batchSize)
	if err != nil {
		return 0, err
	}

	expired := 0
	for i := range due {
		c := &due[i]
		if err := c.Expire(now); err != nil {
			s.logger.Warn("Skipping contract expiry", zap.String("contract_id", c.ID.String()), zap.Error(err))
			continue
		}
		if err := s.contractRepo.SaveWithLock(ctx, c); err != nil {
			s.logger.Error("Failed to expire contract", zap.String("contract_id", c.ID.String()), zap.Error(err))
			continue
		}
		s.publish(ctx, c)
		expired++
	}
	return expired, nil
}

func (s *ContractService) pendingDocuments(ctx context.Context, contractID uuid.UUID) ([]string, error) {
	if !s.gate.Enforce || len(s.gate.RequiredCategories) == 0 {
		return nil, nil
	}
	docs, err := s.documentRepo.FindByContract(ctx, contractID)
	if err != nil {
		return nil, err
	}
	return document.BuildChecklist(docs, s.gate.RequiredCategories).Pending, nil
}

func (s *ContractService) readable(ctx context.Context, actor shared.Actor, id uuid.UUID) (*contract.Contract, error) {
	c, err := s.contractRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !c.CanRead(actor) {
		return nil, shared.NewForbidden("You are not a party to this contract")
	}
	return c, nil
}

// mutate loads a contract, applies fn and saves it with optimistic locking
func (s *ContractService) mutate(ctx context.Context, id uuid.UUID, fn func(c *contract.Contract) error) (*ContractResponse, error) {
	c, err := s.contractRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	before := c.Status
	if err := fn(c); err != nil {
		return nil, err
	}
	if err := s.contractRepo.SaveWithLock(ctx, c); err != nil {
		return nil, err
	}

	if before != c.Status {
		s.logger.Info("Contract status changed",
			zap.String("contract_id", c.ID.String()),
			zap.String("from", string(before)),
			zap.String("to", string(c.Status)),
		)
	}
	s.publish(ctx, c)

	resp := ToContractResponse(c)
	return &resp, nil
}

func (s *ContractService) publish(ctx context.Context, c *contract.Contract) {
	events := c.GetDomainEvents()
	c.ClearDomainEvents()
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish contract events", zap.String("contract_id", c.ID.String()), zap.Error(err))
	}
}
