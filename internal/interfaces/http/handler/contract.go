package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appcontract "github.com/rentals/backend/internal/application/contract"
	"github.com/rentals/backend/internal/domain/shared"
	"github.com/rentals/backend/internal/interfaces/http/dto"
)

// ContractService is the application surface the contract handler needs
type ContractService interface {
	Create(ctx context.Context, actor shared.Actor, req appcontract.CreateContractRequest) (*appcontract.ContractResponse, error)
	GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*appcontract.ContractResponse, error)
	List(ctx context.Context, actor shared.Actor, filter appcontract.ContractListFilter) (*appcontract.ContractListResponse, error)
	Update(ctx context.Context, actor shared.Actor, id uuid.UUID, req appcontract.UpdateContractRequest) (*appcontract.ContractResponse, error)
	Delete(ctx context.Context, actor shared.Actor, id uuid.UUID) error
	Send(ctx context.Context, actor shared.Actor, id uuid.UUID) (*appcontract.ContractResponse, error)
	Sign(ctx context.Context, actor shared.Actor, id uuid.UUID, req appcontract.SignContractRequest) (*appcontract.ContractResponse, error)
	Activate(ctx context.Context, actor shared.Actor, id uuid.UUID) (*appcontract.ContractResponse, error)
	Terminate(ctx context.Context, actor shared.Actor, id uuid.UUID) (*appcontract.ContractResponse, error)
	Cancel(ctx context.Context, actor shared.Actor, id uuid.UUID, req appcontract.CancelContractRequest) (*appcontract.ContractResponse, error)
	RenderPDF(ctx context.Context, actor shared.Actor, id uuid.UUID) ([]byte, string, error)
}

// ContractHandler handles lease contract endpoints
type ContractHandler struct {
	BaseHandler
	contractService ContractService
}

// NewContractHandler creates a new ContractHandler
func NewContractHandler(contractService ContractService) *ContractHandler {
	return &ContractHandler{contractService: contractService}
}

// Create godoc
// @ID           createContract
// @Summary      Draft a lease contract
// @Tags         contracts
// @Accept       json
// @Produce      json
// @Param        request  body      appcontract.CreateContractRequest  true  "Contract"
// @Success      201      {object}  APIResponse[appcontract.ContractResponse]
// @Failure      400      {object}  ErrorResponse
// @Failure      403      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /contracts [post]
func (h *ContractHandler) Create(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	var req appcontract.CreateContractRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ct, err := h.contractService.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, ct)
}

// List godoc
// @ID           listContracts
// @Summary      List the caller's contracts
// @Description  Owners and tenants see the contracts they are party to. Admins see all.
// @Tags         contracts
// @Produce      json
// @Param        page         query     int     false  "Page number"  default(1)
// @Param        page_size    query     int     false  "Page size"    default(20)
// @Param        status       query     string  false  "Status filter"
// @Param        property_id  query     string  false  "Property filter" format(uuid)
// @Success      200          {object}  APIResponse[[]appcontract.ContractResponse]
// @Failure      400          {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /contracts [get]
func (h *ContractHandler) List(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	var filter appcontract.ContractListFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	list, err := h.contractService.List(c.Request.Context(), actor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page := dto.Pagination{Page: filter.Page, PageSize: filter.PageSize}.Defaults()
	h.SuccessWithMeta(c, list.Items, list.Total, page.Page, page.PageSize)
}

// Get godoc
// @ID           getContract
// @Summary      Get a contract
// @Tags         contracts
// @Produce      json
// @Param        id   path      string  true  "Contract ID" format(uuid)
// @Success      200  {object}  APIResponse[appcontract.ContractResponse]
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /contracts/{id} [get]
func (h *ContractHandler) Get(c *gin.Context) {
	h.withContract(c, h.contractService.GetByID)
}

// Update godoc
// @ID           updateContract
// @Summary      Edit the terms of a draft contract
// @Tags         contracts
// @Accept       json
// @Produce      json
// @Param        id       path      string                             true  "Contract ID" format(uuid)
// @Param        request  body      appcontract.UpdateContractRequest  true  "Fields to change"
// @Success      200      {object}  APIResponse[appcontract.ContractResponse]
// @Failure      400      {object}  ErrorResponse
// @Failure      403      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /contracts/{id} [put]
func (h *ContractHandler) Update(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	var req appcontract.UpdateContractRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ct, err := h.contractService.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ct)
}

// Delete godoc
// @ID           deleteContract
// @Summary      Delete a draft contract
// @Tags         contracts
// @Param        id   path  string  true  "Contract ID" format(uuid)
// @Success      204
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /contracts/{id} [delete]
func (h *ContractHandler) Delete(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	if err := h.contractService.Delete(c.Request.Context(), actor, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Send godoc
// @ID           sendContract
// @Summary      Send a draft contract to the tenant
// @Tags         contracts
// @Produce      json
// @Param        id   path      string  true  "Contract ID" format(uuid)
// @Success      200  {object}  APIResponse[appcontract.ContractResponse]
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /contracts/{id}/send [put]
func (h *ContractHandler) Send(c *gin.Context) {
	h.withContract(c, h.contractService.Send)
}

// Sign godoc
// @ID           signContract
// @Summary      Sign a sent contract
// @Description  Records the caller's signature. The contract becomes SIGNED once both parties signed.
// @Tags         contracts
// @Accept       json
// @Produce      json
// @Param        id       path      string                           true  "Contract ID" format(uuid)
// @Param        request  body      appcontract.SignContractRequest  true  "Signature"
// @Success      200      {object}  APIResponse[appcontract.ContractResponse]
// @Failure      400      {object}  ErrorResponse
// @Failure      403      {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /contracts/{id}/sign [put]
func (h *ContractHandler) Sign(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	var req appcontract.SignContractRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ct, err := h.contractService.Sign(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ct)
}

// Activate godoc
// @ID           activateContract
// @Summary      Activate a signed contract
// @Description  Requires every required document category to be validated.
// @Tags         contracts
// @Produce      json
// @Param        id   path      string  true  "Contract ID" format(uuid)
// @Success      200  {object}  APIResponse[appcontract.ContractResponse]
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /contracts/{id}/activate [put]
func (h *ContractHandler) Activate(c *gin.Context) {
	h.withContract(c, h.contractService.Activate)
}

// Terminate godoc
// @ID           terminateContract
// @Summary      Terminate an active contract
// @Tags         contracts
// @Produce      json
// @Param        id   path      string  true  "Contract ID" format(uuid)
// @Success      200  {object}  APIResponse[appcontract.ContractResponse]
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /contracts/{id}/terminate [put]
func (h *ContractHandler) Terminate(c *gin.Context) {
	h.withContract(c, h.contractService.Terminate)
}

// Cancel godoc
// @ID           cancelContract
// @Summary      Cancel a contract before activation
// @Tags         contracts
// @Accept       json
// @Produce      json
// @Param        id       path      string                             true   "Contract ID" format(uuid)
// @Param        request  body      appcontract.CancelContractRequest  false  "Cancellation reason"
// @Success      200      {object}  APIResponse[appcontract.ContractResponse]
// @Failure      400      {object}  ErrorResponse
// @Failure      403      {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /contracts/{id}/cancel [put]
func (h *ContractHandler) Cancel(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	var req appcontract.CancelContractRequest
	if !h.BindOptionalJSON(c, &req) {
		return
	}

	ct, err := h.contractService.Cancel(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ct)
}

// PDF godoc
// @ID           getContractPDF
// @Summary      Download the contract as PDF
// @Tags         contracts
// @Produce      application/pdf
// @Param        id   path  string  true  "Contract ID" format(uuid)
// @Success      200  {file}    binary
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /contracts/{id}/pdf [get]
func (h *ContractHandler) PDF(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	pdf, filename, err := h.contractService.RenderPDF(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// withContract runs a body-less contract operation for the caller
func (h *ContractHandler) withContract(
	c *gin.Context,
	op func(context.Context, shared.Actor, uuid.UUID) (*appcontract.ContractResponse, error),
) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	ct, err := op(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ct)
}
