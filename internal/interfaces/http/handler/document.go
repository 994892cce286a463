package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appdocument "github.com/rentals/backend/internal/application/document"
	"github.com/rentals/backend/internal/domain/shared"
)

// DocumentService is the application surface the document handler needs
type DocumentService interface {
	UploadDocument(ctx context.Context, actor shared.Actor, contractID uuid.UUID, req appdocument.UploadDocumentRequest) (*appdocument.DocumentResponse, error)
	ValidateDocument(ctx context.Context, actor shared.Actor, contractID, documentID uuid.UUID) (*appdocument.DocumentResponse, error)
	RejectDocument(ctx context.Context, actor shared.Actor, contractID, documentID uuid.UUID, req appdocument.RejectDocumentRequest) (*appdocument.DocumentResponse, error)
	GetChecklistStatus(ctx context.Context, actor shared.Actor, contractID uuid.UUID) (*appdocument.ChecklistResponse, error)
	ListDocuments(ctx context.Context, actor shared.Actor, contractID uuid.UUID) ([]appdocument.DocumentResponse, error)
	DeleteDocument(ctx context.Context, actor shared.Actor, contractID, documentID uuid.UUID) error
	RequestUploadURL(ctx context.Context, actor shared.Actor, contractID uuid.UUID, req appdocument.UploadURLRequest) (*appdocument.UploadURLResponse, error)
}

// DocumentHandler handles the document checklist of a contract
type DocumentHandler struct {
	BaseHandler
	documentService DocumentService
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(documentService DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// Upload godoc
// @ID           uploadContractDocument
// @Summary      Register an uploaded document
// @Description  Records a stored file for a category. Re-uploading a category replaces it and resets it to PENDING.
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        id       path      string                             true  "Contract ID" format(uuid)
// @Param        request  body      appdocument.UploadDocumentRequest  true  "Document"
// @Success      201      {object}  APIResponse[appdocument.DocumentResponse]
// @Failure      400      {object}  ErrorResponse
// @Failure      403      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /contracts/{id}/documents [post]
func (h *DocumentHandler) Upload(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	contractID, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	var req appdocument.UploadDocumentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	d, err := h.documentService.UploadDocument(c.Request.Context(), actor, contractID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, d)
}

// Checklist godoc
// @ID           getContractDocumentChecklist
// @Summary      Get the document checklist of a contract
// @Tags         documents
// @Produce      json
// @Param        id   path      string  true  "Contract ID" format(uuid)
// @Success      200  {object}  APIResponse[appdocument.ChecklistResponse]
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /contracts/{id}/documents [get]
func (h *DocumentHandler) Checklist(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	contractID, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	checklist, err := h.documentService.GetChecklistStatus(c.Request.Context(), actor, contractID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, checklist)
}

// List godoc
// @ID           listContractDocuments
// @Summary      List the documents of a contract with download links
// @Tags         documents
// @Produce      json
// @Param        id   path      string  true  "Contract ID" format(uuid)
// @Success      200  {object}  APIResponse[[]appdocument.DocumentResponse]
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /contracts/{id}/documents/files [get]
func (h *DocumentHandler) List(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	contractID, ok := h.PathID(c, "id")
	if !ok {
		return
	}

	docs, err := h.documentService.ListDocuments(c.Request.Context(), actor, contractID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, docs)
}

// UploadURL godoc
// @ID           createContractDocumentUploadURL
// @Summary      Get a presigned upload URL
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        id       path      string                        true  "Contract ID" format(uuid)
// @Param        request  body      appdocument.UploadURLRequest  true  "File to upload"
// @Success      200      {object}  APIResponse[appdocument.UploadURLResponse]
// @Failure      400      {object}  ErrorResponse
// @Failure      403      {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /contracts/{id}/documents/upload-url [post]
func (h *DocumentHandler) UploadURL(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	contractID, ok := h.PathID(c, "id")
	if !ok {
		return
	}
	var req appdocument.UploadURLRequest
	if !h.BindJSON(c, &req) {
		return
	}

	target, err := h.documentService.RequestUploadURL(c.Request.Context(), actor, contractID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, target)
}

// Validate godoc
// @ID           validateContractDocument
// @Summary      Validate a document
// @Tags         documents
// @Produce      json
// @Param        id     path      string  true  "Contract ID" format(uuid)
// @Param        docId  path      string  true  "Document ID" format(uuid)
// @Success      200    {object}  APIResponse[appdocument.DocumentResponse]
// @Failure      403    {object}  ErrorResponse
// @Failure      404    {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /contracts/{id}/documents/{docId}/validate [put]
func (h *DocumentHandler) Validate(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	contractID, documentID, ok := h.documentIDs(c)
	if !ok {
		return
	}

	d, err := h.documentService.ValidateDocument(c.Request.Context(), actor, contractID, documentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, d)
}

// Reject godoc
// @ID           rejectContractDocument
// @Summary      Reject a document
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        id       path      string                             true  "Contract ID" format(uuid)
// @Param        docId    path      string                             true  "Document ID" format(uuid)
// @Param        request  body      appdocument.RejectDocumentRequest  true  "Rejection reason"
// @Success      200      {object}  APIResponse[appdocument.DocumentResponse]
// @Failure      400      {object}  ErrorResponse
// @Failure      403      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /contracts/{id}/documents/{docId}/reject [put]
func (h *DocumentHandler) Reject(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	contractID, documentID, ok := h.documentIDs(c)
	if !ok {
		return
	}
	var req appdocument.RejectDocumentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	d, err := h.documentService.RejectDocument(c.Request.Context(), actor, contractID, documentID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, d)
}

// Delete godoc
// @ID           deleteContractDocument
// @Summary      Delete a document
// @Tags         documents
// @Param        id     path  string  true  "Contract ID" format(uuid)
// @Param        docId  path  string  true  "Document ID" format(uuid)
// @Success      204
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /contracts/{id}/documents/{docId} [delete]
func (h *DocumentHandler) Delete(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	contractID, documentID, ok := h.documentIDs(c)
	if !ok {
		return
	}

	if err := h.documentService.DeleteDocument(c.Request.Context(), actor, contractID, documentID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *DocumentHandler) documentIDs(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	contractID, ok := h.PathID(c, "id")
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	documentID, ok := h.PathID(c, "docId")
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	return contractID, documentID, true
}
