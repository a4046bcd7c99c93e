package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/beaconhq/beacon-backend/internal/common"
	"github.com/beaconhq/beacon-backend/internal/content"
	"github.com/beaconhq/beacon-backend/internal/middleware"
	"github.com/beaconhq/beacon-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// ContentHandler handles the admin console API for the versioned
// content store.
type ContentHandler struct {
	service service.ContentService
}

// NewContentHandler creates a new ContentHandler
func NewContentHandler(service service.ContentService) *ContentHandler {
	return &ContentHandler{service: service}
}

// ListIdentities godoc
// @Summary      List content identities
// @Description  Lists active identities with revision counts and current pointer revision numbers
// @Tags         content-admin
// @Produce      json
// @Success      200  {object}  common.APIResponse{data=[]domain.IdentitySummary}
// @Failure      500  {object}  common.APIResponse
// @Router       /admin/content/identities [get]
func (h *ContentHandler) ListIdentities(c *gin.Context) {
	summaries, err := h.service.ListIdentities()
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to list identities", err)
		return
	}
	common.SuccessResponse(c, summaries, nil)
}

// ListRevisions godoc
// @Summary      Revision history for one identity
// @Tags         content-admin
// @Produce      json
// @Param        id   path      int  true  "identity id"
// @Success      200  {object}  common.APIResponse{data=[]domain.ContentRevision}
// @Failure      404  {object}  common.APIResponse
// @Router       /admin/content/identities/{id}/revisions [get]
func (h *ContentHandler) ListRevisions(c *gin.Context) {
	identityID, ok := pathID(c, "id")
	if !ok {
		return
	}
	revisions, err := h.service.ListRevisions(identityID)
	if err != nil {
		respondContentError(c, "Failed to list revisions", err)
		return
	}
	common.SuccessResponse(c, revisions, nil)
}

// GetRevision godoc
// @Summary      Fetch one revision including its document
// @Tags         content-admin
// @Produce      json
// @Param        id   path      int  true  "revision id"
// @Success      200  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /admin/content/revisions/{id} [get]
func (h *ContentHandler) GetRevision(c *gin.Context) {
	revisionID, ok := pathID(c, "id")
	if !ok {
		return
	}
	revision, err := h.service.GetRevision(revisionID)
	if err != nil {
		respondContentError(c, "Failed to fetch revision", err)
		return
	}
	common.SuccessResponse(c, gin.H{
		"revision": revision,
		"document": rawJSON(revision.Document),
	}, nil)
}

type setPointerRequest struct {
	RevisionID uint64 `json:"revision_id" binding:"required"`
}

// SetPublished godoc
// @Summary      Point the published reference at a revision
// @Description  Rejects a revision that does not belong to the identity
// @Tags         content-admin
// @Accept       json
// @Produce      json
// @Param        id   path      int                true  "identity id"
// @Param        req  body      setPointerRequest  true  "target revision"
// @Success      200  {object}  common.APIResponse
// @Failure      400  {object}  common.APIResponse
// @Router       /admin/content/identities/{id}/published [put]
func (h *ContentHandler) SetPublished(c *gin.Context) {
	h.setPointer(c, h.service.SetPublished)
}

// SetPreview godoc
// @Summary      Point the preview reference at a revision
// @Tags         content-admin
// @Accept       json
// @Produce      json
// @Param        id   path      int                true  "identity id"
// @Param        req  body      setPointerRequest  true  "target revision"
// @Success      200  {object}  common.APIResponse
// @Failure      400  {object}  common.APIResponse
// @Router       /admin/content/identities/{id}/preview [put]
func (h *ContentHandler) SetPreview(c *gin.Context) {
	h.setPointer(c, h.service.SetPreview)
}

func (h *ContentHandler) setPointer(c *gin.Context, set func(identityID, revisionID uint64) error) {
	identityID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req setPointerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := set(identityID, req.RevisionID); err != nil {
		respondContentError(c, "Failed to set pointer", err)
		return
	}
	pointer, err := h.service.GetPointer(identityID)
	if err != nil {
		respondContentError(c, "Pointer updated but could not be read back", err)
		return
	}
	common.SuccessResponse(c, pointer, nil)
}

// Archive godoc
// @Summary      Archive an identity (soft delete, reversible)
// @Tags         content-admin
// @Produce      json
// @Param        id   path      int  true  "identity id"
// @Success      200  {object}  common.APIResponse
// @Router       /admin/content/identities/{id}/archive [post]
func (h *ContentHandler) Archive(c *gin.Context) {
	h.lifecycle(c, h.service.Archive)
}

// Unarchive godoc
// @Summary      Restore an archived identity
// @Tags         content-admin
// @Produce      json
// @Param        id   path      int  true  "identity id"
// @Success      200  {object}  common.APIResponse
// @Router       /admin/content/identities/{id}/unarchive [post]
func (h *ContentHandler) Unarchive(c *gin.Context) {
	h.lifecycle(c, h.service.Unarchive)
}

// Delete godoc
// @Summary      Hard-delete an identity with all revisions and pointers
// @Description  Irreversible. Submission snapshots are not touched.
// @Tags         content-admin
// @Produce      json
// @Param        id   path      int  true  "identity id"
// @Success      200  {object}  common.APIResponse
// @Router       /admin/content/identities/{id} [delete]
func (h *ContentHandler) Delete(c *gin.Context) {
	h.lifecycle(c, h.service.Delete)
}

func (h *ContentHandler) lifecycle(c *gin.Context, op func(identityID uint64) error) {
	identityID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := op(identityID); err != nil {
		respondContentError(c, "Operation failed", err)
		return
	}
	common.SuccessResponse(c, gin.H{"id": identityID}, nil)
}

type importRequest struct {
	content.TabularInput
	Notes string `json:"notes"`
}

// ImportQuestionSet godoc
// @Summary      Import a question set draft from tabular data
// @Description  Takes the four spreadsheet tables as CSV text and creates a draft revision. A failed import returns the full aggregated error list and creates nothing.
// @Tags         content-admin
// @Accept       json
// @Produce      json
// @Param        req  body      importRequest  true  "tabular import"
// @Success      200  {object}  common.APIResponse
// @Failure      400  {object}  common.APIResponse
// @Router       /admin/content/import/questionset [post]
func (h *ContentHandler) ImportQuestionSet(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	revision, fieldErrs, err := h.service.ImportQuestionSet(req.TabularInput, service.RevisionMeta{
		Notes:     req.Notes,
		CreatedBy: middleware.GetUserID(c),
	})
	if err != nil {
		respondContentError(c, "Import failed", err)
		return
	}
	if len(fieldErrs) > 0 {
		common.ValidationErrorResponse(c, "Import rejected", fieldErrs)
		return
	}
	common.SuccessResponse(c, revision, nil)
}

type createRevisionRequest struct {
	Kind     string          `json:"kind" binding:"required"`
	Document json.RawMessage `json:"document" binding:"required"`
	Notes    string          `json:"notes"`
}

// CreateRevision godoc
// @Summary      Create a draft revision from a structured document
// @Tags         content-admin
// @Accept       json
// @Produce      json
// @Param        req  body      createRevisionRequest  true  "document"
// @Success      200  {object}  common.APIResponse
// @Failure      400  {object}  common.APIResponse
// @Router       /admin/content/revisions [post]
func (h *ContentHandler) CreateRevision(c *gin.Context) {
	var req createRevisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	revision, fieldErrs, err := h.service.CreateRevision(req.Kind, req.Document, service.RevisionMeta{
		Notes:     req.Notes,
		CreatedBy: middleware.GetUserID(c),
	})
	if err != nil {
		respondContentError(c, "Failed to create revision", err)
		return
	}
	if len(fieldErrs) > 0 {
		common.ValidationErrorResponse(c, "Document rejected", fieldErrs)
		return
	}
	common.SuccessResponse(c, revision, nil)
}

// respondContentError maps store errors onto HTTP statuses
func respondContentError(c *gin.Context, message string, err error) {
	switch {
	case errors.Is(err, common.ErrIdentityNotFound),
		errors.Is(err, common.ErrRevisionNotFound),
		errors.Is(err, common.ErrPointerNotFound),
		errors.Is(err, common.ErrNotFound):
		common.ErrorResponse(c, http.StatusNotFound, message, err)
	case errors.Is(err, common.ErrRevisionNotOwned):
		common.ErrorResponse(c, http.StatusBadRequest, message, err)
	case errors.Is(err, common.ErrRevisionConflict):
		common.ErrorResponse(c, http.StatusConflict, message, err)
	default:
		common.ErrorResponse(c, http.StatusInternalServerError, message, err)
	}
}

// rawJSON exposes a stored canonical blob as-is in the response body
func rawJSON(b []byte) json.RawMessage {
	return json.RawMessage(b)
}

func pathID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid id", err)
		return 0, false
	}
	return id, true
}
