package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/beaconhq/beacon-backend/internal/common"
	"github.com/beaconhq/beacon-backend/internal/domain"
	"github.com/beaconhq/beacon-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// SubmissionHandler handles assessment submissions
type SubmissionHandler struct {
	service service.SubmissionService
}

// NewSubmissionHandler creates a new SubmissionHandler
func NewSubmissionHandler(service service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{service: service}
}

// CreateSubmission godoc
// @Summary      Submit completed assessment answers
// @Description  Scores the answers, resolves the results pack for the level, and records the submission with its resolution pin
// @Tags         submissions
// @Accept       json
// @Produce      json
// @Param        req  body      domain.CreateSubmissionRequest  true  "answers"
// @Success      200  {object}  common.APIResponse{data=service.SubmissionResult}
// @Failure      400  {object}  common.APIResponse
// @Router       /submissions [post]
func (h *SubmissionHandler) CreateSubmission(c *gin.Context) {
	var req domain.CreateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, fieldErrs, err := h.service.CreateSubmission(&req)
	if err != nil {
		if errors.Is(err, common.ErrNoContent) {
			common.ErrorResponse(c, http.StatusNotFound, "No results content configured", err)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to record submission", err)
		return
	}
	if len(fieldErrs) > 0 {
		common.ValidationErrorResponse(c, "Submission rejected", fieldErrs)
		return
	}
	common.SuccessResponse(c, result, nil)
}

// GetSubmission godoc
// @Summary      Fetch a past submission with its original results pack
// @Description  Re-resolves through the stored pin so the respondent sees exactly what they saw at submission time
// @Tags         submissions
// @Produce      json
// @Param        id   path      string  true  "submission public id"
// @Success      200  {object}  common.APIResponse{data=service.SubmissionResult}
// @Failure      404  {object}  common.APIResponse
// @Router       /submissions/{id} [get]
func (h *SubmissionHandler) GetSubmission(c *gin.Context) {
	result, err := h.service.GetSubmission(c.Param("id"))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "Submission not found", err)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch submission", err)
		return
	}
	common.SuccessResponse(c, result, nil)
}

// ListSubmissions godoc
// @Summary      List submissions
// @Tags         submissions
// @Produce      json
// @Param        page   query  int  false  "page"
// @Param        limit  query  int  false  "page size"
// @Success      200  {object}  common.APIResponse{data=[]domain.Submission}
// @Router       /admin/submissions [get]
func (h *SubmissionHandler) ListSubmissions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	submissions, total, err := h.service.ListSubmissions(page, limit)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to list submissions", err)
		return
	}
	common.SuccessResponse(c, submissions, &common.Meta{Page: page, Limit: limit, Total: total})
}
