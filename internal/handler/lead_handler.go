package handler

import (
	"net/http"
	"strconv"

	"github.com/beaconhq/beacon-backend/internal/common"
	"github.com/beaconhq/beacon-backend/internal/domain"
	"github.com/beaconhq/beacon-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// LeadHandler handles waitlist signups
type LeadHandler struct {
	service service.LeadService
}

// NewLeadHandler creates a new LeadHandler
func NewLeadHandler(service service.LeadService) *LeadHandler {
	return &LeadHandler{service: service}
}

// CreateLead godoc
// @Summary      Join the waitlist
// @Description  Records a signup; repeating an email is idempotent
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        req  body      domain.CreateLeadRequest  true  "signup"
// @Success      200  {object}  common.APIResponse{data=domain.Lead}
// @Failure      400  {object}  common.APIResponse
// @Router       /leads [post]
func (h *LeadHandler) CreateLead(c *gin.Context) {
	var req domain.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	lead, err := h.service.CreateLead(&req)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to record signup", err)
		return
	}
	common.SuccessResponse(c, lead, nil)
}

// ListLeads godoc
// @Summary      List waitlist signups
// @Tags         leads
// @Produce      json
// @Param        page   query  int  false  "page"
// @Param        limit  query  int  false  "page size"
// @Success      200  {object}  common.APIResponse{data=[]domain.Lead}
// @Router       /admin/leads [get]
func (h *LeadHandler) ListLeads(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	leads, meta, err := h.service.ListLeads(page, limit)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to list leads", err)
		return
	}
	common.SuccessResponse(c, leads, meta)
}
