package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/beaconhq/beacon-backend/internal/common"
	"github.com/beaconhq/beacon-backend/internal/config"
	"github.com/beaconhq/beacon-backend/internal/domain"
	"github.com/beaconhq/beacon-backend/internal/middleware"
	"github.com/beaconhq/beacon-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// ResolveHandler serves resolved content documents to rendering code.
// This is the only read surface the site talks to.
type ResolveHandler struct {
	resolver service.ResolverService
	cfg      config.ContentConfig
}

// NewResolveHandler creates a new ResolveHandler
func NewResolveHandler(resolver service.ResolverService, cfg config.ContentConfig) *ResolveHandler {
	return &ResolveHandler{resolver: resolver, cfg: cfg}
}

// GetQuestionSet godoc
// @Summary      Resolve the assessment question set
// @Description  Walks pin, preview (privileged + ?preview=1 only), published, then the bundled fallback
// @Tags         content
// @Produce      json
// @Param        version   query  string  false  "content version (default from config)"
// @Param        locale    query  string  false  "locale (default from config)"
// @Param        preview   query  bool    false  "resolve the preview pointer (editors/admins)"
// @Param        pin       query  int     false  "pinned revision id from a prior resolution"
// @Success      200  {object}  common.APIResponse{data=domain.Resolution}
// @Failure      404  {object}  common.APIResponse
// @Router       /content/questionset [get]
func (h *ResolveHandler) GetQuestionSet(c *gin.Context) {
	desc := domain.IdentityDescriptor{
		Kind:    domain.KindQuestionSet,
		Version: queryDefault(c, "version", h.cfg.Version),
		Locale:  queryDefault(c, "locale", h.cfg.Locale),
	}
	h.resolve(c, desc)
}

// GetResults godoc
// @Summary      Resolve the results pack for a level
// @Tags         content
// @Produce      json
// @Param        level     path   string  true   "result level key"
// @Param        version   query  string  false  "content version (default from config)"
// @Param        preview   query  bool    false  "resolve the preview pointer (editors/admins)"
// @Param        pin       query  int     false  "pinned revision id from a prior resolution"
// @Success      200  {object}  common.APIResponse{data=domain.Resolution}
// @Failure      404  {object}  common.APIResponse
// @Router       /content/results/{level} [get]
func (h *ResolveHandler) GetResults(c *gin.Context) {
	desc := domain.IdentityDescriptor{
		Kind:    domain.KindResults,
		Version: queryDefault(c, "version", h.cfg.Version),
		Level:   c.Param("level"),
	}
	h.resolve(c, desc)
}

func (h *ResolveHandler) resolve(c *gin.Context, desc domain.IdentityDescriptor) {
	req := domain.ResolveRequest{
		Descriptor: desc,
		Preview:    c.Query("preview") == "1" || c.Query("preview") == "true",
		Role:       middleware.GetRole(c),
	}
	if pinID, err := strconv.ParseUint(c.Query("pin"), 10, 64); err == nil && pinID > 0 {
		req.Pin = &domain.Pin{Source: domain.SourceStore, RevisionID: pinID}
	}

	resolution, err := h.resolver.Resolve(req)
	if err != nil {
		if errors.Is(err, common.ErrNoContent) {
			common.ErrorResponse(c, http.StatusNotFound, "No content configured", err)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Resolution failed", err)
		return
	}
	common.SuccessResponse(c, resolution, nil)
}

func queryDefault(c *gin.Context, name, fallback string) string {
	if v := c.Query(name); v != "" {
		return v
	}
	return fallback
}
