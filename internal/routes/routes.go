package routes

import (
	"github.com/beaconhq/beacon-backend/internal/handler"
	"github.com/beaconhq/beacon-backend/internal/middleware"
	"github.com/beaconhq/beacon-backend/pkg/jwt"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Handlers bundles everything the router wires up
type Handlers struct {
	Content    *handler.ContentHandler
	Resolve    *handler.ResolveHandler
	Lead       *handler.LeadHandler
	Submission *handler.SubmissionHandler
}

// Setup configures all API routes
func Setup(router *gin.Engine, h Handlers, jwtManager *jwt.Manager, redisClient *redis.Client) {
	api := router.Group("/api/v1")
	auth := middleware.JWTAuth(jwtManager)
	optionalAuth := middleware.OptionalJWTAuth(jwtManager)

	// Public content resolution. OptionalJWTAuth so editors carrying a
	// token can request preview; everyone else resolves published.
	content := api.Group("/content")
	content.Use(optionalAuth)
	content.GET("/questionset", h.Resolve.GetQuestionSet)
	content.GET("/results/:level", h.Resolve.GetResults)

	// Lead capture (rate limited: the one endpoint bots hammer)
	leads := api.Group("/leads")
	leads.Use(middleware.RateLimit(redisClient, middleware.LeadRateLimitConfig()))
	leads.POST("", h.Lead.CreateLead)

	// Assessment submissions
	submissions := api.Group("/submissions")
	submissions.POST("", h.Submission.CreateSubmission)
	submissions.GET("/:id", h.Submission.GetSubmission)

	// Editor surface: draft authoring and preview pointer
	editor := api.Group("/admin/content")
	editor.Use(auth, middleware.RequireEditor())
	editor.GET("/identities", h.Content.ListIdentities)
	editor.GET("/identities/:id/revisions", h.Content.ListRevisions)
	editor.GET("/revisions/:id", h.Content.GetRevision)
	editor.POST("/revisions", h.Content.CreateRevision)
	editor.POST("/import/questionset", h.Content.ImportQuestionSet)
	editor.PUT("/identities/:id/preview", h.Content.SetPreview)

	// Admin surface: publishing and identity lifecycle
	admin := api.Group("/admin/content")
	admin.Use(auth, middleware.RequireAdmin())
	admin.PUT("/identities/:id/published", h.Content.SetPublished)
	admin.POST("/identities/:id/archive", h.Content.Archive)
	admin.POST("/identities/:id/unarchive", h.Content.Unarchive)
	admin.DELETE("/identities/:id", h.Content.Delete)

	// Admin reporting
	reporting := api.Group("/admin")
	reporting.Use(auth, middleware.RequireAdmin())
	reporting.GET("/leads", h.Lead.ListLeads)
	reporting.GET("/submissions", h.Submission.ListSubmissions)
}
