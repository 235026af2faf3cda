package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"rugops/internal/config"
	"rugops/internal/domain"
	"rugops/internal/handler"
	"rugops/internal/middleware"
	"rugops/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	authSvc service.AuthService,
	authH *handler.AuthHandler,
	tenantH *handler.TenantHandler,
	userH *handler.UserHandler,
	clientH *handler.ClientHandler,
	jobH *handler.JobHandler,
	reportH *handler.ReportHandler,
	estimateH *handler.EstimateHandler,
	portalH *handler.PortalHandler,
	payoutH *handler.PayoutHandler,
	rateH *handler.RateHandler,
	fileH *handler.FileHandler,
	statsH *handler.StatsHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// API documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.Refresh)

	// Public tenant signup
	v1.POST("/tenants", tenantH.Register)

	// Public client portal - authenticated by portal token only
	portal := v1.Group("/portal")
	portal.GET("/:token", portalH.View)
	portal.POST("/:token/approve", portalH.Approve)
	portal.POST("/:token/decline", portalH.Decline)
	portal.POST("/:token/payments", portalH.RecordPayment)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	// Tenant settings
	protected.GET("/tenant", tenantH.Get)
	protected.PUT("/tenant", middleware.RequireRole(domain.RoleAdmin), tenantH.Update)

	// Staff user management
	users := protected.Group("/users")
	users.POST("", middleware.RequireRole(domain.RoleAdmin), userH.Create)
	users.GET("", middleware.RequireRole(domain.RoleAdmin), userH.List)
	users.GET("/:id", userH.Get)
	users.PUT("/:id", middleware.RequireRole(domain.RoleAdmin), userH.Update)
	users.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), userH.Delete)

	// Clients
	clients := protected.Group("/clients")
	clients.POST("", clientH.Create)
	clients.GET("", clientH.List)
	clients.GET("/:id", clientH.Get)
	clients.PUT("/:id", clientH.Update)
	clients.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), clientH.Delete)

	// Jobs and rugs
	jobs := protected.Group("/jobs")
	jobs.POST("", jobH.Create)
	jobs.GET("", jobH.List)
	jobs.GET("/:id", jobH.Get)
	jobs.PUT("/:id", jobH.Update)
	jobs.POST("/:id/transition", jobH.Transition)
	jobs.POST("/:id/rugs", jobH.AddRug)
	jobs.GET("/:id/rugs", jobH.ListRugs)
	jobs.DELETE("/:id/rugs/:rugId", jobH.DeleteRug)

	// Inspection reports
	jobs.POST("/:id/report", reportH.Request)
	jobs.GET("/:id/report", reportH.GetByJob)
	reports := protected.Group("/reports")
	reports.GET("/:id", reportH.Get)
	reports.POST("/:id/retry", reportH.Retry)

	// Estimates
	jobs.POST("/:id/estimate", estimateH.Create)
	jobs.GET("/:id/estimate", estimateH.GetByJob)
	estimates := protected.Group("/estimates")
	estimates.GET("/:id", estimateH.Get)
	estimates.PUT("/:id/lines/:lineId", estimateH.UpdateLine)
	estimates.POST("/:id/lines", estimateH.AddLine)
	estimates.DELETE("/:id/lines/:lineId", estimateH.RemoveLine)
	estimates.POST("/:id/send", estimateH.Send)
	estimates.GET("/:id/feedback", estimateH.Feedback)
	estimates.GET("/:id/export", estimateH.Export)
	estimates.DELETE("/:id", estimateH.Delete)

	// Technician payouts
	payouts := protected.Group("/payouts")
	payouts.Use(middleware.RequireRole(domain.RoleAdmin))
	payouts.POST("", payoutH.Create)
	payouts.GET("", payoutH.List)
	payouts.GET("/earnings", payoutH.Earnings)
	payouts.GET("/earnings/export", payoutH.ExportEarnings)
	payouts.GET("/:id", payoutH.Get)
	payouts.POST("/:id/pay", payoutH.MarkPaid)

	// Default service rates
	rates := protected.Group("/rates")
	rates.GET("", rateH.List)
	rates.PUT("", middleware.RequireRole(domain.RoleAdmin), rateH.Upsert)

	// Files
	files := protected.Group("/files")
	files.POST("", fileH.Upload)
	files.GET("", fileH.List)
	files.GET("/:id", fileH.Get)
	files.GET("/:id/download", fileH.DownloadURL)
	files.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), fileH.Delete)

	// Stats
	stats := protected.Group("/stats")
	stats.Use(middleware.RequireRole(domain.RoleAdmin))
	stats.GET("/revenue", statsH.Revenue)
	stats.GET("/dashboard", statsH.Dashboard)

	return r
}
