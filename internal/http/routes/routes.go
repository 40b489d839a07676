package routes

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/nomuacademy/academy-server-go/internal/features/aitool"
	"github.com/nomuacademy/academy-server-go/internal/features/auth"
	"github.com/nomuacademy/academy-server-go/internal/features/course"
	"github.com/nomuacademy/academy-server-go/internal/features/enrollment"
	"github.com/nomuacademy/academy-server-go/internal/features/user"
	"github.com/nomuacademy/academy-server-go/internal/middleware"
	"github.com/nomuacademy/academy-server-go/pkg/cache"
	"github.com/nomuacademy/academy-server-go/pkg/config"
	"github.com/nomuacademy/academy-server-go/pkg/email"
	"github.com/nomuacademy/academy-server-go/pkg/health"
	"github.com/nomuacademy/academy-server-go/pkg/storage"
)

// Register wires all feature routes onto the engine.
func Register(engine *gin.Engine, cfg *config.Config, db *gorm.DB, logger *slog.Logger, cacheClient cache.Client, storageClient *storage.Client, emailClient *email.Client) {
	// Health check endpoints (no /api prefix for Kubernetes probes)
	healthHandler := health.NewHandler(db, logger)
	engine.GET("/health", healthHandler.Health)
	engine.GET("/ready", healthHandler.Ready)
	engine.GET("/version", healthHandler.Version)

	// Metrics endpoint for Prometheus
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Database stats endpoint (protected in production)
	if !cfg.IsProduction() {
		engine.GET("/debug/db-stats", healthHandler.DBStats)
	}

	api := engine.Group("/api")

	// Initialize global middleware instance
	middleware.Initialize(db, cfg.JWTSecret, logger)

	authHandler := auth.NewHandler(db, logger, cfg, emailClient)
	auth.RegisterRoutes(api, authHandler)

	user.RegisterRoutes(api, db, logger)

	courseHandler := course.NewHandler(db, logger, cacheClient)
	course.RegisterRoutes(api, courseHandler)

	enrollmentHandler := enrollment.NewHandler(db, logger)
	enrollment.RegisterRoutes(api, enrollmentHandler)

	aitoolHandler := aitool.NewHandler(db, logger, storageClient, cfg.Storage.ImageBucket)
	aitool.RegisterRoutes(api, aitoolHandler)

	// Admin surface. The shared secret gates every route; a bearer token is
	// optional and, when present, identifies the acting admin.
	adminGate := middleware.NewAdminGate(cfg.AdminSecret, logger)
	admin := api.Group("/admin")
	admin.Use(adminGate.Handler(), middleware.OptionalAuthentication())
	{
		// Secret check for the admin console login.
		admin.POST("/auth", adminGate.Verify)

		courseAdminHandler := course.NewAdminHandler(db, logger, cacheClient, storageClient, cfg.Storage.VideoBucket, cfg.Storage.ImageBucket)
		course.RegisterAdminRoutes(admin, courseAdminHandler)

		enrollmentAdminHandler := enrollment.NewAdminHandler(db, logger, emailClient)
		enrollment.RegisterAdminRoutes(admin, enrollmentAdminHandler)

		aitool.RegisterAdminRoutes(admin, aitoolHandler)

		userHandler := user.NewHandler(db, logger)
		admin.GET("/users", userHandler.ListUsers)
	}
}
