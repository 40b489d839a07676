package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nomuacademy/academy-server-go/internal/http/routes"
	"github.com/nomuacademy/academy-server-go/pkg/cache"
	"github.com/nomuacademy/academy-server-go/pkg/config"
	"github.com/nomuacademy/academy-server-go/pkg/database"
	"github.com/nomuacademy/academy-server-go/pkg/email"
	"github.com/nomuacademy/academy-server-go/pkg/logger"
	"github.com/nomuacademy/academy-server-go/pkg/metrics"
	"github.com/nomuacademy/academy-server-go/pkg/middleware"
	"github.com/nomuacademy/academy-server-go/pkg/request"
	"github.com/nomuacademy/academy-server-go/pkg/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	appLogger, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(ctx, cfg.Database, appLogger)
	if err != nil {
		appLogger.Error("database connection failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := database.Close(db, appLogger); err != nil {
			appLogger.Error("database close failed", slog.String("error", err.Error()))
		}
	}()

	// Course catalog cache. Falls back to in-process memory when Redis is
	// not configured.
	var cacheClient cache.Client
	if cfg.Redis.Addr != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			appLogger.Warn("redis unavailable, using in-memory cache", slog.String("error", err.Error()))
			cacheClient = cache.NewMemoryCache()
		} else {
			cacheClient = redisClient
		}
	} else {
		cacheClient = cache.NewMemoryCache()
	}
	defer cacheClient.Close()

	// Initialize object storage client for course media and tool images
	storageClient := storage.NewClient(cfg.Storage.BaseURL, cfg.Storage.ServiceKey)

	// Initialize Email client
	emailClient := email.NewClient(
		cfg.Email.Host,
		cfg.Email.Port,
		cfg.Email.Username,
		cfg.Email.Password,
		cfg.Email.From,
		cfg.Email.Secure,
	)

	router := gin.New()

	router.Use(middleware.Recovery(appLogger))
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(middleware.RequestID())                                  // Add request IDs for tracing
	router.Use(middleware.Compression(middleware.BestSpeed))            // Compress responses (gzip)
	router.Use(middleware.RequestLogger(appLogger))                     // Log all requests
	router.Use(middleware.SecurityHeaders())                            // Add security headers
	router.Use(middleware.CacheControl())                               // Set cache headers
	router.Use(middleware.RequestSizeLimitWithUploads(10<<20, 500<<20)) // 10MB bodies, 500MB uploads
	router.Use(metrics.Middleware())                                    // Collect Prometheus metrics
	router.Use(request.Handler(appLogger))                              // Request context handler

	// Rate limiting (100 requests per minute per IP)
	rateLimiter := middleware.NewRateLimiter(100, time.Minute)
	router.Use(rateLimiter.Middleware())

	routes.Register(router, cfg, db, appLogger, cacheClient, storageClient, emailClient)

	srv := &http.Server{
		Addr:              cfg.ServerAddress(),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	go func() {
		appLogger.Info("server starting",
			slog.String("addr", cfg.ServerAddress()),
			slog.String("env", cfg.Env),
			slog.String("log_level", cfg.LogLevel),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("server listen failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	appLogger.Info("server started successfully")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("server shutdown failed", slog.String("error", err.Error()))
	} else {
		appLogger.Info("server stopped gracefully")
	}
}
