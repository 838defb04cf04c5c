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

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/org-admin-api/internal/config"
	"github.com/yukikurage/org-admin-api/internal/database"
	"github.com/yukikurage/org-admin-api/internal/handlers"
	"github.com/yukikurage/org-admin-api/internal/logger"
	"github.com/yukikurage/org-admin-api/internal/middleware"
	"github.com/yukikurage/org-admin-api/internal/repository"
	"github.com/yukikurage/org-admin-api/internal/services"
	"github.com/yukikurage/org-admin-api/internal/storage"
	"github.com/yukikurage/org-admin-api/internal/telemetry"
	"github.com/yukikurage/org-admin-api/internal/utils"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	tel, err := telemetry.Setup(ctx, cfg.OTel)
	if err != nil {
		log.Fatalf("Failed to set up telemetry: %v", err)
	}

	logger.Setup(cfg)
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.Migrate(db); err != nil {
		slog.ErrorContext(ctx, "failed to run migrations", "error", err)
		os.Exit(1)
	}

	logos, err := newLogoStorage(cfg)
	if err != nil {
		slog.ErrorContext(ctx, "failed to set up logo storage", "error", err)
		os.Exit(1)
	}

	router := setupRouter(cfg, db, logos)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if err := database.Close(db); err != nil {
		slog.ErrorContext(shutdownCtx, "database close error", "error", err)
	}

	if err := tel.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

// newLogoStorage uploads to Cloudinary when credentials are configured and
// falls back to the local upload directory.
func newLogoStorage(cfg *config.Config) (storage.LogoStorage, error) {
	if cfg.Cloudinary.Enabled() {
		slog.Info("storing logos in cloudinary", "folder", cfg.Cloudinary.Folder)
		return storage.NewCloudinaryStorage(cfg.Cloudinary)
	}

	ids, err := utils.NewIDGenerator(1)
	if err != nil {
		return nil, err
	}
	slog.Info("storing logos on local disk", "dir", cfg.Upload.Dir)
	return storage.NewLocalStorage(cfg.Upload.Dir, cfg.Upload.URLPrefix, ids)
}

func setupRouter(cfg *config.Config, db *gorm.DB, logos storage.LogoStorage) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span → request id → recovery → logger
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AddAllowHeaders("Authorization", "X-Request-ID")
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	if len(cfg.CORSAllowedOrigins) == 1 && cfg.CORSAllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	}
	router.Use(cors.New(corsConfig))

	if cfg.MetricsEnabled {
		metrics := middleware.NewMetrics()
		router.Use(metrics.Middleware())
		router.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	if !cfg.Cloudinary.Enabled() {
		router.Static(cfg.Upload.URLPrefix, cfg.Upload.Dir)
	}

	orgRepo := repository.NewOrganizationRepository(db)
	userRepo := repository.NewUserRepository(db)

	orgService := services.NewOrganizationService(orgRepo, userRepo, logos, cfg.Upload.MaxLogoBytes)
	userService := services.NewUserService(userRepo, orgRepo)

	handlers.SetupRoutes(router, handlers.Handlers{
		Organizations: handlers.NewOrganizationHandler(orgService),
		Users:         handlers.NewUserHandler(userService),
		System:        handlers.NewSystemHandler(db, cfg.OTel.ServiceVersion),
	})

	return router
}
