package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/nicholasjackson/env"

	"github.com/templateshop/storefront/internal/clock"
	"github.com/templateshop/storefront/internal/domain"
	"github.com/templateshop/storefront/internal/events"
	"github.com/templateshop/storefront/internal/files"
	"github.com/templateshop/storefront/internal/repository"
	"github.com/templateshop/storefront/internal/service"
	httpTransport "github.com/templateshop/storefront/internal/transport/http"
	websocketTransport "github.com/templateshop/storefront/internal/transport/websocket"
)

// Environment variables
var (
	bindAddress = env.String("BIND_ADDRESS", false,
		":9090", "Bind address for the server")
	logLevel = env.String("LOG_LEVEL", false,
		"debug", "Log output level for the server [debug, info, trace]")
	imagePath = env.String("IMAGE_PATH", false,
		"./imagestore", "Base path for stored product images")
	maxImageSize = env.Int("MAX_IMAGE_SIZE", false,
		5*1024*1024, "Maximum product image size in bytes")
	adminAccessCode = env.String("ADMIN_ACCESS_CODE", false,
		"ADMIN-2024", "Operator access code for the admin panel")
	jwtSecret = env.String("JWT_SECRET", false,
		"development-secret", "Signing key for admin session tokens")
	sessionTTL = env.Duration("SESSION_TTL", false,
		30*time.Minute, "Admin session lifetime")
	allowedOrigins = env.String("ALLOWED_ORIGINS", false,
		"http://localhost:3000", "Comma separated list of allowed CORS origins")
)

func main() {
	env.Parse()

	// Initialize the logger
	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "storefront",
		Level: hclog.LevelFromString(*logLevel),
	})

	// Create a standard logger for the HTTP server
	standardLogger := logger.StandardLogger(&hclog.StandardLoggerOptions{InferLevels: true})

	// The event bus is shared between services and the websocket push
	eventBus := events.NewEventBus[any]()

	clk := clock.NewRealClock()

	// Initialize the stores
	productRepo := repository.NewMemoryProductRepository()
	promotionRepo := repository.NewMemoryPromotionRepository()
	settingsRepo := repository.NewMemorySettingsRepository()

	validator := domain.NewValidation()

	// Initialize the services
	ps := service.NewProductService(
		productRepo,
		promotionRepo,
		clk,
		eventBus,
		logger.Named("product-service"),
	)

	prs := service.NewPromotionService(
		promotionRepo,
		clk,
		eventBus,
		logger.Named("promotion-service"),
	)

	auth, err := service.NewAuthService(
		*adminAccessCode,
		*jwtSecret,
		*sessionTTL,
		clk,
		logger.Named("auth-service"),
	)
	if err != nil {
		logger.Error("Unable to initialize auth service", "error", err)
		os.Exit(1)
	}

	backup := service.NewBackupService(
		productRepo,
		promotionRepo,
		settingsRepo,
		validator,
		clk,
		logger.Named("backup-service"),
	)

	// Initialize the image store
	imageStore, err := files.NewLocal(*imagePath, *maxImageSize)
	if err != nil {
		logger.Error("Unable to initialize image store", "error", err)
		os.Exit(1)
	}

	// Initialize HTTP handlers
	ph := httpTransport.NewProductHandler(ps, logger.Named("product-handler"))
	prh := httpTransport.NewPromotionHandler(prs, logger.Named("promotion-handler"))
	ah := httpTransport.NewAdminHandler(auth, ps, prs, backup, settingsRepo, logger.Named("admin-handler"))
	ih := httpTransport.NewImageHandler(logger.Named("image-handler"), imageStore)

	origins := strings.Split(*allowedOrigins, ",")

	// Initialize the WebSocket handler with the event bus
	wh := websocketTransport.NewHandler(
		logger.Named("websocket-handler"),
		eventBus,
		origins,
	)

	// Initialize the router
	corsConfig := httpTransport.DefaultCORSConfig()
	corsConfig.AllowedOrigins = origins
	router := httpTransport.NewRouter(ph, prh, ah, ih, validator, clk, auth, logger, wh, corsConfig)

	// Create the HTTP Server
	server := &http.Server{
		Addr:         *bindAddress,
		Handler:      router,
		ErrorLog:     standardLogger,
		IdleTimeout:  120 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	// Start the server in a new goroutine
	go func() {
		logger.Info("Starting server", "bind_address", *bindAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Error starting server", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	<-sigChan
	logger.Info("Shutting down server")

	// Context for graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := ps.Close(); err != nil {
		logger.Error("Error closing product service", "error", err)
	}

	server.Shutdown(shutdownCtx)
}
