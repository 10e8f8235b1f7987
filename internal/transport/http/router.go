package http

import (
	"net/http"
	"path/filepath"
	"runtime"

	"github.com/go-openapi/runtime/middleware"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/hashicorp/go-hclog"

	"github.com/templateshop/storefront/internal/clock"
	"github.com/templateshop/storefront/internal/domain"
	"github.com/templateshop/storefront/internal/service"
	websocketTransport "github.com/templateshop/storefront/internal/transport/websocket"
)

func NewRouter(
	ph *ProductHandler,
	prh *PromotionHandler,
	ah *AdminHandler,
	ih *ImageHandler,
	validator *domain.Validation,
	clk clock.Clock,
	auth service.AuthService,
	logger hclog.Logger,
	wsh *websocketTransport.Handler,
	corsConfig *CORSConfig,
) *mux.Router {
	router := mux.NewRouter()

	// Create a middleware instance
	mw := NewMiddleware(logger, validator, clk, auth, corsConfig)

	// Apply global middleware
	router.Use(mw.LoggingMiddleware)
	router.Use(mw.CORSMiddleware)

	// Public storefront routes
	getRouter := router.Methods("GET").Subrouter()
	getRouter.Use(mw.ContentTypeMiddleware)
	getRouter.HandleFunc("/products", ph.GetProducts)
	getRouter.HandleFunc("/products/{id}", ph.GetProductByID)
	getRouter.HandleFunc("/promotions/active", prh.GetActivePromotions)
	getRouter.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Catalog reads are compressed for storefront clients
	getRouter.Use(func(next http.Handler) http.Handler {
		return handlers.CompressHandler(next)
	})

	// Checkout is a redirect, not JSON
	router.HandleFunc("/products/{id}/checkout", ph.Checkout).Methods("GET")

	// Live updates
	router.HandleFunc("/ws", wsh.HandleWebSocket).Methods("GET")

	// Product images
	router.HandleFunc("/images/{id}/{filename}", ih.GetImage).Methods("GET")

	// Admin login is the only unauthenticated admin route
	router.HandleFunc("/admin/login", ah.Login).Methods("POST")

	// Authenticated admin routes
	adminRouter := router.PathPrefix("/admin").Subrouter()
	adminRouter.Use(mw.AuthMiddleware)
	adminRouter.Use(mw.ContentTypeMiddleware)

	adminRouter.HandleFunc("/promotions", prh.GetPromotions).Methods("GET")
	adminRouter.HandleFunc("/promotions/upcoming", prh.GetUpcomingPromotions).Methods("GET")
	adminRouter.HandleFunc("/promotions/expired", prh.GetExpiredPromotions).Methods("GET")
	adminRouter.HandleFunc("/promotions/{id}", prh.GetPromotionByID).Methods("GET")
	adminRouter.HandleFunc("/promotions/{id}", prh.DeletePromotion).Methods("DELETE")
	adminRouter.HandleFunc("/products/{id}", ph.DeleteProduct).Methods("DELETE")
	adminRouter.HandleFunc("/stats", ah.Stats).Methods("GET")
	adminRouter.HandleFunc("/backup", ah.ExportBackup).Methods("GET")
	adminRouter.HandleFunc("/restore", ah.RestoreBackup).Methods("POST")
	adminRouter.HandleFunc("/settings", ah.GetSettings).Methods("GET")

	// Admin routes requiring request body validation
	productWriteRouter := adminRouter.NewRoute().Subrouter()
	productWriteRouter.Use(mw.ProductValidationMiddleware)
	productWriteRouter.HandleFunc("/products", ph.AddProduct).Methods("POST")
	productWriteRouter.HandleFunc("/products/{id}", ph.UpdateProduct).Methods("PUT")

	promotionWriteRouter := adminRouter.NewRoute().Subrouter()
	promotionWriteRouter.Use(mw.PromotionValidationMiddleware)
	promotionWriteRouter.HandleFunc("/promotions", prh.AddPromotion).Methods("POST")
	promotionWriteRouter.HandleFunc("/promotions/{id}", prh.UpdatePromotion).Methods("PUT")

	settingsRouter := adminRouter.NewRoute().Subrouter()
	settingsRouter.Use(mw.SettingsValidationMiddleware)
	settingsRouter.HandleFunc("/settings", ah.UpdateSettings).Methods("PUT")

	// Image uploads require an admin session
	imageUploadRouter := router.PathPrefix("/images").Subrouter()
	imageUploadRouter.Use(mw.AuthMiddleware)
	imageUploadRouter.HandleFunc("", ih.UploadMultipart).Methods("POST")
	imageUploadRouter.HandleFunc("/{id}/{filename}", ih.Upload).Methods("POST")

	// Swagger UI and specification routes
	// Determine the absolute path to the swagger.yaml file
	_, filename, _, _ := runtime.Caller(0)
	basePath := filepath.Dir(filename)                        // .../internal/transport/http
	rootDir := filepath.Join(basePath, "..", "..", "..")      // Navigate up to the root
	swaggerFilePath := filepath.Join(rootDir, "swagger.yaml") // .../swagger.yaml

	// Serve the swagger.yaml file
	router.HandleFunc("/swagger.yaml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, swaggerFilePath)
	}).Methods("GET")

	// Configure the Redoc middleware to point to the correct SpecURL
	swaggerOpts := middleware.RedocOpts{SpecURL: "/swagger.yaml"}
	swaggerHandler := middleware.Redoc(swaggerOpts, nil)
	router.Handle("/docs", swaggerHandler).Methods("GET")

	return router
}
