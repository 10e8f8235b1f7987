package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hashicorp/go-hclog"

	"github.com/templateshop/storefront/internal/domain"
	"github.com/templateshop/storefront/internal/repository"
	"github.com/templateshop/storefront/internal/service"
)

// AdminHandler serves the operator endpoints: login, dashboard stats,
// settings and backup/restore.
type AdminHandler struct {
	auth       service.AuthService
	products   service.ProductService
	promotions service.PromotionService
	backup     service.BackupService
	settings   repository.SettingsRepository
	logger     hclog.Logger
}

func NewAdminHandler(
	auth service.AuthService,
	products service.ProductService,
	promotions service.PromotionService,
	backup service.BackupService,
	settings repository.SettingsRepository,
	log hclog.Logger) *AdminHandler {
	return &AdminHandler{
		auth:       auth,
		products:   products,
		promotions: promotions,
		backup:     backup,
		settings:   settings,
		logger:     log,
	}
}

type loginRequest struct {
	AccessCode string `json:"accessCode"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login handles POST /admin/login
//
// swagger:route POST /admin/login admin adminLogin
//
// Exchanges the operator access code for a session token.
//
// Responses:
//
//	200: loginResponse
//	401: errorResponse
//	429: errorResponse
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid login request", http.StatusBadRequest)
		return
	}

	token, err := h.auth.Login(req.AccessCode)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAccessLocked):
			w.Header().Set("Retry-After", h.auth.RemainingLockTime().String())
			http.Error(w, "Too many failed attempts, try again later", http.StatusTooManyRequests)
		case errors.Is(err, service.ErrInvalidAccessCode):
			http.Error(w, "Invalid access code", http.StatusUnauthorized)
		default:
			h.logger.Error("Error during login", "error", err)
			http.Error(w, "Error during login", http.StatusInternalServerError)
		}
		return
	}

	json.NewEncoder(w).Encode(loginResponse{Token: token})
}

type statsResponse struct {
	Products   *service.ProductStats   `json:"products"`
	Promotions *service.PromotionStats `json:"promotions"`
}

// Stats handles GET /admin/stats
//
// swagger:route GET /admin/stats admin adminStats
//
// Returns dashboard statistics for the catalog and the promotion set.
//
// Responses:
//
//	200: statsResponse
//	500: errorResponse
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	productStats, err := h.products.Stats(r.Context())
	if err != nil {
		h.logger.Error("Error computing product stats", "error", err)
		http.Error(w, "Error computing stats", http.StatusInternalServerError)
		return
	}

	promotionStats, err := h.promotions.Stats(r.Context())
	if err != nil {
		h.logger.Error("Error computing promotion stats", "error", err)
		http.Error(w, "Error computing stats", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(statsResponse{
		Products:   productStats,
		Promotions: promotionStats,
	})
}

// ExportBackup handles GET /admin/backup
//
// swagger:route GET /admin/backup admin exportBackup
//
// Exports the whole store state as a downloadable JSON document.
//
// Responses:
//
//	200: backupResponse
//	500: errorResponse
func (h *AdminHandler) ExportBackup(w http.ResponseWriter, r *http.Request) {
	backup, err := h.backup.Export(r.Context())
	if err != nil {
		h.logger.Error("Error exporting backup", "error", err)
		http.Error(w, "Error exporting backup", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="templateshop-backup.json"`)
	json.NewEncoder(w).Encode(backup)
}

// RestoreBackup handles POST /admin/restore
//
// swagger:route POST /admin/restore admin restoreBackup
//
// Replaces the store state from an exported backup document.
//
// Responses:
//
//	204: noContentResponse
//	400: errorResponse
//	422: errorResponse
func (h *AdminHandler) RestoreBackup(w http.ResponseWriter, r *http.Request) {
	var backup service.Backup
	if err := json.NewDecoder(r.Body).Decode(&backup); err != nil {
		http.Error(w, "Invalid backup document", http.StatusBadRequest)
		return
	}

	if err := h.backup.Restore(r.Context(), &backup); err != nil {
		h.logger.Error("Error restoring backup", "error", err)
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetSettings handles GET /admin/settings
func (h *AdminHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Get(r.Context())
	if err != nil {
		h.logger.Error("Error getting settings", "error", err)
		http.Error(w, "Error getting settings", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(settings)
}

// UpdateSettings handles PUT /admin/settings
func (h *AdminHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	settings, ok := r.Context().Value(ContextKeySettings).(*domain.Settings)
	if !ok {
		http.Error(w, "Invalid settings data", http.StatusBadRequest)
		return
	}

	if err := h.settings.Save(r.Context(), settings); err != nil {
		h.logger.Error("Error saving settings", "error", err)
		http.Error(w, "Error saving settings", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
