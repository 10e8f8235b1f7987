package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/hashicorp/go-hclog"

	"github.com/templateshop/storefront/internal/domain"
	"github.com/templateshop/storefront/internal/service"
)

type PromotionHandler struct {
	promotionService service.PromotionService
	logger           hclog.Logger
}

func NewPromotionHandler(ps service.PromotionService, log hclog.Logger) *PromotionHandler {
	return &PromotionHandler{
		promotionService: ps,
		logger:           log,
	}
}

// GetPromotions handles GET /admin/promotions
//
// swagger:route GET /admin/promotions promotions listPromotions
//
// Returns all promotions, including inactive and expired ones.
//
// Responses:
//
//	200: promotionsResponse
//	500: errorResponse
func (h *PromotionHandler) GetPromotions(w http.ResponseWriter, r *http.Request) {
	promotions, err := h.promotionService.GetPromotions(r.Context())
	if err != nil {
		h.logger.Error("Error getting promotions", "error", err)
		http.Error(w, "Error getting promotions", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(promotions)
}

// GetActivePromotions handles GET /promotions/active
//
// swagger:route GET /promotions/active promotions listActivePromotions
//
// Returns promotions that are effectively active right now.
//
// Responses:
//
//	200: promotionsResponse
//	500: errorResponse
func (h *PromotionHandler) GetActivePromotions(w http.ResponseWriter, r *http.Request) {
	promotions, err := h.promotionService.ListActive(r.Context())
	if err != nil {
		h.logger.Error("Error getting active promotions", "error", err)
		http.Error(w, "Error getting active promotions", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(promotions)
}

// GetUpcomingPromotions handles GET /admin/promotions/upcoming
func (h *PromotionHandler) GetUpcomingPromotions(w http.ResponseWriter, r *http.Request) {
	promotions, err := h.promotionService.ListUpcoming(r.Context())
	if err != nil {
		h.logger.Error("Error getting upcoming promotions", "error", err)
		http.Error(w, "Error getting upcoming promotions", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(promotions)
}

// GetExpiredPromotions handles GET /admin/promotions/expired
func (h *PromotionHandler) GetExpiredPromotions(w http.ResponseWriter, r *http.Request) {
	promotions, err := h.promotionService.ListExpired(r.Context())
	if err != nil {
		h.logger.Error("Error getting expired promotions", "error", err)
		http.Error(w, "Error getting expired promotions", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(promotions)
}

// GetPromotionByID handles GET /admin/promotions/{id}
func (h *PromotionHandler) GetPromotionByID(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	promotion, err := h.promotionService.GetPromotionByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrPromotionNotFound) {
			http.Error(w, "Promotion not found", http.StatusNotFound)
			return
		}
		h.logger.Error("Error getting promotion", "id", id, "error", err)
		http.Error(w, "Error getting promotion", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(promotion)
}

// AddPromotion handles POST /admin/promotions
//
// swagger:route POST /admin/promotions promotions addPromotion
//
// Adds a new promotion. The validity window is validated here; malformed
// windows never reach the stores.
//
// Responses:
//
//	201: promotionResponse
//	400: validationErrorResponse
//	500: errorResponse
func (h *PromotionHandler) AddPromotion(w http.ResponseWriter, r *http.Request) {
	promotion, ok := r.Context().Value(ContextKeyPromotion).(*domain.Promotion)
	if !ok {
		http.Error(w, "Invalid promotion data", http.StatusBadRequest)
		return
	}

	err := h.promotionService.AddPromotion(r.Context(), promotion)
	if err != nil {
		if errors.Is(err, domain.ErrMalformedWindow) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		h.logger.Error("Error adding promotion", "error", err)
		http.Error(w, "Error adding promotion", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(promotion)
}

// UpdatePromotion handles PUT /admin/promotions/{id}
func (h *PromotionHandler) UpdatePromotion(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	promotion, ok := r.Context().Value(ContextKeyPromotion).(*domain.Promotion)
	if !ok {
		http.Error(w, "Invalid promotion data", http.StatusBadRequest)
		return
	}

	promotion.ID = id

	err := h.promotionService.UpdatePromotion(r.Context(), promotion)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPromotionNotFound):
			http.Error(w, "Promotion not found", http.StatusNotFound)
		case errors.Is(err, domain.ErrMalformedWindow):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			h.logger.Error("Error updating promotion", "id", id, "error", err)
			http.Error(w, "Error updating promotion", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeletePromotion handles DELETE /admin/promotions/{id}
func (h *PromotionHandler) DeletePromotion(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	err := h.promotionService.DeletePromotion(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrPromotionNotFound) {
			http.Error(w, "Promotion not found", http.StatusNotFound)
			return
		}
		h.logger.Error("Error deleting promotion", "id", id, "error", err)
		http.Error(w, "Error deleting promotion", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
