package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/hashicorp/go-hclog"

	"github.com/templateshop/storefront/internal/domain"
	"github.com/templateshop/storefront/internal/service"
)

type ProductHandler struct {
	productService service.ProductService
	logger         hclog.Logger
}

func NewProductHandler(ps service.ProductService, log hclog.Logger) *ProductHandler {
	return &ProductHandler{
		productService: ps,
		logger:         log,
	}
}

// parseAt reads the optional ?at= RFC3339 override used for deterministic
// price previews. A zero time means "use the server clock".
func parseAt(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("at")
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, raw)
}

// GetProducts handles GET /products
//
// swagger:route GET /products products listProducts
//
// Returns the catalog with resolved sale prices.
//
// Responses:
//
//	200: resolvedProductsResponse
//	400: errorResponse
//	500: errorResponse
func (h *ProductHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	at, err := parseAt(r)
	if err != nil {
		http.Error(w, "Invalid 'at' timestamp, expected RFC3339", http.StatusBadRequest)
		return
	}

	opts := service.ListOptions{
		Category:     r.URL.Query().Get("category"),
		FeaturedOnly: r.URL.Query().Get("featured") == "true",
		Query:        r.URL.Query().Get("q"),
		Sort:         r.URL.Query().Get("sort"),
		At:           at,
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		opts.Limit = limit
	}

	views, err := h.productService.GetProducts(r.Context(), opts)
	if err != nil {
		h.logger.Error("Error getting products", "error", err)
		http.Error(w, "Error getting products", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(views)
}

// GetProductByID handles GET /products/{id}
//
// swagger:route GET /products/{id} products getProductByID
//
// Returns a product with its resolved sale price and records a view.
//
// Responses:
//
//	200: resolvedProductResponse
//	400: errorResponse
//	404: errorResponse
func (h *ProductHandler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	at, err := parseAt(r)
	if err != nil {
		http.Error(w, "Invalid 'at' timestamp, expected RFC3339", http.StatusBadRequest)
		return
	}

	view, err := h.productService.GetProductByID(r.Context(), id, at)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			http.Error(w, "Product not found", http.StatusNotFound)
			return
		}

		h.logger.Error("Error getting product", "id", id, "error", err)
		http.Error(w, "Error getting product", http.StatusInternalServerError)
		return
	}

	if err := h.productService.IncrementViews(r.Context(), id); err != nil {
		h.logger.Warn("Unable to record view", "id", id, "error", err)
	}

	json.NewEncoder(w).Encode(view)
}

// Checkout handles GET /products/{id}/checkout
//
// swagger:route GET /products/{id}/checkout products checkoutProduct
//
// Redirects the buyer to the seller-supplied payment page.
//
// Responses:
//
//	307: emptyResponse
//	404: errorResponse
func (h *ProductHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	link, err := h.productService.CheckoutLink(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProductNotFound):
			http.Error(w, "Product not found", http.StatusNotFound)
		case errors.Is(err, domain.ErrPaymentLinkNotConfigured):
			http.Error(w, "Payment link not configured", http.StatusNotFound)
		default:
			h.logger.Error("Error resolving checkout link", "id", id, "error", err)
			http.Error(w, "Error resolving checkout link", http.StatusInternalServerError)
		}
		return
	}

	http.Redirect(w, r, link, http.StatusTemporaryRedirect)
}

// AddProduct handles POST /admin/products
//
// swagger:route POST /admin/products products addProduct
//
// Adds a new product.
//
// Responses:
//
//	201: productResponse
//	400: validationErrorResponse
//	500: errorResponse
func (h *ProductHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	// Retrieve the validated product from the context
	product, ok := r.Context().Value(ContextKeyProduct).(*domain.Product)
	if !ok {
		http.Error(w, "Invalid product data", http.StatusBadRequest)
		return
	}

	err := h.productService.AddProduct(r.Context(), product)
	if err != nil {
		h.logger.Error("Error adding product", "error", err)
		http.Error(w, "Error adding product", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(product)
}

// UpdateProduct handles PUT /admin/products/{id}
//
// swagger:route PUT /admin/products/{id} products updateProduct
//
// Updates an existing product.
//
// Responses:
//
//	204: noContentResponse
//	400: validationErrorResponse
//	404: errorResponse
//	500: errorResponse
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	// Retrieve the validated product from the context
	product, ok := r.Context().Value(ContextKeyProduct).(*domain.Product)
	if !ok {
		http.Error(w, "Invalid product data", http.StatusBadRequest)
		return
	}

	product.ID = id

	err := h.productService.UpdateProduct(r.Context(), product)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			http.Error(w, "Product not found", http.StatusNotFound)
			return
		}
		h.logger.Error("Error updating product", "id", id, "error", err)
		http.Error(w, "Error updating product", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteProduct handles DELETE /admin/products/{id}
//
// swagger:route DELETE /admin/products/{id} products deleteProduct
//
// Deletes a product.
//
// Responses:
//
//	204: noContentResponse
//	404: errorResponse
//	500: errorResponse
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	err := h.productService.DeleteProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			http.Error(w, "Product not found", http.StatusNotFound)
			return
		}
		h.logger.Error("Error deleting product", "id", id, "error", err)
		http.Error(w, "Error deleting product", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
