// Package classification of Storefront API
//
// # Documentation for the template storefront API
//
// Schemes: http
// BasePath: /
// Version: 1.0.0
//
// Consumes:
// - application/json
//
// Produces:
// - application/json
//
// swagger:meta
package http

import (
	"github.com/templateshop/storefront/internal/domain"
	"github.com/templateshop/storefront/internal/pricing"
	"github.com/templateshop/storefront/internal/service"
)

// NOTE: Types defined here are purely for documentation purposes
// These types are not used by any of the handlers

// Generic error message returned as a string
// swagger:response errorResponse
type errorResponseWrapper struct {
	// Description of the error
	// in: body
	Body ErrorResponse
}

// Validation errors for a rejected request body
// swagger:response validationErrorResponse
type validationErrorResponseWrapper struct {
	// Collection of the errors
	// in: body
	Body domain.ValidationErrors
}

// The catalog with resolved sale prices
// swagger:response resolvedProductsResponse
type resolvedProductsResponseWrapper struct {
	// All current products with their resolved prices
	// in: body
	Body []pricing.ResolvedView
}

// A single product with its resolved sale price
// swagger:response resolvedProductResponse
type resolvedProductResponseWrapper struct {
	// in: body
	Body pricing.ResolvedView
}

// Data structure representing a single product
// swagger:response productResponse
type productResponseWrapper struct {
	// A single product
	// in: body
	Body domain.Product
}

// A list of promotions
// swagger:response promotionsResponse
type promotionsResponseWrapper struct {
	// in: body
	Body []domain.Promotion
}

// Data structure representing a single promotion
// swagger:response promotionResponse
type promotionResponseWrapper struct {
	// in: body
	Body domain.Promotion
}

// A full store backup document
// swagger:response backupResponse
type backupResponseWrapper struct {
	// in: body
	Body service.Backup
}

// The admin session token
// swagger:response loginResponse
type loginResponseWrapper struct {
	// in: body
	Body loginResponse
}

// No content response for endpoints that return 204
// swagger:response noContentResponse
type noContentResponseWrapper struct{}

// Empty response body, used for redirects
// swagger:response emptyResponse
type emptyResponseWrapper struct{}

// swagger:parameters getProductByID deleteProduct updateProduct checkoutProduct
type productIDParamsWrapper struct {
	// The ID of the product
	// in: path
	// required: true
	ID string `json:"id"`
}

// swagger:parameters addProduct updateProduct
type productBodyParamsWrapper struct {
	// Product data structure to create or update.
	// in: body
	// required: true
	Body domain.Product
}

// swagger:parameters addPromotion updatePromotion
type promotionBodyParamsWrapper struct {
	// Promotion data structure to create or update.
	// in: body
	// required: true
	Body domain.Promotion
}

// swagger:parameters listProducts
type listProductsParamsWrapper struct {
	// Keep only products with this category tag
	// in: query
	Category string `json:"category"`

	// Keep only featured products
	// in: query
	Featured bool `json:"featured"`

	// Free-text search over name, description and tags
	// in: query
	Q string `json:"q"`

	// Cap the number of returned products
	// in: query
	Limit int `json:"limit"`

	// Listing order: popular (most sales first) or recent (newest first)
	// in: query
	Sort string `json:"sort"`

	// Evaluate promotion windows at this RFC3339 instant instead of now
	// in: query
	At string `json:"at"`
}

// ErrorResponse defines the structure for API error responses
//
// swagger:model
type ErrorResponse struct {
	// The error message
	//
	// required: true
	Message string `json:"message"`
}
