package domain

import "errors"

// Domain-level errors
var (
	ErrProductNotFound   = errors.New("product not found")
	ErrPromotionNotFound = errors.New("promotion not found")

	// ErrInvalidBasePrice is returned by pricing when a product reaches the
	// resolver with a non-positive base price.
	ErrInvalidBasePrice = errors.New("product base price must be greater than zero")

	// ErrMalformedWindow is returned at creation time for a promotion whose
	// start is not strictly before its end.
	ErrMalformedWindow = errors.New("promotion window start must be before end")

	// ErrPaymentLinkNotConfigured is returned when checkout is requested for
	// a product whose seller link is empty or ill-formed.
	ErrPaymentLinkNotConfigured = errors.New("payment link not configured")
)
