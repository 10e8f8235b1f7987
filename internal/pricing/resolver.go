// Package pricing resolves the sale price of catalog products against the
// promotion set. Resolution is a pure computation: callers supply the
// product, an immutable snapshot of the promotions, and the instant to
// evaluate validity windows at.
package pricing

import (
	"fmt"
	"math"
	"time"

	"github.com/templateshop/storefront/internal/domain"
)

// ResolvedView is the computed, non-persisted pricing result for a product
// at a point in time
//
// swagger:model
type ResolvedView struct {
	// The product the view was computed for
	Product *domain.Product `json:"product"`

	// Discount in store currency units
	DiscountAmount float64 `json:"discountAmount"`

	// Base price minus discount, never negative
	FinalPrice float64 `json:"finalPrice"`

	// Rounded discount as a share of the base price
	DiscountPercent int `json:"discountPercent"`

	// ID of the winning promotion, empty when none applied
	AppliedPromotionID string `json:"appliedPromotionId,omitempty"`

	// Name of the winning promotion, for display
	PromotionName string `json:"promotionName,omitempty"`
}

// HasPromotion reports whether any promotion discounted the price.
func (v *ResolvedView) HasPromotion() bool {
	return v.AppliedPromotionID != ""
}

// discountFor computes the currency-unit discount the promotion would grant
// on the given base price. Fixed discounts are clamped to the price so the
// final price can never go negative. Both kinds are compared in currency
// units, never on their raw magnitudes.
func discountFor(basePrice float64, p *domain.Promotion) float64 {
	switch p.Type {
	case domain.PromotionPercentage:
		return basePrice * p.Value / 100
	case domain.PromotionFixed:
		return math.Min(p.Value, basePrice)
	}
	return 0
}

// Resolve computes the resolved price view for one product given the full
// promotion set and a query instant.
//
// Candidates are promotions that are effectively active at now and whose
// scope covers the product. The candidate granting the strictly greatest
// currency-unit discount wins; an exact tie goes to the lexicographically
// smallest promotion ID, so the result does not depend on input order.
func Resolve(product *domain.Product, promotions domain.Promotions, now time.Time) (*ResolvedView, error) {
	if product.Price <= 0 {
		return nil, fmt.Errorf("resolving product %q: %w", product.ID, domain.ErrInvalidBasePrice)
	}

	var best *domain.Promotion
	var bestDiscount float64

	for _, promo := range promotions {
		if !promo.ActiveAt(now) || !promo.AppliesTo(product.ID) {
			continue
		}

		discount := discountFor(product.Price, promo)
		switch {
		case best == nil && discount > 0:
			best, bestDiscount = promo, discount
		case best != nil && discount > bestDiscount:
			best, bestDiscount = promo, discount
		case best != nil && discount == bestDiscount && promo.ID < best.ID:
			best = promo
		}
	}

	view := &ResolvedView{
		Product:    product,
		FinalPrice: product.Price,
	}

	if best != nil {
		view.DiscountAmount = bestDiscount
		view.FinalPrice = math.Max(0, product.Price-bestDiscount)
		view.DiscountPercent = int(math.Round(bestDiscount / product.Price * 100))
		view.AppliedPromotionID = best.ID
		view.PromotionName = best.Name
	}

	return view, nil
}

// ResolveBatch applies Resolve independently to each product. Products that
// fail to resolve are skipped and reported in the returned error slice; a
// bad product never aborts the rest of the batch. There is no cross-product
// interaction.
func ResolveBatch(products domain.Products, promotions domain.Promotions, now time.Time) ([]*ResolvedView, []error) {
	views := make([]*ResolvedView, 0, len(products))
	var errs []error

	for _, product := range products {
		view, err := Resolve(product, promotions, now)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		views = append(views, view)
	}

	return views, errs
}
