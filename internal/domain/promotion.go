package domain

import "time"

// Promotion discount kinds
const (
	PromotionPercentage = "percentage"
	PromotionFixed      = "fixed"
)

// ScopeAll is the sentinel product ID meaning a promotion applies to the
// whole catalog.
const ScopeAll = "all"

// PromotionConditions holds authored constraints that are recorded but not
// enforced by pricing (usage caps are display-only).
type PromotionConditions struct {
	// Maximum number of uses before the promotion should be retired
	MaxUses int `json:"maxUses,omitempty"`
}

// Promotion represents a time-windowed discount authored by the store
// operator
//
// swagger:model
type Promotion struct {
	// The ID of the promotion
	//
	// required: true
	// example: promo_4a81d3c0
	ID string `json:"id"`

	// The human readable name of the promotion
	//
	// required: true
	// min length: 3
	// example: Launch Sale
	Name string `json:"name" validate:"required,min=3"`

	// The discount kind, either percentage or fixed
	//
	// required: true
	// example: percentage
	Type string `json:"type" validate:"required,promotype"`

	// The discount magnitude. Percentage promotions are bounded to 100,
	// fixed promotions are an amount in store currency units.
	//
	// required: true
	// min: 0.01
	Value float64 `json:"value" validate:"required,gt=0"`

	// Optional description shown in the admin panel
	Description string `json:"description,omitempty"`

	// Operator on/off switch, independent of the validity window
	Active bool `json:"active"`

	// Start of the validity window, inclusive
	//
	// required: true
	StartDate time.Time `json:"startDate" validate:"required"`

	// End of the validity window, inclusive
	//
	// required: true
	EndDate time.Time `json:"endDate" validate:"required"`

	// Target scope: the ScopeAll sentinel or explicit product IDs
	//
	// required: true
	Products []string `json:"products" validate:"required,min=1"`

	Conditions PromotionConditions `json:"conditions"`

	// Display ordering hint for the admin panel
	Priority int `json:"priority,omitempty"`

	// Number of recorded uses. Recorded only, never enforced.
	UsedCount int `json:"usedCount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Promotions is a collection of Promotion
type Promotions []*Promotion

// ActiveAt reports whether the promotion discounts prices at the given
// instant. It is a pure function of the authored active flag and the
// validity window; both window bounds are inclusive. The result is never
// persisted. A window with start >= end cannot be created through
// validation, but if one is seen anyway it is treated as never active.
func (p *Promotion) ActiveAt(now time.Time) bool {
	if !p.Active {
		return false
	}
	if !p.StartDate.Before(p.EndDate) {
		return false
	}
	return !now.Before(p.StartDate) && !now.After(p.EndDate)
}

// AppliesTo reports whether the promotion targets the given product.
func (p *Promotion) AppliesTo(productID string) bool {
	for _, id := range p.Products {
		if id == ScopeAll || id == productID {
			return true
		}
	}
	return false
}
