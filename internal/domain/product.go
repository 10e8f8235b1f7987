package domain

import "time"

// Product represents a website template offered in the store
//
// swagger:model
type Product struct {
	// The ID of the product
	//
	// required: true
	// example: prod_9f2c1b7a
	ID string `json:"id"`

	// The display name of the product
	//
	// required: true
	// min length: 3
	// example: PortfolioPro
	Name string `json:"name" validate:"required,min=3"`

	// The category tag of the product
	//
	// required: true
	// example: portfolio
	Category string `json:"category" validate:"required"`

	// A short description shown on listing cards
	//
	// required: true
	// min length: 10
	Description string `json:"description" validate:"required,min=10"`

	// The full description shown on the product page
	//
	// required: false
	LongDescription string `json:"longDescription,omitempty"`

	// The base price of the product in store currency units
	//
	// required: true
	// min: 0.01
	// example: 49.90
	Price float64 `json:"price" validate:"required,gt=0"`

	// The pre-markdown price shown struck through, independent of promotions
	//
	// required: false
	OriginalPrice *float64 `json:"originalPrice,omitempty" validate:"omitempty,gt=0"`

	// Whether the product is featured on the storefront
	Featured bool `json:"featured"`

	// Reference to the product preview image
	Image string `json:"image,omitempty"`

	// Seller-supplied external checkout URL. Never generated or verified
	// beyond well-formedness; empty means checkout is not configured.
	//
	// pattern: ^https?://
	PaymentLink string `json:"paymentLink,omitempty" validate:"paymentlink"`

	// Free-form tags used by storefront search
	Tags []string `json:"tags,omitempty"`

	// Number of recorded sales
	SalesCount int `json:"salesCount"`

	// Number of recorded product page views
	Views int `json:"views"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Products is a collection of Product
type Products []*Product

// HasPaymentLink reports whether the product carries a well-formed
// checkout URL. Link semantics belong to the seller, not to this service.
func (p *Product) HasPaymentLink() bool {
	return ValidPaymentLink(p.PaymentLink) && p.PaymentLink != ""
}
