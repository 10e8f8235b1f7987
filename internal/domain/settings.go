package domain

// Settings holds the operator-editable store configuration
//
// swagger:model
type Settings struct {
	// The public name of the store
	//
	// required: true
	SiteName string `json:"siteName" validate:"required"`

	// A short description shown in the storefront header
	SiteDescription string `json:"siteDescription,omitempty"`

	// Currency symbol used for display
	//
	// example: R$
	Currency string `json:"currency" validate:"required"`

	// Support contact address
	ContactEmail string `json:"contactEmail,omitempty" validate:"omitempty,email"`
}

// DefaultSettings returns the configuration a fresh store starts with.
func DefaultSettings() *Settings {
	return &Settings{
		SiteName:        "TemplateShop",
		SiteDescription: "Website template store",
		Currency:        "R$",
		ContactEmail:    "support@templateshop.example",
	}
}
