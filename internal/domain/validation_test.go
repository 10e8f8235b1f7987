package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var validationNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

func validPromotion() *Promotion {
	return &Promotion{
		ID:        "promo_1",
		Name:      "Launch Sale",
		Type:      PromotionPercentage,
		Value:     20,
		Active:    true,
		StartDate: validationNow.Add(-time.Hour),
		EndDate:   validationNow.Add(24 * time.Hour),
		Products:  []string{ScopeAll},
	}
}

func TestValidatePromotion(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(p *Promotion)
		field  string
	}{
		{"valid promotion passes", func(p *Promotion) {}, ""},
		{"missing name", func(p *Promotion) { p.Name = "" }, "Name"},
		{"name too short", func(p *Promotion) { p.Name = "ab" }, "Name"},
		{"unknown type", func(p *Promotion) { p.Type = "bogo" }, "Type"},
		{"zero value", func(p *Promotion) { p.Value = 0 }, "Value"},
		{"negative value", func(p *Promotion) { p.Value = -5 }, "Value"},
		{"percentage above hundred", func(p *Promotion) { p.Value = 120 }, "Value"},
		{"empty scope", func(p *Promotion) { p.Products = nil }, "Products"},
		{"start equals end", func(p *Promotion) { p.EndDate = p.StartDate }, "EndDate"},
		{"start after end", func(p *Promotion) {
			p.StartDate = validationNow.Add(2 * time.Hour)
			p.EndDate = validationNow.Add(time.Hour)
		}, "EndDate"},
		{"window already over", func(p *Promotion) {
			p.StartDate = validationNow.Add(-48 * time.Hour)
			p.EndDate = validationNow.Add(-24 * time.Hour)
		}, "EndDate"},
	}

	v := NewValidation()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := validPromotion()
			tc.mutate(p)

			errs := v.ValidatePromotion(p, validationNow)
			if tc.field == "" {
				assert.Empty(t, errs)
				return
			}

			assert.NotEmpty(t, errs)
			fields := make([]string, 0, len(errs))
			for _, e := range errs {
				fields = append(fields, e.Field)
			}
			assert.Contains(t, fields, tc.field)
		})
	}
}

func TestFixedValueAboveHundredIsValid(t *testing.T) {
	// The 100 ceiling is a percentage rule only; a fixed discount larger
	// than any price is clamped at resolution time instead.
	p := validPromotion()
	p.Type = PromotionFixed
	p.Value = 500

	errs := NewValidation().ValidatePromotion(p, validationNow)
	assert.Empty(t, errs)
}

func TestValidPaymentLink(t *testing.T) {
	testCases := []struct {
		link  string
		valid bool
	}{
		{"", true},
		{"https://buy.stripe.com/test_123", true},
		{"http://pay.example.com/abc", true},
		{"ftp://example.com/pay", false},
		{"javascript:alert(1)", false},
		{"buy.stripe.com/test_123", false},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.valid, ValidPaymentLink(tc.link), "link %q", tc.link)
	}
}

func TestValidateProduct(t *testing.T) {
	v := NewValidation()

	product := &Product{
		ID:          "prod_1",
		Name:        "Portfolio Pro",
		Category:    "portfolio",
		Description: "A polished portfolio template",
		Price:       49.90,
		PaymentLink: "https://buy.stripe.com/test_123",
	}
	assert.Empty(t, v.Validate(product))

	product.Price = 0
	product.PaymentLink = "not-a-link"
	errs := v.Validate(product)
	assert.Len(t, errs, 2)
}
