package repository

import (
	"time"

	"github.com/templateshop/storefront/internal/domain"
)

func floatPtr(f float64) *float64 { return &f }

// defaultProducts seeds a fresh store with the starter catalog.
func defaultProducts() []*domain.Product {
	now := time.Now()

	return []*domain.Product{
		{
			ID:              "prod_1",
			Name:            "PortfolioPro",
			Category:        "portfolio",
			Description:     "Professional template for developer and designer portfolios.",
			LongDescription: "Modern template focused on project presentation, with sections for skills, portfolio, experience and contact. Fully responsive.",
			Price:           49.90,
			OriginalPrice:   floatPtr(79.90),
			Featured:        true,
			Tags:            []string{"responsive", "modern", "portfolio"},
			SalesCount:      42,
			Views:           156,
			CreatedAt:       now,
			UpdatedAt:       now,
		},
		{
			ID:              "prod_2",
			Name:            "StartupLand",
			Category:        "landing",
			Description:     "Conversion-focused landing page for startups and digital services.",
			LongDescription: "Landing page with sections for features, testimonials, pricing and call to action.",
			Price:           39.90,
			OriginalPrice:   floatPtr(59.90),
			Featured:        true,
			Tags:            []string{"landing", "startup", "saas"},
			SalesCount:      28,
			Views:           89,
			CreatedAt:       now,
			UpdatedAt:       now,
		},
		{
			ID:              "prod_3",
			Name:            "BlogMaster",
			Category:        "blog",
			Description:     "Elegant template for personal and niche blogs.",
			LongDescription: "Clean reading-optimized blog layout with categories, tags and sidebar.",
			Price:           29.90,
			OriginalPrice:   floatPtr(44.90),
			Featured:        true,
			Tags:            []string{"blog", "content", "writing"},
			SalesCount:      35,
			Views:           120,
			CreatedAt:       now,
			UpdatedAt:       now,
		},
		{
			ID:              "prod_4",
			Name:            "BusinessCorp",
			Category:        "business",
			Description:     "Corporate template for companies and organizations.",
			LongDescription: "Professional corporate site with about, services, team, contact and blog pages.",
			Price:           59.90,
			OriginalPrice:   floatPtr(89.90),
			Tags:            []string{"corporate", "company", "business"},
			SalesCount:      18,
			Views:           67,
			CreatedAt:       now,
			UpdatedAt:       now,
		},
		{
			ID:              "prod_5",
			Name:            "EcommercePlus",
			Category:        "ecommerce",
			Description:     "Complete template for online stores.",
			LongDescription: "Full e-commerce layout with cart, checkout and admin pages.",
			Price:           79.90,
			OriginalPrice:   floatPtr(119.90),
			Tags:            []string{"ecommerce", "store", "checkout"},
			SalesCount:      22,
			Views:           95,
			CreatedAt:       now,
			UpdatedAt:       now,
		},
	}
}

// defaultPromotions seeds a fresh store with the starter promotion set:
// a storewide launch discount, a single-product flash sale and an inactive
// scheduled campaign.
func defaultPromotions(now time.Time) []*domain.Promotion {
	return []*domain.Promotion{
		{
			ID:          "promo_1",
			Name:        "Launch Sale",
			Type:        domain.PromotionPercentage,
			Value:       20,
			Description: "Storewide launch special",
			Active:      true,
			StartDate:   now,
			EndDate:     now.AddDate(0, 1, 0),
			Products:    []string{domain.ScopeAll},
			Priority:    1,
			UsedCount:   15,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "promo_2",
			Name:        "Flash Sale - Portfolio",
			Type:        domain.PromotionPercentage,
			Value:       30,
			Description: "Short-lived discount on the portfolio template",
			Active:      true,
			StartDate:   now,
			EndDate:     now.AddDate(0, 0, 7),
			Products:    []string{"prod_1"},
			Conditions:  domain.PromotionConditions{MaxUses: 50},
			Priority:    2,
			UsedCount:   8,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "promo_3",
			Name:        "Black Friday",
			Type:        domain.PromotionPercentage,
			Value:       40,
			Description: "Scheduled Black Friday campaign, switched on by the operator",
			Active:      false,
			StartDate:   time.Date(now.Year(), time.November, 25, 0, 0, 0, 0, now.Location()),
			EndDate:     time.Date(now.Year(), time.November, 28, 23, 59, 59, 0, now.Location()),
			Products:    []string{domain.ScopeAll},
			Priority:    1,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
}
