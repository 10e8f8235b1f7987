package service

import (
	"context"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templateshop/storefront/internal/clock"
	"github.com/templateshop/storefront/internal/domain"
	"github.com/templateshop/storefront/internal/events"
	"github.com/templateshop/storefront/internal/pricing"
	"github.com/templateshop/storefront/internal/repository"
)

func fixtureProducts() domain.Products {
	link := "https://buy.stripe.com/test_123"
	return domain.Products{
		{
			ID: "prod_1", Name: "Portfolio Pro", Category: "portfolio",
			Description: "Showcase your work", Price: 100, Featured: true,
			PaymentLink: link,
		},
		{
			ID: "prod_2", Name: "Startup Land", Category: "landing",
			Description: "Launch-day landing page", Price: 50,
		},
	}
}

func newProductFixture(t *testing.T) (ProductService, *clock.FixedClock) {
	t.Helper()

	products := repository.NewMemoryProductRepository()
	require.NoError(t, products.Replace(context.Background(), fixtureProducts()))

	promotions := repository.NewMemoryPromotionRepository()
	require.NoError(t, promotions.Replace(context.Background(), fixturePromotions()))

	clk := clock.NewFixedClock(serviceNow)
	bus := events.NewEventBus[any]()
	svc := NewProductService(products, promotions, clk, bus, hclog.NewNullLogger())
	t.Cleanup(func() { svc.Close() })

	return svc, clk
}

func TestGetProductsResolvesPrices(t *testing.T) {
	// promo_active grants 20% storewide at the fixture instant.
	svc, _ := newProductFixture(t)

	views, err := svc.GetProducts(context.Background(), ListOptions{})
	require.NoError(t, err)
	require.Len(t, views, 2)

	byID := map[string]float64{}
	for _, v := range views {
		byID[v.Product.ID] = v.FinalPrice
	}
	assert.Equal(t, 80.0, byID["prod_1"])
	assert.Equal(t, 40.0, byID["prod_2"])
}

func TestGetProductsAtInstant(t *testing.T) {
	// Previewing a week out lands inside no promotion window, so base
	// prices come back untouched.
	svc, _ := newProductFixture(t)

	views, err := svc.GetProducts(context.Background(), ListOptions{At: serviceNow.Add(7 * 24 * time.Hour)})
	require.NoError(t, err)

	for _, v := range views {
		assert.False(t, v.HasPromotion())
		assert.Equal(t, v.Product.Price, v.FinalPrice)
	}
}

func TestGetProductsFilters(t *testing.T) {
	svc, _ := newProductFixture(t)
	ctx := context.Background()

	featured, err := svc.GetProducts(ctx, ListOptions{FeaturedOnly: true})
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, "prod_1", featured[0].Product.ID)

	landing, err := svc.GetProducts(ctx, ListOptions{Category: "landing"})
	require.NoError(t, err)
	require.Len(t, landing, 1)
	assert.Equal(t, "prod_2", landing[0].Product.ID)

	searched, err := svc.GetProducts(ctx, ListOptions{Query: "showcase"})
	require.NoError(t, err)
	require.Len(t, searched, 1)
	assert.Equal(t, "prod_1", searched[0].Product.ID)

	limited, err := svc.GetProducts(ctx, ListOptions{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestGetProductByIDUsesClock(t *testing.T) {
	svc, clk := newProductFixture(t)
	ctx := context.Background()

	view, err := svc.GetProductByID(ctx, "prod_1", time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 80.0, view.FinalPrice)
	assert.Equal(t, "promo_active", view.AppliedPromotionID)

	clk.Add(30 * 24 * time.Hour)
	view, err = svc.GetProductByID(ctx, "prod_1", time.Time{})
	require.NoError(t, err)
	assert.False(t, view.HasPromotion())
	assert.Equal(t, 100.0, view.FinalPrice)
}

func TestCloseReturnsImmediatelyAfterStart(t *testing.T) {
	// Close unsubscribes and waits for the event goroutine; it must come
	// back even when the goroutine never got scheduled before Close.
	products := repository.NewMemoryProductRepository()
	promotions := repository.NewMemoryPromotionRepository()
	clk := clock.NewFixedClock(serviceNow)

	for i := 0; i < 50; i++ {
		bus := events.NewEventBus[any]()
		svc := NewProductService(products, promotions, clk, bus, hclog.NewNullLogger())

		done := make(chan struct{})
		go func() {
			svc.Close()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("Close did not return")
		}
	}
}

func TestGetProductsSortOrders(t *testing.T) {
	products := repository.NewMemoryProductRepository()
	require.NoError(t, products.Replace(context.Background(), domain.Products{
		{
			ID: "prod_old_hit", Name: "Old Favorite", Category: "blog",
			Description: "An early release that still sells", Price: 20,
			SalesCount: 90, CreatedAt: serviceNow.Add(-72 * time.Hour),
			UpdatedAt: serviceNow.Add(-72 * time.Hour),
		},
		{
			ID: "prod_new_slow", Name: "Fresh Arrival", Category: "blog",
			Description: "Just published, few sales yet", Price: 20,
			SalesCount: 3, CreatedAt: serviceNow.Add(-time.Hour),
			UpdatedAt: serviceNow.Add(-time.Hour),
		},
		{
			ID: "prod_mid", Name: "Middle Child", Category: "blog",
			Description: "Steady seller from last month", Price: 20,
			SalesCount: 40, CreatedAt: serviceNow.Add(-24 * time.Hour),
			UpdatedAt: serviceNow,
		},
	}))

	promotions := repository.NewMemoryPromotionRepository()
	require.NoError(t, promotions.Replace(context.Background(), nil))

	clk := clock.NewFixedClock(serviceNow)
	bus := events.NewEventBus[any]()
	svc := NewProductService(products, promotions, clk, bus, hclog.NewNullLogger())
	t.Cleanup(func() { svc.Close() })

	ids := func(views []*pricing.ResolvedView) []string {
		out := make([]string, len(views))
		for i, v := range views {
			out[i] = v.Product.ID
		}
		return out
	}
	ctx := context.Background()

	popular, err := svc.GetProducts(ctx, ListOptions{Sort: SortPopular})
	require.NoError(t, err)
	assert.Equal(t, []string{"prod_old_hit", "prod_mid", "prod_new_slow"}, ids(popular))

	recent, err := svc.GetProducts(ctx, ListOptions{Sort: SortRecent})
	require.NoError(t, err)
	assert.Equal(t, []string{"prod_new_slow", "prod_mid", "prod_old_hit"}, ids(recent))

	byUpdate, err := svc.GetProducts(ctx, ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"prod_mid", "prod_new_slow", "prod_old_hit"}, ids(byUpdate))
}

func TestCheckoutLink(t *testing.T) {
	svc, _ := newProductFixture(t)
	ctx := context.Background()

	link, err := svc.CheckoutLink(ctx, "prod_1")
	require.NoError(t, err)
	assert.Equal(t, "https://buy.stripe.com/test_123", link)

	_, err = svc.CheckoutLink(ctx, "prod_2")
	assert.ErrorIs(t, err, domain.ErrPaymentLinkNotConfigured)

	_, err = svc.CheckoutLink(ctx, "prod_missing")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestProductStats(t *testing.T) {
	svc, _ := newProductFixture(t)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalProducts)
	assert.Equal(t, 1, stats.FeaturedProducts)
	assert.Equal(t, 150.0, stats.TotalValue)
	assert.Equal(t, 75.0, stats.AveragePrice)
	assert.Equal(t, 1, stats.Categories["portfolio"])
	assert.Equal(t, 1, stats.Categories["landing"])
}
