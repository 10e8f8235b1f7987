package pricing

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templateshop/storefront/internal/domain"
)

var testNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

func testProduct(id string, price float64) *domain.Product {
	return &domain.Product{
		ID:          id,
		Name:        "Test Template",
		Category:    "portfolio",
		Description: "A template used in tests",
		Price:       price,
	}
}

func testPromotion(id, kind string, value float64, scope ...string) *domain.Promotion {
	if len(scope) == 0 {
		scope = []string{domain.ScopeAll}
	}
	return &domain.Promotion{
		ID:        id,
		Name:      "Promo " + id,
		Type:      kind,
		Value:     value,
		Active:    true,
		StartDate: testNow.Add(-time.Hour),
		EndDate:   testNow.Add(time.Hour),
		Products:  scope,
	}
}

func TestResolveNoPromotions(t *testing.T) {
	view, err := Resolve(testProduct("p1", 100), nil, testNow)
	require.NoError(t, err)

	assert.Equal(t, 100.0, view.FinalPrice)
	assert.Equal(t, 0.0, view.DiscountAmount)
	assert.Equal(t, 0, view.DiscountPercent)
	assert.Empty(t, view.AppliedPromotionID)
	assert.False(t, view.HasPromotion())
}

func TestResolveInvalidBasePrice(t *testing.T) {
	for _, price := range []float64{0, -1, -49.90} {
		_, err := Resolve(testProduct("p1", price), nil, testNow)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidBasePrice))
	}
}

func TestResolvePicksLargestCurrencyDiscount(t *testing.T) {
	// Promotion A discounts 20% of 100 = 20, promotion B a fixed 30 scoped
	// to the product. B's currency-unit discount is larger and must win
	// even though 20 > 30/10 under a naive cross-type comparison.
	product := testProduct("p1", 100)
	promoA := testPromotion("promo_a", domain.PromotionPercentage, 20)
	promoB := testPromotion("promo_b", domain.PromotionFixed, 30, "p1")

	view, err := Resolve(product, domain.Promotions{promoA, promoB}, testNow)
	require.NoError(t, err)

	assert.Equal(t, "promo_b", view.AppliedPromotionID)
	assert.Equal(t, 30.0, view.DiscountAmount)
	assert.Equal(t, 70.0, view.FinalPrice)
	assert.Equal(t, 30, view.DiscountPercent)
}

func TestResolveClampsFixedDiscount(t *testing.T) {
	product := testProduct("p1", 100)
	promo := testPromotion("promo_c", domain.PromotionFixed, 150)

	view, err := Resolve(product, domain.Promotions{promo}, testNow)
	require.NoError(t, err)

	assert.Equal(t, 100.0, view.DiscountAmount)
	assert.Equal(t, 0.0, view.FinalPrice)
	assert.Equal(t, 100, view.DiscountPercent)
}

func TestResolvePercentageMonotonic(t *testing.T) {
	// Holding the base price fixed, a larger percentage can never produce
	// a higher final price.
	product := testProduct("p1", 80)

	previous := product.Price
	for value := 1.0; value <= 100; value++ {
		promo := testPromotion("promo_m", domain.PromotionPercentage, value)
		view, err := Resolve(product, domain.Promotions{promo}, testNow)
		require.NoError(t, err)

		assert.LessOrEqual(t, view.FinalPrice, previous)
		assert.GreaterOrEqual(t, view.FinalPrice, 0.0)
		previous = view.FinalPrice
	}
}

func TestResolveOrderIndependence(t *testing.T) {
	product := testProduct("p1", 100)
	promos := domain.Promotions{
		testPromotion("promo_a", domain.PromotionPercentage, 20),
		testPromotion("promo_b", domain.PromotionFixed, 20, "p1"),
		testPromotion("promo_c", domain.PromotionFixed, 15),
		testPromotion("promo_d", domain.PromotionPercentage, 10),
	}

	reference, err := Resolve(product, promos, testNow)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		shuffled := append(domain.Promotions(nil), promos...)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		view, err := Resolve(product, shuffled, testNow)
		require.NoError(t, err)
		assert.Equal(t, reference.AppliedPromotionID, view.AppliedPromotionID)
		assert.Equal(t, reference.FinalPrice, view.FinalPrice)
		assert.Equal(t, reference.DiscountAmount, view.DiscountAmount)
	}
}

func TestResolveTieBreakOnPromotionID(t *testing.T) {
	// 20% of 100 and a fixed 20 grant the same currency discount; the
	// lexicographically smallest ID must win in either input order.
	product := testProduct("p1", 100)
	percent := testPromotion("promo_b", domain.PromotionPercentage, 20)
	fixed := testPromotion("promo_a", domain.PromotionFixed, 20)

	forward, err := Resolve(product, domain.Promotions{percent, fixed}, testNow)
	require.NoError(t, err)
	backward, err := Resolve(product, domain.Promotions{fixed, percent}, testNow)
	require.NoError(t, err)

	assert.Equal(t, "promo_a", forward.AppliedPromotionID)
	assert.Equal(t, "promo_a", backward.AppliedPromotionID)
}

func TestResolveScopeFiltering(t *testing.T) {
	// A promotion targeting p5 must never affect another product.
	product := testProduct("p1", 100)
	promo := testPromotion("promo_s", domain.PromotionPercentage, 50, "p5")

	view, err := Resolve(product, domain.Promotions{promo}, testNow)
	require.NoError(t, err)

	assert.Equal(t, 100.0, view.FinalPrice)
	assert.Empty(t, view.AppliedPromotionID)
}

func TestResolveWindowBoundaries(t *testing.T) {
	product := testProduct("p1", 100)

	testCases := []struct {
		name    string
		start   time.Time
		end     time.Time
		active  bool
		applied bool
	}{
		{"inside window", testNow.Add(-time.Hour), testNow.Add(time.Hour), true, true},
		{"starts exactly now", testNow, testNow.Add(time.Hour), true, true},
		{"ends exactly now", testNow.Add(-time.Hour), testNow, true, true},
		{"one instant past end", testNow.Add(-time.Hour), testNow.Add(-time.Second), true, false},
		{"not yet started", testNow.Add(time.Minute), testNow.Add(time.Hour), true, false},
		{"switched off in valid window", testNow.Add(-time.Hour), testNow.Add(time.Hour), false, false},
		{"malformed window is never active", testNow.Add(time.Hour), testNow.Add(-time.Hour), true, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			promo := testPromotion("promo_w", domain.PromotionPercentage, 10)
			promo.StartDate = tc.start
			promo.EndDate = tc.end
			promo.Active = tc.active

			view, err := Resolve(product, domain.Promotions{promo}, testNow)
			require.NoError(t, err)

			if tc.applied {
				assert.Equal(t, "promo_w", view.AppliedPromotionID)
				assert.Equal(t, 90.0, view.FinalPrice)
			} else {
				assert.Empty(t, view.AppliedPromotionID)
				assert.Equal(t, 100.0, view.FinalPrice)
			}
		})
	}
}

func TestResolveDeterministic(t *testing.T) {
	product := testProduct("p1", 59.90)
	promos := domain.Promotions{
		testPromotion("promo_a", domain.PromotionPercentage, 33),
		testPromotion("promo_b", domain.PromotionFixed, 12.5),
	}

	first, err := Resolve(product, promos, testNow)
	require.NoError(t, err)
	second, err := Resolve(product, promos, testNow)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestResolveBatchSkipsInvalidProducts(t *testing.T) {
	products := domain.Products{
		testProduct("p1", 100),
		testProduct("p2", 0), // invalid, must not abort the batch
		testProduct("p3", 50),
	}
	promos := domain.Promotions{testPromotion("promo_a", domain.PromotionPercentage, 10)}

	views, errs := ResolveBatch(products, promos, testNow)

	require.Len(t, views, 2)
	require.Len(t, errs, 1)
	assert.True(t, errors.Is(errs[0], domain.ErrInvalidBasePrice))
	assert.Equal(t, "p1", views[0].Product.ID)
	assert.Equal(t, "p3", views[1].Product.ID)
	assert.Equal(t, 90.0, views[0].FinalPrice)
	assert.Equal(t, 45.0, views[1].FinalPrice)
}

func TestResolveBatchIndependentPerProduct(t *testing.T) {
	// A scoped promotion discounts its target only.
	products := domain.Products{testProduct("p1", 100), testProduct("p2", 100)}
	promos := domain.Promotions{testPromotion("promo_a", domain.PromotionFixed, 25, "p2")}

	views, errs := ResolveBatch(products, promos, testNow)
	require.Empty(t, errs)
	require.Len(t, views, 2)

	assert.Equal(t, 100.0, views[0].FinalPrice)
	assert.Equal(t, 75.0, views[1].FinalPrice)
}
