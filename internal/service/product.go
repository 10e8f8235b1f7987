package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/templateshop/storefront/internal/clock"
	"github.com/templateshop/storefront/internal/domain"
	"github.com/templateshop/storefront/internal/events"
	"github.com/templateshop/storefront/internal/pricing"
	"github.com/templateshop/storefront/internal/repository"
)

// ListOptions narrows a priced catalog listing.
type ListOptions struct {
	// Category keeps only products with this category tag
	Category string
	// FeaturedOnly keeps only featured products
	FeaturedOnly bool
	// Query is a free-text search over name, description, category and tags
	Query string
	// Limit caps the number of returned views, 0 means no cap
	Limit int
	// Sort picks the listing order: SortPopular, SortRecent, or the default
	// most-recently-updated first
	Sort string
	// At overrides the instant promotions are evaluated against; zero means
	// the service clock's now
	At time.Time
}

// Listing sort orders
const (
	SortPopular = "popular" // most sales first
	SortRecent  = "recent"  // newest first
)

// ProductStats summarizes the catalog for the admin dashboard.
type ProductStats struct {
	TotalProducts    int            `json:"totalProducts"`
	FeaturedProducts int            `json:"featuredProducts"`
	TotalSales       int            `json:"totalSales"`
	TotalViews       int            `json:"totalViews"`
	TotalValue       float64        `json:"totalValue"`
	AveragePrice     float64        `json:"averagePrice"`
	Categories       map[string]int `json:"categories"`
}

type ProductService interface {
	GetProducts(ctx context.Context, opts ListOptions) ([]*pricing.ResolvedView, error)
	GetProductByID(ctx context.Context, id string, at time.Time) (*pricing.ResolvedView, error)
	AddProduct(ctx context.Context, product *domain.Product) error
	UpdateProduct(ctx context.Context, product *domain.Product) error
	DeleteProduct(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error
	CheckoutLink(ctx context.Context, id string) (string, error)
	Stats(ctx context.Context) (*ProductStats, error)
	Close() error
}

type productService struct {
	products   repository.ProductRepository
	promotions repository.PromotionRepository
	clk        clock.Clock
	eventBus   *events.EventBus[any]
	logger     hclog.Logger
	subscriber events.Subscriber[any]
	wg         sync.WaitGroup
	once       sync.Once
}

func NewProductService(
	products repository.ProductRepository,
	promotions repository.PromotionRepository,
	clk clock.Clock,
	eventBus *events.EventBus[any],
	logger hclog.Logger) ProductService {
	ps := &productService{
		products:   products,
		promotions: promotions,
		clk:        clk,
		eventBus:   eventBus,
		logger:     logger,
	}

	// Subscribe to promotion changes so resolved price updates can be
	// pushed to storefront clients
	ps.subscriber = eventBus.Subscribe()

	ps.wg.Add(1)
	go ps.handlePromotionChanges(ps.subscriber)

	return ps
}

// handlePromotionChanges republishes resolved prices whenever the promotion
// set changes. Prices are derived, never stored, so the only work here is
// recomputing views and notifying subscribers. The channel is passed in
// rather than read from the struct: Close nils the field, and the goroutine
// must keep draining until Unsubscribe closes the channel.
func (s *productService) handlePromotionChanges(subscriber events.Subscriber[any]) {
	defer s.wg.Done()
	for event := range subscriber {
		switch event.(type) {
		case events.PromotionAdded, events.PromotionUpdated, events.PromotionDeleted:
		default:
			continue
		}

		ctx := context.Background()
		views, err := s.resolveAll(ctx, s.clk.Now())
		if err != nil {
			s.logger.Error("Failed to recompute prices after promotion change", "error", err)
			continue
		}

		for _, view := range views {
			s.eventBus.Publish(events.PriceChanged{
				ProductID:   view.Product.ID,
				FinalPrice:  view.FinalPrice,
				PromotionID: view.AppliedPromotionID,
			})
		}
	}
}

// resolveAll prices the whole catalog at the given instant. Repositories
// hand back snapshots, so the resolver never observes concurrent mutation.
func (s *productService) resolveAll(ctx context.Context, now time.Time) ([]*pricing.ResolvedView, error) {
	products, err := s.products.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	promotions, err := s.promotions.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	views, errs := pricing.ResolveBatch(products, promotions, now)
	for _, resolveErr := range errs {
		// A bad product is skipped, never aborts the batch
		s.logger.Warn("Skipping product in price resolution", "error", resolveErr)
	}

	return views, nil
}

func (s *productService) GetProducts(ctx context.Context, opts ListOptions) ([]*pricing.ResolvedView, error) {
	now := opts.At
	if now.IsZero() {
		now = s.clk.Now()
	}
	s.logger.Debug("Listing priced products", "category", opts.Category, "featured", opts.FeaturedOnly, "at", now)

	views, err := s.resolveAll(ctx, now)
	if err != nil {
		s.logger.Error("Unable to list products", "error", err)
		return nil, err
	}

	filtered := make([]*pricing.ResolvedView, 0, len(views))
	for _, view := range views {
		p := view.Product
		if opts.Category != "" && p.Category != opts.Category {
			continue
		}
		if opts.FeaturedOnly && !p.Featured {
			continue
		}
		if !repository.MatchesQuery(p, opts.Query) {
			continue
		}
		filtered = append(filtered, view)
	}

	switch opts.Sort {
	case SortPopular:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Product.SalesCount > filtered[j].Product.SalesCount
		})
	case SortRecent:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Product.CreatedAt.After(filtered[j].Product.CreatedAt)
		})
	default:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Product.UpdatedAt.After(filtered[j].Product.UpdatedAt)
		})
	}

	if opts.Limit > 0 && len(filtered) > opts.Limit {
		filtered = filtered[:opts.Limit]
	}

	return filtered, nil
}

func (s *productService) GetProductByID(ctx context.Context, id string, at time.Time) (*pricing.ResolvedView, error) {
	if at.IsZero() {
		at = s.clk.Now()
	}
	s.logger.Debug("Getting priced product", "id", id, "at", at)

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	promotions, err := s.promotions.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	view, err := pricing.Resolve(product, promotions, at)
	if err != nil {
		s.logger.Error("Unable to resolve product price", "id", id, "error", err)
		return nil, err
	}

	return view, nil
}

func (s *productService) AddProduct(ctx context.Context, product *domain.Product) error {
	s.logger.Debug("Adding new product", "name", product.Name)

	if err := s.products.Add(ctx, product); err != nil {
		s.logger.Error("Unable to add product", "name", product.Name, "error", err)
		return err
	}

	s.eventBus.Publish(events.ProductAdded{ProductID: product.ID})
	return nil
}

func (s *productService) UpdateProduct(ctx context.Context, product *domain.Product) error {
	s.logger.Debug("Updating product", "id", product.ID)

	if err := s.products.Update(ctx, product); err != nil {
		s.logger.Error("Unable to update product", "id", product.ID, "error", err)
		return err
	}

	s.eventBus.Publish(events.ProductUpdated{ProductID: product.ID})
	return nil
}

func (s *productService) DeleteProduct(ctx context.Context, id string) error {
	s.logger.Debug("Deleting product", "id", id)

	if err := s.products.Delete(ctx, id); err != nil {
		s.logger.Error("Unable to delete product", "id", id, "error", err)
		return err
	}

	s.eventBus.Publish(events.ProductDeleted{ProductID: id})
	return nil
}

func (s *productService) IncrementViews(ctx context.Context, id string) error {
	_, err := s.products.IncrementViews(ctx, id)
	return err
}

// CheckoutLink returns the seller-supplied checkout URL for a product and
// records the sale. The link is checked for well-formedness only; its
// payment semantics belong entirely to the seller.
func (s *productService) CheckoutLink(ctx context.Context, id string) (string, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	if !product.HasPaymentLink() {
		return "", domain.ErrPaymentLinkNotConfigured
	}

	if _, err := s.products.IncrementSales(ctx, id); err != nil {
		s.logger.Warn("Unable to record sale", "id", id, "error", err)
	}

	return product.PaymentLink, nil
}

func (s *productService) Stats(ctx context.Context) (*ProductStats, error) {
	products, err := s.products.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := &ProductStats{
		TotalProducts: len(products),
		Categories:    map[string]int{},
	}
	for _, p := range products {
		if p.Featured {
			stats.FeaturedProducts++
		}
		stats.TotalSales += p.SalesCount
		stats.TotalViews += p.Views
		stats.TotalValue += p.Price
		stats.Categories[p.Category]++
	}
	if len(products) > 0 {
		stats.AveragePrice = stats.TotalValue / float64(len(products))
	}

	return stats, nil
}

func (s *productService) Close() error {
	s.once.Do(func() {
		s.logger.Info("Shutting down ProductService...")

		if s.subscriber != nil {
			s.eventBus.Unsubscribe(s.subscriber)
			s.subscriber = nil
		}

		s.wg.Wait()
	})

	return nil
}
