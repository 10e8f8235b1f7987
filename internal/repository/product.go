package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/templateshop/storefront/internal/domain"
)

type ProductRepository interface {
	GetAll(ctx context.Context) (domain.Products, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Add(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) error
	Replace(ctx context.Context, products domain.Products) error
	IncrementViews(ctx context.Context, id string) (int, error)
	IncrementSales(ctx context.Context, id string) (int, error)
}

type memoryProductRepository struct {
	products []*domain.Product
	mutex    sync.RWMutex
	now      func() time.Time
}

func NewMemoryProductRepository() ProductRepository {
	return &memoryProductRepository{
		products: defaultProducts(),
		now:      time.Now,
	}
}

// GetAll returns a snapshot of the catalog. Callers always receive copies,
// so a resolver working over the result can never observe a concurrent
// mutation.
func (r *memoryProductRepository) GetAll(ctx context.Context) (domain.Products, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	snapshot := make(domain.Products, len(r.products))
	for i, product := range r.products {
		snapshot[i] = cloneProduct(product)
	}
	return snapshot, nil
}

func (r *memoryProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, product := range r.products {
		if product.ID == id {
			return cloneProduct(product), nil
		}
	}

	return nil, domain.ErrProductNotFound
}

func (r *memoryProductRepository) Add(ctx context.Context, product *domain.Product) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if product.ID == "" {
		product.ID = NewProductID()
	}
	now := r.now()
	product.CreatedAt = now
	product.UpdatedAt = now

	r.products = append(r.products, cloneProduct(product))
	return nil
}

func (r *memoryProductRepository) Update(ctx context.Context, product *domain.Product) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for i, p := range r.products {
		if p.ID == product.ID {
			// Creation time, sales and views survive edits
			product.CreatedAt = p.CreatedAt
			product.SalesCount = p.SalesCount
			product.Views = p.Views
			product.UpdatedAt = r.now()
			r.products[i] = cloneProduct(product)
			return nil
		}
	}

	return domain.ErrProductNotFound
}

func (r *memoryProductRepository) Delete(ctx context.Context, id string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for i, product := range r.products {
		if product.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}

	return domain.ErrProductNotFound
}

// Replace swaps the whole catalog, used by backup restore.
func (r *memoryProductRepository) Replace(ctx context.Context, products domain.Products) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	replacement := make([]*domain.Product, len(products))
	for i, product := range products {
		replacement[i] = cloneProduct(product)
	}
	r.products = replacement
	return nil
}

func (r *memoryProductRepository) IncrementViews(ctx context.Context, id string) (int, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, product := range r.products {
		if product.ID == id {
			product.Views++
			return product.Views, nil
		}
	}

	return 0, domain.ErrProductNotFound
}

func (r *memoryProductRepository) IncrementSales(ctx context.Context, id string) (int, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, product := range r.products {
		if product.ID == id {
			product.SalesCount++
			return product.SalesCount, nil
		}
	}

	return 0, domain.ErrProductNotFound
}

// NewProductID returns a fresh catalog identifier.
func NewProductID() string {
	return "prod_" + uuid.NewString()
}

func cloneProduct(p *domain.Product) *domain.Product {
	c := *p
	if p.OriginalPrice != nil {
		op := *p.OriginalPrice
		c.OriginalPrice = &op
	}
	if p.Tags != nil {
		c.Tags = append([]string(nil), p.Tags...)
	}
	return &c
}

// MatchesQuery reports whether a product matches a free-text storefront
// search over name, description and tags.
func MatchesQuery(p *domain.Product, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q) ||
		strings.Contains(strings.ToLower(p.Category), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}
