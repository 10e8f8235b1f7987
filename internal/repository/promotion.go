package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/templateshop/storefront/internal/domain"
)

type PromotionRepository interface {
	GetAll(ctx context.Context) (domain.Promotions, error)
	GetByID(ctx context.Context, id string) (*domain.Promotion, error)
	Add(ctx context.Context, promotion *domain.Promotion) error
	Update(ctx context.Context, promotion *domain.Promotion) error
	Delete(ctx context.Context, id string) error
	Replace(ctx context.Context, promotions domain.Promotions) error
	IncrementUsage(ctx context.Context, id string) (int, error)
}

type memoryPromotionRepository struct {
	promotions []*domain.Promotion
	mutex      sync.RWMutex
	now        func() time.Time
}

func NewMemoryPromotionRepository() PromotionRepository {
	return &memoryPromotionRepository{
		promotions: defaultPromotions(time.Now()),
		now:        time.Now,
	}
}

func (r *memoryPromotionRepository) GetAll(ctx context.Context) (domain.Promotions, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	snapshot := make(domain.Promotions, len(r.promotions))
	for i, promotion := range r.promotions {
		snapshot[i] = clonePromotion(promotion)
	}
	return snapshot, nil
}

func (r *memoryPromotionRepository) GetByID(ctx context.Context, id string) (*domain.Promotion, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, promotion := range r.promotions {
		if promotion.ID == id {
			return clonePromotion(promotion), nil
		}
	}

	return nil, domain.ErrPromotionNotFound
}

func (r *memoryPromotionRepository) Add(ctx context.Context, promotion *domain.Promotion) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if promotion.ID == "" {
		promotion.ID = NewPromotionID()
	}
	now := r.now()
	promotion.CreatedAt = now
	promotion.UpdatedAt = now
	promotion.UsedCount = 0

	r.promotions = append(r.promotions, clonePromotion(promotion))
	return nil
}

func (r *memoryPromotionRepository) Update(ctx context.Context, promotion *domain.Promotion) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for i, p := range r.promotions {
		if p.ID == promotion.ID {
			// Creation time and usage tally survive edits
			promotion.CreatedAt = p.CreatedAt
			promotion.UsedCount = p.UsedCount
			promotion.UpdatedAt = r.now()
			r.promotions[i] = clonePromotion(promotion)
			return nil
		}
	}

	return domain.ErrPromotionNotFound
}

func (r *memoryPromotionRepository) Delete(ctx context.Context, id string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for i, promotion := range r.promotions {
		if promotion.ID == id {
			r.promotions = append(r.promotions[:i], r.promotions[i+1:]...)
			return nil
		}
	}

	return domain.ErrPromotionNotFound
}

// Replace swaps the whole promotion set, used by backup restore.
func (r *memoryPromotionRepository) Replace(ctx context.Context, promotions domain.Promotions) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	replacement := make([]*domain.Promotion, len(promotions))
	for i, promotion := range promotions {
		replacement[i] = clonePromotion(promotion)
	}
	r.promotions = replacement
	return nil
}

// IncrementUsage bumps the recorded usage tally. The tally is informational
// only and never gates pricing.
func (r *memoryPromotionRepository) IncrementUsage(ctx context.Context, id string) (int, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for _, promotion := range r.promotions {
		if promotion.ID == id {
			promotion.UsedCount++
			return promotion.UsedCount, nil
		}
	}

	return 0, domain.ErrPromotionNotFound
}

// NewPromotionID returns a fresh promotion identifier.
func NewPromotionID() string {
	return "promo_" + uuid.NewString()
}

func clonePromotion(p *domain.Promotion) *domain.Promotion {
	c := *p
	if p.Products != nil {
		c.Products = append([]string(nil), p.Products...)
	}
	return &c
}
