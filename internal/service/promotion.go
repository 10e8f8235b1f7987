package service

import (
	"context"
	"sort"

	"github.com/hashicorp/go-hclog"

	"github.com/templateshop/storefront/internal/clock"
	"github.com/templateshop/storefront/internal/domain"
	"github.com/templateshop/storefront/internal/events"
	"github.com/templateshop/storefront/internal/repository"
)

// PromotionStats summarizes the promotion set for the admin dashboard.
type PromotionStats struct {
	TotalPromotions    int               `json:"totalPromotions"`
	ActivePromotions   int               `json:"activePromotions"`
	UpcomingPromotions int               `json:"upcomingPromotions"`
	ExpiredPromotions  int               `json:"expiredPromotions"`
	TotalUses          int               `json:"totalUses"`
	MostUsedPromotion  *domain.Promotion `json:"mostUsedPromotion,omitempty"`
}

type PromotionService interface {
	GetPromotions(ctx context.Context) (domain.Promotions, error)
	GetPromotionByID(ctx context.Context, id string) (*domain.Promotion, error)
	AddPromotion(ctx context.Context, promotion *domain.Promotion) error
	UpdatePromotion(ctx context.Context, promotion *domain.Promotion) error
	DeletePromotion(ctx context.Context, id string) error
	ListActive(ctx context.Context) (domain.Promotions, error)
	ListUpcoming(ctx context.Context) (domain.Promotions, error)
	ListExpired(ctx context.Context) (domain.Promotions, error)
	IncrementUsage(ctx context.Context, id string) error
	Stats(ctx context.Context) (*PromotionStats, error)
}

type promotionService struct {
	promotions repository.PromotionRepository
	clk        clock.Clock
	eventBus   *events.EventBus[any]
	logger     hclog.Logger
}

func NewPromotionService(
	promotions repository.PromotionRepository,
	clk clock.Clock,
	eventBus *events.EventBus[any],
	logger hclog.Logger) PromotionService {
	return &promotionService{
		promotions: promotions,
		clk:        clk,
		eventBus:   eventBus,
		logger:     logger,
	}
}

func (s *promotionService) GetPromotions(ctx context.Context) (domain.Promotions, error) {
	return s.promotions.GetAll(ctx)
}

func (s *promotionService) GetPromotionByID(ctx context.Context, id string) (*domain.Promotion, error) {
	return s.promotions.GetByID(ctx, id)
}

func (s *promotionService) AddPromotion(ctx context.Context, promotion *domain.Promotion) error {
	s.logger.Debug("Adding promotion", "name", promotion.Name, "type", promotion.Type)

	if !promotion.StartDate.Before(promotion.EndDate) {
		return domain.ErrMalformedWindow
	}

	if err := s.promotions.Add(ctx, promotion); err != nil {
		s.logger.Error("Unable to add promotion", "name", promotion.Name, "error", err)
		return err
	}

	s.eventBus.Publish(events.PromotionAdded{PromotionID: promotion.ID})
	return nil
}

func (s *promotionService) UpdatePromotion(ctx context.Context, promotion *domain.Promotion) error {
	s.logger.Debug("Updating promotion", "id", promotion.ID)

	if !promotion.StartDate.Before(promotion.EndDate) {
		return domain.ErrMalformedWindow
	}

	if err := s.promotions.Update(ctx, promotion); err != nil {
		s.logger.Error("Unable to update promotion", "id", promotion.ID, "error", err)
		return err
	}

	s.eventBus.Publish(events.PromotionUpdated{PromotionID: promotion.ID})
	return nil
}

func (s *promotionService) DeletePromotion(ctx context.Context, id string) error {
	s.logger.Debug("Deleting promotion", "id", id)

	if err := s.promotions.Delete(ctx, id); err != nil {
		s.logger.Error("Unable to delete promotion", "id", id, "error", err)
		return err
	}

	s.eventBus.Publish(events.PromotionDeleted{PromotionID: id})
	return nil
}

// ListActive returns promotions that are effectively active right now:
// switched on by the operator with the clock inside their window.
func (s *promotionService) ListActive(ctx context.Context) (domain.Promotions, error) {
	promotions, err := s.promotions.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clk.Now()
	active := make(domain.Promotions, 0)
	for _, p := range promotions {
		if p.ActiveAt(now) {
			active = append(active, p)
		}
	}
	return active, nil
}

// ListUpcoming returns switched-on promotions whose window has not opened
// yet, soonest first.
func (s *promotionService) ListUpcoming(ctx context.Context) (domain.Promotions, error) {
	promotions, err := s.promotions.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clk.Now()
	upcoming := make(domain.Promotions, 0)
	for _, p := range promotions {
		if p.Active && p.StartDate.After(now) {
			upcoming = append(upcoming, p)
		}
	}
	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].StartDate.Before(upcoming[j].StartDate)
	})
	return upcoming, nil
}

// ListExpired returns promotions whose window has closed, most recently
// ended first.
func (s *promotionService) ListExpired(ctx context.Context) (domain.Promotions, error) {
	promotions, err := s.promotions.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clk.Now()
	expired := make(domain.Promotions, 0)
	for _, p := range promotions {
		if p.EndDate.Before(now) {
			expired = append(expired, p)
		}
	}
	sort.Slice(expired, func(i, j int) bool {
		return expired[i].EndDate.After(expired[j].EndDate)
	})
	return expired, nil
}

func (s *promotionService) IncrementUsage(ctx context.Context, id string) error {
	_, err := s.promotions.IncrementUsage(ctx, id)
	return err
}

func (s *promotionService) Stats(ctx context.Context) (*PromotionStats, error) {
	promotions, err := s.promotions.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clk.Now()
	stats := &PromotionStats{TotalPromotions: len(promotions)}
	for _, p := range promotions {
		switch {
		case p.ActiveAt(now):
			stats.ActivePromotions++
		case p.Active && p.StartDate.After(now):
			stats.UpcomingPromotions++
		}
		if p.EndDate.Before(now) {
			stats.ExpiredPromotions++
		}
		stats.TotalUses += p.UsedCount
		if stats.MostUsedPromotion == nil || p.UsedCount > stats.MostUsedPromotion.UsedCount {
			stats.MostUsedPromotion = p
		}
	}

	return stats, nil
}
