package service

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/templateshop/storefront/internal/clock"
	"github.com/templateshop/storefront/internal/domain"
	"github.com/templateshop/storefront/internal/repository"
)

const backupVersion = "1.0.0"

// Backup is a full export of the store state
//
// swagger:model
type Backup struct {
	Products   domain.Products   `json:"products"`
	Promotions domain.Promotions `json:"promotions"`
	Settings   *domain.Settings  `json:"settings"`
	Timestamp  time.Time         `json:"timestamp"`
	Version    string            `json:"version"`
}

// BackupService exports and restores the whole store state as a single
// document the operator can download.
type BackupService interface {
	Export(ctx context.Context) (*Backup, error)
	Restore(ctx context.Context, backup *Backup) error
}

type backupService struct {
	products   repository.ProductRepository
	promotions repository.PromotionRepository
	settings   repository.SettingsRepository
	validation *domain.Validation
	clk        clock.Clock
	logger     hclog.Logger
}

func NewBackupService(
	products repository.ProductRepository,
	promotions repository.PromotionRepository,
	settings repository.SettingsRepository,
	validation *domain.Validation,
	clk clock.Clock,
	logger hclog.Logger) BackupService {
	return &backupService{
		products:   products,
		promotions: promotions,
		settings:   settings,
		validation: validation,
		clk:        clk,
		logger:     logger,
	}
}

func (s *backupService) Export(ctx context.Context) (*Backup, error) {
	products, err := s.products.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	promotions, err := s.promotions.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Exporting backup", "products", len(products), "promotions", len(promotions))

	return &Backup{
		Products:   products,
		Promotions: promotions,
		Settings:   settings,
		Timestamp:  s.clk.Now(),
		Version:    backupVersion,
	}, nil
}

// Restore validates every record before touching the stores, then replaces
// all store contents atomically from the restorer's point of view: either
// the whole backup is accepted or nothing changes.
func (s *backupService) Restore(ctx context.Context, backup *Backup) error {
	for _, p := range backup.Products {
		if errs := s.validation.Validate(p); len(errs) > 0 {
			return fmt.Errorf("backup product %q: %s", p.ID, errs[0].Error())
		}
	}
	for _, p := range backup.Promotions {
		if errs := s.validation.Validate(p); len(errs) > 0 {
			return fmt.Errorf("backup promotion %q: %s", p.ID, errs[0].Error())
		}
		if !p.StartDate.Before(p.EndDate) {
			return fmt.Errorf("backup promotion %q: %w", p.ID, domain.ErrMalformedWindow)
		}
	}

	if err := s.products.Replace(ctx, backup.Products); err != nil {
		return err
	}
	if err := s.promotions.Replace(ctx, backup.Promotions); err != nil {
		return err
	}
	if backup.Settings != nil {
		if err := s.settings.Save(ctx, backup.Settings); err != nil {
			return err
		}
	}

	s.logger.Info("Restored backup",
		"products", len(backup.Products),
		"promotions", len(backup.Promotions),
		"version", backup.Version)
	return nil
}
