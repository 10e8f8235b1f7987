package repository

import (
	"context"
	"sync"

	"github.com/templateshop/storefront/internal/domain"
)

// SettingsRepository holds the single store configuration record.
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Save(ctx context.Context, settings *domain.Settings) error
}

type memorySettingsRepository struct {
	settings *domain.Settings
	mutex    sync.RWMutex
}

func NewMemorySettingsRepository() SettingsRepository {
	return &memorySettingsRepository{
		settings: domain.DefaultSettings(),
	}
}

func (r *memorySettingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	c := *r.settings
	return &c, nil
}

func (r *memorySettingsRepository) Save(ctx context.Context, settings *domain.Settings) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	c := *settings
	r.settings = &c
	return nil
}
