package service

import (
	"context"

	"github.com/aushadhi/pharmacy-api/internal/domain/entity"
	"github.com/aushadhi/pharmacy-api/internal/domain/repository"
	"github.com/aushadhi/pharmacy-api/pkg/apperror"
)

// SettingsService handles the configurable GST rate bands
type SettingsService struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// GetSettings retrieves the current GST settings
func (s *SettingsService) GetSettings(ctx context.Context) (*entity.GSTSettings, error) {
	return s.settingsRepo.Get(ctx)
}

// UpdateSettingsInput represents the update settings input
type UpdateSettingsInput struct {
	Subsidized float64 `json:"subsidized" binding:"min=0,max=100"`
	General    float64 `json:"general" binding:"min=0,max=100"`
	Food       float64 `json:"food" binding:"min=0,max=100"`
}

// UpdateSettings replaces the GST rate bands. Rates apply to future bills
// only; committed sales keep the rates they were billed at.
func (s *SettingsService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*entity.GSTSettings, error) {
	for _, rate := range []float64{input.Subsidized, input.General, input.Food} {
		if rate < 0 || rate > 100 {
			return nil, apperror.NewValidationError("GST rates must be between 0 and 100")
		}
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	settings.Subsidized = input.Subsidized
	settings.General = input.General
	settings.Food = input.Food

	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
