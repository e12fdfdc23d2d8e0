package usecase

import (
	"context"
	"fmt"

	"github.com/hamilton-i7/finito-sub001/internal/domain"
)

// ShowSettingsInput contains the input for the ShowSettings use case.
type ShowSettingsInput struct{}

// ShowSettingsOutput contains the effective settings.
type ShowSettingsOutput struct {
	Settings *domain.Settings // Defaults merged with the file
	Path     string           // Settings file path
	Warnings []string         // Unknown keys found in the file
}

// ShowSettings displays the effective settings and where they come from.
type ShowSettings struct {
	loader  domain.SettingsLoader
	manager domain.SettingsManager
}

// NewShowSettings creates a new ShowSettings use case.
func NewShowSettings(loader domain.SettingsLoader, manager domain.SettingsManager) *ShowSettings {
	return &ShowSettings{
		loader:  loader,
		manager: manager,
	}
}

// Execute loads the settings file.
func (uc *ShowSettings) Execute(_ context.Context, _ ShowSettingsInput) (*ShowSettingsOutput, error) {
	settings, err := uc.loader.Load()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	return &ShowSettingsOutput{
		Settings: settings,
		Path:     uc.manager.Path(),
		Warnings: settings.Warnings,
	}, nil
}
