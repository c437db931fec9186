package ports

import "go.trai.ch/breakdown/internal/core/domain"

// ConfigLoader defines the interface for loading the application configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load discovers the configuration starting at cwd and returns it with defaults applied.
	Load(cwd string) (*domain.Config, error)
}
