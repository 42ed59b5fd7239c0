package ports

import "github.com/difrex/surok-build/internal/core/domain"

// ConfigLoader loads the build configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load searches for surok-build.yaml starting at cwd and walking up,
	// and returns the parsed configuration with defaults applied.
	Load(cwd string) (*domain.Config, error)
}
