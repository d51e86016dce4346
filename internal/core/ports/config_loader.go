package ports

import "go.trai.ch/glow/internal/core/domain"

// ConfigLoader defines the interface for loading module definitions.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration from the given working directory and
	// returns the module definitions sorted by name.
	Load(cwd string) ([]domain.ModuleDef, error)
}
