package ports

import "go.trai.ch/fxdev/internal/core/domain"

// ConfigLoader loads the resource configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load walks up from cwd to find the configuration file and returns the
	// fully resolved project. A resource without a configuration file yields
	// a project built entirely from defaults, rooted at cwd.
	Load(cwd string) (*domain.Project, error)
}
