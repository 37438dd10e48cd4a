package core

import (
	"context"
)

// Provider is a normalization boundary between one external content
// source and the common Result shape. All content sources implement
// this interface to integrate with the search pipeline.
//
// Key concepts:
//   - Type vs Name: Type is the provider category (e.g. "github"),
//     Name is the configured instance (e.g. "github_main").
//   - Degradation: a provider failure must never take down a search.
//     Callers log the error and treat the source as empty.
//   - Registration: providers register a prototype during init() and
//     are instantiated from configuration through Factory().
//
// Registration pattern:
//
//	func init() {
//		core.RegisterProviderPrototype("github", &Provider{})
//	}
type Provider interface {
	// Type returns the provider category identifier, a constant string
	// used for prototype registration and configuration matching.
	Type() string

	// Name returns the configured instance name for this provider.
	Name() string

	// Search fetches resources matching the free-text query and returns
	// them normalized into the common Result shape.
	//
	// Contract:
	//   - An empty or whitespace-only query returns (nil, nil) with no
	//     network activity.
	//   - Respect context cancellation and deadlines.
	//   - A missing credential is a configuration gap local to the
	//     provider: log it and return an empty slice, not an error.
	Search(ctx context.Context, query string) ([]Result, error)

	// ConfigType returns a pointer to an empty configuration struct of
	// the type SetConfig expects. Used to decode per-provider TOML
	// config blocks.
	ConfigType() interface{}

	// SetConfig replaces the provider configuration, validating it and
	// rebuilding any clients derived from it.
	SetConfig(config interface{}) error

	// GetConfig returns the current configuration.
	GetConfig() interface{}

	// Close releases connections or other resources.
	Close() error

	// Factory creates a configured instance of this provider type.
	// config may be nil for defaults.
	Factory(instanceName string, config interface{}) (Provider, error)
}

// Global registry for provider self-registration.
var globalRegistry = NewRegistry()

// RegisterProviderPrototype lets provider packages register themselves
// during init().
func RegisterProviderPrototype(name string, prototype Provider) {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.prototypes[name] = prototype
}

// GetGlobalRegistry returns a fresh registry seeded with every
// registered prototype.
func GetGlobalRegistry() *Registry {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	registry := NewRegistry()
	for name, prototype := range globalRegistry.prototypes {
		registry.prototypes[name] = prototype
	}
	return registry
}
