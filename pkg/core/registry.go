package core

import (
	"fmt"
	"sync"
)

// Registry holds provider prototypes and configured instances.
// Instance order is preserved: search aggregation merges results in
// the order providers were created, which keeps relevance ties stable.
type Registry struct {
	prototypes map[string]Provider
	providers  map[string]Provider
	order      []string
	mu         sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		prototypes: make(map[string]Provider),
		providers:  make(map[string]Provider),
	}
}

func (r *Registry) RegisterPrototype(name string, prototype Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.prototypes[name]; exists {
		return fmt.Errorf("provider prototype %s already registered", name)
	}

	r.prototypes[name] = prototype
	return nil
}

// CreateProvider instantiates a provider of factoryType under
// instanceName. Replacing an existing instance closes the old one.
func (r *Registry) CreateProvider(instanceName string, factoryType string, config interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prototype, exists := r.prototypes[factoryType]
	if !exists {
		return fmt.Errorf("provider prototype %s not found", factoryType)
	}

	if validator, ok := config.(interface{ Validate() error }); ok {
		if err := validator.Validate(); err != nil {
			return fmt.Errorf("invalid config for provider %s: %w", instanceName, err)
		}
	}

	provider, err := prototype.Factory(instanceName, config)
	if err != nil {
		return fmt.Errorf("creating provider %s: %w", instanceName, err)
	}

	if existing, exists := r.providers[instanceName]; exists {
		if err := existing.Close(); err != nil {
			return fmt.Errorf("closing existing provider %s: %w", instanceName, err)
		}
	} else {
		r.order = append(r.order, instanceName)
	}

	r.providers[instanceName] = provider
	return nil
}

func (r *Registry) GetProvider(name string) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	provider, exists := r.providers[name]
	if !exists {
		return nil, fmt.Errorf("provider %s not found", name)
	}

	return provider, nil
}

// All returns configured providers in creation order.
func (r *Registry) All() []Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()

	providers := make([]Provider, 0, len(r.order))
	for _, name := range r.order {
		providers = append(providers, r.providers[name])
	}
	return providers
}

func (r *Registry) ListProviders() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

func (r *Registry) RemoveProvider(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	provider, exists := r.providers[name]
	if !exists {
		return fmt.Errorf("provider %s not found", name)
	}

	if err := provider.Close(); err != nil {
		return fmt.Errorf("closing provider %s: %w", name, err)
	}

	delete(r.providers, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for name, provider := range r.providers {
		if err := provider.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing provider %s: %w", name, err))
		}
	}

	r.providers = make(map[string]Provider)
	r.order = nil

	if len(errs) > 0 {
		return fmt.Errorf("errors closing providers: %v", errs)
	}

	return nil
}
