package cmd

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"

	"github.com/Mayank-jangid007/CouseHub/pkg/config"
	"github.com/Mayank-jangid007/CouseHub/pkg/core"
)

// createProvidersFromConfig instantiates every provider declared in
// the config and applies its typed configuration.
func createProvidersFromConfig(registry *core.Registry, cfg *config.Config) error {
	for _, name := range cfg.ListProviders() {
		providerType, rawConfig, err := cfg.GetProviderConfig(name)
		if err != nil {
			return fmt.Errorf("getting config for provider %s: %w", name, err)
		}

		if err := registry.CreateProvider(name, providerType, nil); err != nil {
			return fmt.Errorf("creating provider %s: %w", name, err)
		}

		p, err := registry.GetProvider(name)
		if err != nil {
			return fmt.Errorf("provider %s not found after creation", name)
		}

		typed, err := convertRawConfigToType(p, rawConfig)
		if err != nil {
			return fmt.Errorf("converting config for provider %s: %w", name, err)
		}
		if err := p.SetConfig(typed); err != nil {
			return fmt.Errorf("setting config for provider %s: %w", name, err)
		}
	}
	return nil
}

// convertRawConfigToType converts the raw TOML table into the
// provider's expected config struct via a marshal round trip.
func convertRawConfigToType(p core.Provider, rawConfig interface{}) (interface{}, error) {
	configType := p.ConfigType()
	if rawConfig == nil {
		return configType, nil
	}

	data, err := toml.Marshal(rawConfig)
	if err != nil {
		return nil, fmt.Errorf("marshaling config data: %w", err)
	}
	if err := toml.Unmarshal(data, configType); err != nil {
		return nil, fmt.Errorf("unmarshaling provider config: %w", err)
	}
	return configType, nil
}
