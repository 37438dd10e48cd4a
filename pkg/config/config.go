package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed config.toml.sample
var configTemplate string

// Config is the top-level application configuration, loaded from TOML.
type Config struct {
	StorageDir     string   `toml:"storage_dir"`
	ListenAddr     string   `toml:"listen_addr"`
	RequestTimeout Duration `toml:"request_timeout"`
	JWTSecret      string   `toml:"jwt_secret"`
	SessionTTL     Duration `toml:"session_ttl"`

	Summary   SummaryConfig           `toml:"summary"`
	OAuth     OAuthConfig             `toml:"oauth"`
	Providers map[string]ProviderInfo `toml:"providers"`
}

// SummaryConfig configures the generated-abstract service client.
// An empty APIKey disables generation (results carry no abstract).
type SummaryConfig struct {
	APIKey   string `toml:"api_key"`
	Endpoint string `toml:"endpoint"`
	Model    string `toml:"model"`
}

// OAuthConfig holds the federated identity providers.
type OAuthConfig struct {
	Google OAuthProvider `toml:"google"`
	GitHub OAuthProvider `toml:"github"`
}

type OAuthProvider struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RedirectURL  string `toml:"redirect_url"`
}

// ProviderInfo is one configured content-provider instance.
type ProviderInfo struct {
	Type   string      `toml:"type"`
	Config interface{} `toml:"config"`
}

type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func GetDefaultConfig() (*Config, error) {
	storageDir, err := GetDefaultStorageDir()
	if err != nil {
		return nil, fmt.Errorf("getting default storage directory: %w", err)
	}
	return &Config{
		StorageDir:     storageDir,
		ListenAddr:     ":8080",
		RequestTimeout: Duration{10 * time.Second},
		SessionTTL:     Duration{24 * time.Hour},
		Providers:      make(map[string]ProviderInfo),
	}, nil
}

func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return GetDefaultConfig()
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if config.StorageDir == "" {
		storageDir, err := GetDefaultStorageDir()
		if err != nil {
			return nil, fmt.Errorf("getting default storage directory: %w", err)
		}
		config.StorageDir = storageDir
	}
	if config.ListenAddr == "" {
		config.ListenAddr = ":8080"
	}
	if config.RequestTimeout.Duration == 0 {
		config.RequestTimeout = Duration{10 * time.Second}
	}
	if config.SessionTTL.Duration == 0 {
		config.SessionTTL = Duration{24 * time.Hour}
	}
	if config.Providers == nil {
		config.Providers = make(map[string]ProviderInfo)
	}

	return &config, nil
}

func (c *Config) SaveConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}

// SaveTemplateConfig writes the commented sample config, used by the
// init command.
func (c *Config) SaveTemplateConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return os.WriteFile(configPath, []byte(configTemplate), 0644)
}

func (c *Config) AddProvider(name, providerType string, providerConfig interface{}) {
	c.Providers[name] = ProviderInfo{
		Type:   providerType,
		Config: providerConfig,
	}
}

func (c *Config) GetProviderConfig(name string) (string, interface{}, error) {
	info, exists := c.Providers[name]
	if !exists {
		return "", nil, fmt.Errorf("provider %s not found", name)
	}
	return info.Type, info.Config, nil
}

func (c *Config) ListProviders() []string {
	names := make([]string, 0, len(c.Providers))
	for name := range c.Providers {
		names = append(names, name)
	}
	return names
}

func (c *Config) RemoveProvider(name string) {
	delete(c.Providers, name)
}

// GetDefaultStorageDir returns the directory for databases, following
// XDG conventions.
func GetDefaultStorageDir() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting user home directory: %w", err)
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	dir := filepath.Join(dataDir, "coursehub")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating storage directory %s: %w", dir, err)
	}

	return dir, nil
}

// GetConfigDir returns the configuration directory.
func GetConfigDir() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting user home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	dir := filepath.Join(configDir, "coursehub")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	return dir, nil
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}
