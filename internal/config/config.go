package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Backend REST API settings
	Backend BackendConfig `yaml:"backend"`

	// Billing constants applied to drafts and list aggregates
	Billing BillingConfig `yaml:"billing"`

	// Hosted database used by the invoice detail view
	Detail DetailConfig `yaml:"detail"`

	// UI settings
	UI UIConfig `yaml:"ui"`

	// Logging settings
	Log LogConfig `yaml:"log"`
}

type BackendConfig struct {
	BaseURL        string `yaml:"base_url"`        // e.g. https://backend.example.com
	MemberID       string `yaml:"member_id"`       // scope for invoice listing
	TimeoutSeconds int    `yaml:"timeout_seconds"` // 0 disables the client timeout
	RetryMax       int    `yaml:"retry_max"`       // transport retries; 0 keeps retries user-initiated
}

type BillingConfig struct {
	TaxRate          float64 `yaml:"tax_rate"`          // decimal (0.18 = 18%)
	ConversionFactor float64 `yaml:"conversion_factor"` // base-currency unit price -> display currency
	CurrencyLabel    string  `yaml:"currency_label"`    // prefix for rendered amounts (e.g. "Rs")
}

type DetailConfig struct {
	SupabaseURL string `yaml:"supabase_url"`
	SupabaseKey string `yaml:"supabase_key"`
}

type UIConfig struct {
	Role string `yaml:"role"` // "admin" or "student"
}

type LogConfig struct {
	File string `yaml:"file"` // log file path; the TUI owns the terminal
}

// Timeout returns the backend request timeout as a duration
func (c BackendConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// DefaultConfigPath returns ~/.config/tuitiondesk/config.yaml
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home dir unavailable
		return filepath.Join(".", ".config", "tuitiondesk", "config.yaml")
	}
	return filepath.Join(homeDir, ".config", "tuitiondesk", "config.yaml")
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	return &Config{
		Backend: BackendConfig{
			BaseURL:        "https://new-backend-ve6s7g.fly.dev",
			MemberID:       "123",
			TimeoutSeconds: 30,
			RetryMax:       0,
		},
		Billing: BillingConfig{
			TaxRate:          0.18,
			ConversionFactor: 300,
			CurrencyLabel:    "Rs",
		},
		Detail: DetailConfig{},
		UI: UIConfig{
			Role: "admin",
		},
		Log: LogConfig{
			File: filepath.Join(homeDir, ".config", "tuitiondesk", "tuitiondesk.log"),
		},
	}
}

// Load loads config from the given path, or returns defaults if file doesn't exist
func Load(path string) (*Config, error) {
	// If file doesn't exist, return defaults
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	// Read file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Parse YAML
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDefault loads from the default config path
func LoadDefault() (*Config, error) {
	return Load(DefaultConfigPath())
}

// Save writes the config to the given path
func (c *Config) Save(path string) error {
	// Create parent directories if they don't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	// Marshal to YAML
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	// Write to file
	return os.WriteFile(path, data, 0644)
}

// EnsureDirectories creates directories the app writes into (log output)
func (c *Config) EnsureDirectories() error {
	if c.Log.File != "" {
		if err := os.MkdirAll(filepath.Dir(c.Log.File), 0755); err != nil {
			return err
		}
	}
	return nil
}
