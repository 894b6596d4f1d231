package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Zebedee     ZebedeeConfig `mapstructure:"zebedee"`
	OAuth       OAuthConfig   `mapstructure:"oauth"`
	Logging     LoggingConfig `mapstructure:"logging"`
	Metrics     MetricsConfig `mapstructure:"metrics"`
	Update      UpdateConfig  `mapstructure:"update"`
	Filters     FilterConfig  `mapstructure:"filters"`
	Concurrency int           `mapstructure:"concurrency"`
}

// ZebedeeConfig holds API connection details
type ZebedeeConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// OAuthConfig holds the Login with ZBD application settings
type OAuthConfig struct {
	ClientID    string `mapstructure:"client_id"`
	Secret      string `mapstructure:"secret"`
	RedirectURI string `mapstructure:"redirect_uri"`
	State       string `mapstructure:"state"`
	Scope       string `mapstructure:"scope"`
}

// Enabled reports whether any OAuth setting was provided.
func (o OAuthConfig) Enabled() bool {
	return o.ClientID != "" || o.Secret != "" || o.RedirectURI != ""
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// MetricsConfig controls the Prometheus listener
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Listen  string `mapstructure:"listen"`
}

// UpdateConfig contains self-update settings
type UpdateConfig struct {
	Repository string `mapstructure:"repository"`
}

// FilterConfig maps preset names to filter expressions
type FilterConfig map[string]string
