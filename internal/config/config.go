package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the process-wide configuration. It is loaded from the
// environment once at startup and never mutated afterwards; components
// receive the fields they need at construction.
type Config struct {
	// Host and Port bind the HTTP server.
	Host string `env:"HOST" envDefault:"0.0.0.0"`
	Port int    `env:"PORT" envDefault:"8080"`

	// FrontendURL, when set, is where the OAuth callback redirects the
	// browser after a completed flow. Empty means the callback answers
	// with JSON instead.
	FrontendURL string `env:"FRONTEND_URL"`

	// CORSAllowedOrigins lists the origins allowed to call the API.
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// StateSigningSecret signs the OAuth state tokens.
	StateSigningSecret string `env:"STATE_SIGNING_SECRET" envDefault:"development-secret-change-in-production"`

	// EncryptionSecret seals credentials at rest in the Redis and
	// PostgreSQL store backends.
	EncryptionSecret string `env:"CREDENTIAL_ENCRYPTION_SECRET" envDefault:"development-secret-change-in-production"`

	// StateTTL bounds how long an issued state token may be redeemed.
	StateTTL time.Duration `env:"STATE_TTL" envDefault:"10m"`

	// CredentialTTL bounds how long exchanged credentials stay stored.
	CredentialTTL time.Duration `env:"CREDENTIAL_TTL" envDefault:"1h"`

	// CleanupInterval is how often the background sweeper evicts
	// expired store entries.
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" envDefault:"1m"`

	// RedisURL selects the Redis store backend when set.
	RedisURL string `env:"REDIS_URL"`

	// DatabaseURL selects the PostgreSQL store backend when set and
	// Redis is not.
	DatabaseURL string `env:"DATABASE_URL"`

	// HubSpot OAuth app registration. The provider is only wired when
	// both client ID and secret are present.
	HubSpotClientID     string `env:"HUBSPOT_CLIENT_ID"`
	HubSpotClientSecret string `env:"HUBSPOT_CLIENT_SECRET"`
	HubSpotRedirectURL  string `env:"HUBSPOT_REDIRECT_URI" envDefault:"http://localhost:8080/integrations/hubspot/oauth2callback"`

	// Outbound provider HTTP behaviour.
	ProviderTimeout    time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"10s"`
	ProviderPageLimit  int           `env:"PROVIDER_PAGE_LIMIT" envDefault:"100"`
	ProviderMaxPages   int           `env:"PROVIDER_MAX_PAGES" envDefault:"100"`
	ProviderMaxRetries int           `env:"PROVIDER_MAX_RETRIES" envDefault:"3"`
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for values no component can work
// with. Missing provider credentials are not an error here: the
// provider is simply not wired at boot.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.StateSigningSecret == "" {
		return errors.New("state signing secret must not be empty")
	}
	if c.EncryptionSecret == "" {
		return errors.New("credential encryption secret must not be empty")
	}
	if c.StateTTL <= 0 {
		return fmt.Errorf("state TTL must be positive, got %s", c.StateTTL)
	}
	if c.CredentialTTL <= 0 {
		return fmt.Errorf("credential TTL must be positive, got %s", c.CredentialTTL)
	}
	if c.CleanupInterval <= 0 {
		return fmt.Errorf("cleanup interval must be positive, got %s", c.CleanupInterval)
	}
	if c.ProviderTimeout <= 0 {
		return fmt.Errorf("provider timeout must be positive, got %s", c.ProviderTimeout)
	}
	if c.ProviderPageLimit <= 0 || c.ProviderPageLimit > 100 {
		return fmt.Errorf("provider page limit must be in 1..100, got %d", c.ProviderPageLimit)
	}
	if c.ProviderMaxPages <= 0 {
		return fmt.Errorf("provider max pages must be positive, got %d", c.ProviderMaxPages)
	}
	if c.ProviderMaxRetries < 0 {
		return fmt.Errorf("provider max retries must not be negative, got %d", c.ProviderMaxRetries)
	}
	return nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// HubSpotConfigured reports whether the HubSpot OAuth app is usable.
func (c *Config) HubSpotConfigured() bool {
	return c.HubSpotClientID != "" && c.HubSpotClientSecret != "" && c.HubSpotRedirectURL != ""
}
