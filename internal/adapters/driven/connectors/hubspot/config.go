package hubspot

import "time"

// Config contains configuration for the HubSpot connector.
type Config struct {
	// ClientID is the OAuth app client ID.
	ClientID string

	// ClientSecret is the OAuth app client secret.
	ClientSecret string

	// RedirectURL is the callback URL registered with the OAuth app.
	RedirectURL string

	// AuthURL is the browser-facing authorization endpoint.
	AuthURL string

	// TokenURL is the code and refresh token exchange endpoint.
	TokenURL string

	// APIBaseURL is the base URL for the HubSpot CRM API.
	APIBaseURL string

	// Scopes are requested during authorization, space-joined.
	Scopes []string

	// Timeout bounds each HTTP request to HubSpot.
	Timeout time.Duration

	// PageLimit is the number of objects to fetch per page.
	// Maximum is 100.
	PageLimit int

	// MaxPages bounds pagination per object kind.
	MaxPages int

	// MaxRetries is the maximum number of retry attempts for
	// rate-limited requests.
	MaxRetries int
}

// DefaultConfig returns the default HubSpot connector configuration.
// Credentials (ClientID, ClientSecret, RedirectURL) must be filled in
// by the caller.
func DefaultConfig() Config {
	return Config{
		AuthURL:    "https://app.hubspot.com/oauth/authorize",
		TokenURL:   "https://api.hubapi.com/oauth/v1/token",
		APIBaseURL: "https://api.hubapi.com",
		Scopes: []string{
			"crm.objects.contacts.read",
			"crm.objects.contacts.write",
			"crm.objects.companies.read",
			"crm.schemas.contacts.read",
			"crm.schemas.contacts.write",
			"oauth",
		},
		Timeout:    10 * time.Second,
		PageLimit:  100,
		MaxPages:   100,
		MaxRetries: 3,
	}
}

// withDefaults fills zero-valued fields from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.AuthURL == "" {
		c.AuthURL = def.AuthURL
	}
	if c.TokenURL == "" {
		c.TokenURL = def.TokenURL
	}
	if c.APIBaseURL == "" {
		c.APIBaseURL = def.APIBaseURL
	}
	if len(c.Scopes) == 0 {
		c.Scopes = def.Scopes
	}
	if c.Timeout <= 0 {
		c.Timeout = def.Timeout
	}
	if c.PageLimit <= 0 {
		c.PageLimit = def.PageLimit
	}
	if c.MaxPages <= 0 {
		c.MaxPages = def.MaxPages
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = def.MaxRetries
	}
	return c
}
