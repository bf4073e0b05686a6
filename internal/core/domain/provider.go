package domain

// ProviderType identifies a CRM provider
type ProviderType string

const (
	ProviderTypeHubSpot ProviderType = "hubspot"
)

// ParseProviderType maps a URL path element onto a supported provider.
func ParseProviderType(s string) (ProviderType, error) {
	switch ProviderType(s) {
	case ProviderTypeHubSpot:
		return ProviderTypeHubSpot, nil
	default:
		return "", ErrProviderNotFound
	}
}

// Provider holds the OAuth application configuration for a CRM provider
type Provider struct {
	Type         ProviderType `json:"type"`
	Name         string       `json:"name"`         // Display name
	AuthURL      string       `json:"auth_url"`     // OAuth authorization URL
	TokenURL     string       `json:"token_url"`    // OAuth token URL
	APIBaseURL   string       `json:"api_base_url"` // REST API base URL
	Scopes       []string     `json:"scopes"`       // Requested OAuth scopes
	ClientID     string       `json:"client_id"`    // OAuth client ID (public)
	ClientSecret string       `json:"-"`            // OAuth client secret (never serialize)
	RedirectURL  string       `json:"redirect_url"` // OAuth callback URL
}

// IsConfigured reports whether the provider has usable app credentials.
func (p *Provider) IsConfigured() bool {
	return p.ClientID != "" && p.ClientSecret != "" && p.RedirectURL != ""
}
