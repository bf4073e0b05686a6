package domain

import "time"

// Credentials holds the tokens obtained from a completed authorization
// flow. Created on successful token exchange, replaced wholesale by a
// pre-flight refresh, deleted once consumed by a fetch.
type Credentials struct {
	Provider ProviderType `json:"provider"`

	AccessToken  string `json:"-"` // Never serialize
	RefreshToken string `json:"-"` // Never serialize

	// ExpiresAt is when the access token stops being accepted by the
	// provider. Nil means the provider reported no expiry.
	ExpiresAt *time.Time `json:"expires_at,omitempty"`

	ObtainedAt time.Time `json:"obtained_at"`
}

// CredentialSummary provides a safe view without sensitive data
type CredentialSummary struct {
	Provider        ProviderType `json:"provider"`
	HasRefreshToken bool         `json:"has_refresh_token"`
	ExpiresAt       *time.Time   `json:"expires_at,omitempty"`
	ObtainedAt      time.Time    `json:"obtained_at"`
}

// ToSummary converts Credentials to CredentialSummary
func (c *Credentials) ToSummary() *CredentialSummary {
	return &CredentialSummary{
		Provider:        c.Provider,
		HasRefreshToken: c.RefreshToken != "",
		ExpiresAt:       c.ExpiresAt,
		ObtainedAt:      c.ObtainedAt,
	}
}

// IsExpired checks if the access token has expired
func (c *Credentials) IsExpired() bool {
	if c.ExpiresAt == nil {
		return false
	}
	return time.Now().After(*c.ExpiresAt)
}
