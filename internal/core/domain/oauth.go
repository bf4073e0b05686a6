package domain

import "time"

// PendingAuth tracks an authorization flow between the initial redirect
// and the provider callback. It is keyed by the state token's nonce and
// consumed exactly once.
type PendingAuth struct {
	// Nonce is the random identifier embedded in the signed state token.
	Nonce string `json:"nonce"`

	// UserID and OrgID identify the session that started the flow.
	UserID string `json:"user_id"`
	OrgID  string `json:"org_id"`

	// Provider is the CRM provider this flow targets.
	Provider ProviderType `json:"provider"`

	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Session returns the session that initiated this flow.
func (p *PendingAuth) Session() Session {
	return Session{UserID: p.UserID, OrgID: p.OrgID}
}

// IsExpired reports whether the flow outlived its TTL.
func (p *PendingAuth) IsExpired() bool {
	return time.Now().After(p.ExpiresAt)
}
