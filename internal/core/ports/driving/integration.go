package driving

import (
	"context"
	"time"

	"github.com/bhataasim1/integrations-technical-assessment/internal/core/domain"
)

// IntegrationService exposes the CRM integration operations consumed by
// the HTTP layer: starting an authorization flow, completing it, and
// fetching normalized items with the stored credentials.
type IntegrationService interface {
	// BeginAuth starts an OAuth authorization flow for a session.
	// Returns the provider URL to redirect the user to; the signed state
	// embedded in it is stored for single-use validation at callback time.
	BeginAuth(ctx context.Context, req BeginAuthRequest) (*BeginAuthResponse, error)

	// HandleCallback completes the flow: validates and consumes the
	// state, exchanges the code for tokens, and stores the credentials
	// for the originating session.
	HandleCallback(ctx context.Context, req CallbackRequest) (*CallbackResponse, error)

	// FetchItems retrieves and normalizes the CRM objects reachable with
	// the session's stored credentials, then deletes the credentials
	// (fetch-once hygiene). Fails with domain.ErrNoCredentials when no
	// valid credentials exist.
	FetchItems(ctx context.Context, req FetchItemsRequest) ([]domain.Item, error)

	// GetCredentialSummary returns a redacted view of the session's
	// stored credentials, or domain.ErrNotFound when absent.
	GetCredentialSummary(ctx context.Context, req CredentialSummaryRequest) (*domain.CredentialSummary, error)
}

// BeginAuthRequest identifies the session and provider starting a flow.
// @Description Request to start an OAuth authorization flow
type BeginAuthRequest struct {
	// Provider is the CRM provider to authorize against.
	Provider domain.ProviderType `json:"provider" example:"hubspot"`

	// UserID and OrgID identify the session initiating auth.
	UserID string `json:"user_id" example:"u1"`
	OrgID  string `json:"org_id" example:"o1"`
}

// BeginAuthResponse contains the provider redirect URL.
// @Description Response containing the OAuth authorization URL
type BeginAuthResponse struct {
	// URL is the provider authorization URL to redirect the user to.
	URL string `json:"url" example:"https://app.hubspot.com/oauth/authorize?client_id=..."`

	// ExpiresAt is when the embedded state stops being accepted.
	ExpiresAt time.Time `json:"expires_at" example:"2024-01-15T10:10:00Z"`
}

// CallbackRequest carries the provider redirect parameters.
// @Description OAuth callback parameters from the provider redirect
type CallbackRequest struct {
	// Provider is the CRM provider completing the flow.
	Provider domain.ProviderType `json:"provider" example:"hubspot"`

	// Code is the authorization code from the provider.
	Code string `json:"code" example:"abc123"`

	// State is the signed state token round-tripped through the provider.
	State string `json:"state"`

	// Error is set if the provider returned an error.
	Error string `json:"error,omitempty" example:"access_denied"`

	// ErrorDescription provides details about the error.
	ErrorDescription string `json:"error_description,omitempty" example:"The user denied access"`
}

// CallbackResponse contains the result of a completed flow.
// @Description Response after successful OAuth authorization
type CallbackResponse struct {
	// Session is the session the credentials were stored under.
	Session domain.Session `json:"session"`

	// Credentials is a redacted view of the stored tokens.
	Credentials *domain.CredentialSummary `json:"credentials"`

	// Message provides a human-readable status line.
	Message string `json:"message" example:"Successfully connected to HubSpot"`
}

// FetchItemsRequest identifies whose credentials to fetch with.
// @Description Request to fetch normalized items for a session
type FetchItemsRequest struct {
	// Provider is the CRM provider to fetch from.
	Provider domain.ProviderType `json:"provider" example:"hubspot"`

	// Session identifies the stored credentials to use.
	Session domain.Session `json:"session"`
}

// CredentialSummaryRequest identifies whose credentials to describe.
type CredentialSummaryRequest struct {
	Provider domain.ProviderType `json:"provider" example:"hubspot"`
	Session  domain.Session      `json:"session"`
}

// OAuthError represents an OAuth flow error surfaced to the caller.
type OAuthError struct {
	Code        string `json:"error" example:"invalid_state"`
	Description string `json:"error_description" example:"The state parameter is invalid or expired"`
}

func (e *OAuthError) Error() string {
	if e.Description != "" {
		return e.Code + ": " + e.Description
	}
	return e.Code
}

// Common OAuth errors
var (
	ErrOAuthInvalidState     = &OAuthError{Code: "invalid_state", Description: "The state parameter is invalid or expired"}
	ErrOAuthProviderNotFound = &OAuthError{Code: "provider_not_found", Description: "The provider is not configured"}
	ErrOAuthExchangeFailed   = &OAuthError{Code: "exchange_failed", Description: "Failed to exchange authorization code for tokens"}
)
