package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bhataasim1/integrations-technical-assessment/internal/core/domain"
	"github.com/bhataasim1/integrations-technical-assessment/internal/core/ports/driven"
	"github.com/bhataasim1/integrations-technical-assessment/internal/core/ports/driving"
)

// Ensure integrationService implements IntegrationService
var _ driving.IntegrationService = (*integrationService)(nil)

// DefaultCredentialTTL bounds how long exchanged credentials stay stored.
const DefaultCredentialTTL = time.Hour

// IntegrationServiceConfig holds dependencies for the integration service.
type IntegrationServiceConfig struct {
	// Store persists pending authorizations and credentials.
	Store driven.CredentialStore

	// StateTokens issues and redeems single-use state tokens.
	StateTokens *StateTokenService

	// OAuthClients maps each configured provider to its OAuth client.
	OAuthClients map[domain.ProviderType]driven.OAuthClient

	// ItemSources maps each configured provider to its item source.
	ItemSources map[domain.ProviderType]driven.ItemSource

	// CredentialTTL is how long exchanged credentials stay stored.
	// Zero means DefaultCredentialTTL.
	CredentialTTL time.Duration

	Logger *slog.Logger
}

// integrationService implements the IntegrationService interface.
type integrationService struct {
	store         driven.CredentialStore
	stateTokens   *StateTokenService
	oauthClients  map[domain.ProviderType]driven.OAuthClient
	itemSources   map[domain.ProviderType]driven.ItemSource
	credentialTTL time.Duration
	logger        *slog.Logger
}

// NewIntegrationService creates a new integration service.
func NewIntegrationService(cfg IntegrationServiceConfig) driving.IntegrationService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ttl := cfg.CredentialTTL
	if ttl <= 0 {
		ttl = DefaultCredentialTTL
	}
	return &integrationService{
		store:         cfg.Store,
		stateTokens:   cfg.StateTokens,
		oauthClients:  cfg.OAuthClients,
		itemSources:   cfg.ItemSources,
		credentialTTL: ttl,
		logger:        logger,
	}
}

// BeginAuth starts an OAuth authorization flow.
// It stores a pending authorization and returns the provider URL carrying
// the signed state token.
func (s *integrationService) BeginAuth(ctx context.Context, req driving.BeginAuthRequest) (*driving.BeginAuthResponse, error) {
	session := domain.Session{UserID: req.UserID, OrgID: req.OrgID}
	if err := session.Validate(); err != nil {
		return nil, err
	}

	client, ok := s.oauthClients[req.Provider]
	if !ok {
		return nil, driving.ErrOAuthProviderNotFound
	}

	state, expiresAt, err := s.stateTokens.Issue(ctx, session, req.Provider)
	if err != nil {
		return nil, fmt.Errorf("issue state token: %w", err)
	}

	s.logger.Info("authorization started",
		"provider", req.Provider,
		"user_id", session.UserID,
		"org_id", session.OrgID)

	return &driving.BeginAuthResponse{
		URL:       client.BuildAuthorizationURL(state),
		ExpiresAt: expiresAt,
	}, nil
}

// HandleCallback completes the OAuth flow after the provider redirect.
// It consumes the state (single-use), exchanges the code for tokens, and
// stores the credentials under the originating session.
func (s *integrationService) HandleCallback(ctx context.Context, req driving.CallbackRequest) (*driving.CallbackResponse, error) {
	// Check for error from provider
	if req.Error != "" {
		return nil, &driving.OAuthError{
			Code:        req.Error,
			Description: req.ErrorDescription,
		}
	}
	if req.Code == "" {
		return nil, &driving.OAuthError{
			Code:        "missing_code",
			Description: "The provider redirect did not include an authorization code",
		}
	}

	pending, err := s.stateTokens.Consume(ctx, req.State)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidState) {
			return nil, driving.ErrOAuthInvalidState
		}
		return nil, fmt.Errorf("consume state token: %w", err)
	}

	// The state was issued for one provider; the callback must match it.
	if req.Provider != pending.Provider {
		return nil, driving.ErrOAuthInvalidState
	}

	client, ok := s.oauthClients[pending.Provider]
	if !ok {
		return nil, driving.ErrOAuthProviderNotFound
	}

	creds, err := client.ExchangeCode(ctx, req.Code)
	if err != nil {
		return nil, &driving.OAuthError{
			Code:        "exchange_failed",
			Description: err.Error(),
		}
	}

	session := pending.Session()
	if err := s.store.SaveCredentials(ctx, session, creds, s.credentialTTL); err != nil {
		return nil, fmt.Errorf("save credentials: %w", err)
	}

	s.logger.Info("authorization completed",
		"provider", pending.Provider,
		"user_id", session.UserID,
		"org_id", session.OrgID,
		"has_refresh_token", creds.RefreshToken != "")

	return &driving.CallbackResponse{
		Session:     session,
		Credentials: creds.ToSummary(),
		Message:     fmt.Sprintf("Successfully connected to %s", providerDisplayName(pending.Provider)),
	}, nil
}

// FetchItems retrieves and normalizes the provider objects reachable with
// the session's stored credentials. Credentials are single-fetch: they are
// deleted once the fetch succeeds.
func (s *integrationService) FetchItems(ctx context.Context, req driving.FetchItemsRequest) ([]domain.Item, error) {
	if err := req.Session.Validate(); err != nil {
		return nil, err
	}

	source, ok := s.itemSources[req.Provider]
	if !ok {
		return nil, domain.ErrProviderNotFound
	}

	creds, err := s.store.GetCredentials(ctx, req.Session)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNoCredentials
		}
		return nil, fmt.Errorf("get credentials: %w", err)
	}
	if creds.Provider != req.Provider {
		return nil, domain.ErrNoCredentials
	}

	if creds.IsExpired() {
		creds, err = s.refreshCredentials(ctx, req.Provider, req.Session, creds)
		if err != nil {
			return nil, err
		}
	}

	items, err := source.FetchAll(ctx, creds.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("fetch items: %w", err)
	}

	// Credentials are not kept around once used.
	if err := s.store.DeleteCredentials(ctx, req.Session); err != nil {
		s.logger.Warn("failed to delete used credentials",
			"provider", req.Provider,
			"error", err)
	}

	s.logger.Info("items fetched",
		"provider", req.Provider,
		"user_id", req.Session.UserID,
		"org_id", req.Session.OrgID,
		"count", len(items))

	return items, nil
}

// GetCredentialSummary returns a redacted view of the session's stored
// credentials so a caller can confirm the connection without seeing tokens.
func (s *integrationService) GetCredentialSummary(ctx context.Context, req driving.CredentialSummaryRequest) (*domain.CredentialSummary, error) {
	if err := req.Session.Validate(); err != nil {
		return nil, err
	}

	if _, ok := s.oauthClients[req.Provider]; !ok {
		return nil, domain.ErrProviderNotFound
	}

	creds, err := s.store.GetCredentials(ctx, req.Session)
	if err != nil {
		return nil, err
	}
	if creds.Provider != req.Provider {
		return nil, domain.ErrNotFound
	}

	return creds.ToSummary(), nil
}

// refreshCredentials swaps an expired access token for a fresh one and
// stores the replacement. Refresh rejection surfaces as ErrUnauthorized.
func (s *integrationService) refreshCredentials(ctx context.Context, provider domain.ProviderType, session domain.Session, creds *domain.Credentials) (*domain.Credentials, error) {
	if creds.RefreshToken == "" {
		return nil, domain.ErrUnauthorized
	}

	client, ok := s.oauthClients[provider]
	if !ok {
		return nil, domain.ErrProviderNotFound
	}

	refreshed, err := client.RefreshCredentials(ctx, creds.RefreshToken)
	if err != nil {
		s.logger.Warn("credential refresh rejected",
			"provider", provider,
			"error", err)
		return nil, domain.ErrUnauthorized
	}
	// Providers may omit the refresh token on refresh; keep the old one.
	if refreshed.RefreshToken == "" {
		refreshed.RefreshToken = creds.RefreshToken
	}

	if err := s.store.SaveCredentials(ctx, session, refreshed, s.credentialTTL); err != nil {
		return nil, fmt.Errorf("save refreshed credentials: %w", err)
	}

	s.logger.Info("credentials refreshed",
		"provider", provider,
		"user_id", session.UserID,
		"org_id", session.OrgID)

	return refreshed, nil
}

// providerDisplayName returns a human-readable name for a provider.
func providerDisplayName(pt domain.ProviderType) string {
	switch pt {
	case domain.ProviderTypeHubSpot:
		return "HubSpot"
	default:
		return string(pt)
	}
}
