package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/bhataasim1/integrations-technical-assessment/internal/core/domain"
	"github.com/bhataasim1/integrations-technical-assessment/internal/core/ports/driving"
	"github.com/bhataasim1/integrations-technical-assessment/internal/observability"
)

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Detail string `json:"detail" example:"invalid or expired state"`
}

// HealthResponse represents the health check response
// @Description Health check response
type HealthResponse struct {
	Status  string `json:"status" example:"healthy"`
	Version string `json:"version" example:"1.0.0"`
}

// AuthorizeResponse contains the provider authorization URL
// @Description Authorization URL to redirect the user to
type AuthorizeResponse struct {
	URL string `json:"url" example:"https://app.hubspot.com/oauth/authorize?client_id=..."`
}

// sessionCredentials is the form-posted JSON blob identifying whose
// stored credentials a fetch should use.
type sessionCredentials struct {
	UserID string `json:"userId"`
	OrgID  string `json:"orgId"`
}

// Health endpoints

// pingTimeout bounds the store health check.
const pingTimeout = 2 * time.Second

// handleHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the service and pings the credential store backend
// @Tags         Health
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Failure      503  {object}  HealthResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()
		if err := s.store.Ping(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unhealthy", Version: s.version})
			return
		}
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "healthy", Version: s.version})
}

// Integration endpoints

// handleAuthorize godoc
// @Summary      Begin OAuth authorization
// @Description  Starts an OAuth flow for a session and returns the provider URL to redirect the user to
// @Tags         Integrations
// @Produce      json
// @Param        provider  path      string  true  "Provider name"  Enums(hubspot)
// @Param        userId    query     string  true  "User identifier"
// @Param        orgId     query     string  true  "Organization identifier"
// @Success      200       {object}  AuthorizeResponse
// @Failure      400       {object}  ErrorResponse  "Missing or invalid session identifiers"
// @Failure      404       {object}  ErrorResponse  "Unknown provider"
// @Router       /integrations/{provider}/authorize [get]
func (s *Server) handleAuthorize(w http.ResponseWriter, r *http.Request) {
	provider, err := domain.ParseProviderType(r.PathValue("provider"))
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown provider: "+r.PathValue("provider"))
		return
	}

	userID := r.URL.Query().Get("userId")
	orgID := r.URL.Query().Get("orgId")
	if userID == "" || orgID == "" {
		writeError(w, http.StatusBadRequest, "userId and orgId query parameters are required")
		return
	}

	resp, err := s.integrationService.BeginAuth(r.Context(), driving.BeginAuthRequest{
		Provider: provider,
		UserID:   userID,
		OrgID:    orgID,
	})
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	observability.RecordAuthorizationStarted(string(provider))
	writeJSON(w, http.StatusOK, AuthorizeResponse{URL: resp.URL})
}

// handleOAuthCallback godoc
// @Summary      OAuth callback
// @Description  Completes the OAuth flow after the provider redirect. Redirects to the configured frontend URL when set, otherwise returns the stored session as JSON.
// @Tags         Integrations
// @Produce      json
// @Param        provider  path      string  true   "Provider name"  Enums(hubspot)
// @Param        code      query     string  false  "Authorization code"
// @Param        state     query     string  false  "Signed state token"
// @Param        error     query     string  false  "Provider error code"
// @Success      200       {object}  driving.CallbackResponse
// @Success      302       {string}  string  "Redirect to frontend"
// @Failure      400       {object}  ErrorResponse  "Invalid state or failed exchange"
// @Failure      404       {object}  ErrorResponse  "Unknown provider"
// @Router       /integrations/{provider}/oauth2callback [get]
func (s *Server) handleOAuthCallback(w http.ResponseWriter, r *http.Request) {
	provider, err := domain.ParseProviderType(r.PathValue("provider"))
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown provider: "+r.PathValue("provider"))
		return
	}

	query := r.URL.Query()
	resp, err := s.integrationService.HandleCallback(r.Context(), driving.CallbackRequest{
		Provider:         provider,
		Code:             query.Get("code"),
		State:            query.Get("state"),
		Error:            query.Get("error"),
		ErrorDescription: query.Get("error_description"),
	})
	if err != nil {
		observability.RecordAuthorizationCompleted(string(provider), observability.OutcomeError)
		s.writeServiceError(w, err)
		return
	}

	observability.RecordAuthorizationCompleted(string(provider), observability.OutcomeSuccess)

	if s.frontendURL != "" {
		if location, err := s.frontendRedirect(provider, resp.Session); err == nil {
			http.Redirect(w, r, location, http.StatusFound)
			return
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleFetchItems godoc
// @Summary      Fetch normalized items
// @Description  Fetches all CRM objects reachable with the session's stored credentials and returns them normalized. Credentials are deleted after a successful fetch.
// @Tags         Integrations
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        provider     path      string  true  "Provider name"  Enums(hubspot)
// @Param        credentials  formData  string  true  "JSON blob with userId and orgId"
// @Success      200          {array}   domain.Item
// @Failure      400          {object}  ErrorResponse  "No stored credentials or malformed request"
// @Failure      401          {object}  ErrorResponse  "Provider rejected the access token"
// @Failure      404          {object}  ErrorResponse  "Unknown provider"
// @Failure      429          {object}  ErrorResponse  "Provider rate limit exhausted"
// @Failure      502          {object}  ErrorResponse  "Provider-side failure"
// @Failure      504          {object}  ErrorResponse  "Provider call timed out"
// @Router       /integrations/{provider} [post]
func (s *Server) handleFetchItems(w http.ResponseWriter, r *http.Request) {
	provider, err := domain.ParseProviderType(r.PathValue("provider"))
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown provider: "+r.PathValue("provider"))
		return
	}

	payload := r.FormValue("credentials")
	if payload == "" {
		writeError(w, http.StatusBadRequest, "credentials form field is required")
		return
	}

	var creds sessionCredentials
	if err := json.Unmarshal([]byte(payload), &creds); err != nil {
		writeError(w, http.StatusBadRequest, "credentials must be a JSON object with userId and orgId")
		return
	}

	items, err := s.integrationService.FetchItems(r.Context(), driving.FetchItemsRequest{
		Provider: provider,
		Session:  domain.Session{UserID: creds.UserID, OrgID: creds.OrgID},
	})
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	counts := make(map[domain.ItemType]int)
	for _, item := range items {
		counts[item.Type]++
	}
	for itemType, n := range counts {
		observability.RecordItemsFetched(string(provider), string(itemType), n)
	}

	if items == nil {
		items = []domain.Item{}
	}
	writeJSON(w, http.StatusOK, items)
}

// handleGetCredentials godoc
// @Summary      Inspect stored credentials
// @Description  Returns a redacted summary of the session's stored credentials
// @Tags         Integrations
// @Produce      json
// @Param        provider  path      string  true  "Provider name"  Enums(hubspot)
// @Param        userId    query     string  true  "User identifier"
// @Param        orgId     query     string  true  "Organization identifier"
// @Success      200       {object}  domain.CredentialSummary
// @Failure      400       {object}  ErrorResponse  "Missing or invalid session identifiers"
// @Failure      404       {object}  ErrorResponse  "No credentials stored"
// @Router       /integrations/{provider}/credentials [get]
func (s *Server) handleGetCredentials(w http.ResponseWriter, r *http.Request) {
	provider, err := domain.ParseProviderType(r.PathValue("provider"))
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown provider: "+r.PathValue("provider"))
		return
	}

	userID := r.URL.Query().Get("userId")
	orgID := r.URL.Query().Get("orgId")
	if userID == "" || orgID == "" {
		writeError(w, http.StatusBadRequest, "userId and orgId query parameters are required")
		return
	}

	summary, err := s.integrationService.GetCredentialSummary(r.Context(), driving.CredentialSummaryRequest{
		Provider: provider,
		Session:  domain.Session{UserID: userID, OrgID: orgID},
	})
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// frontendRedirect builds the post-callback browser redirect target.
func (s *Server) frontendRedirect(provider domain.ProviderType, session domain.Session) (string, error) {
	target, err := url.Parse(s.frontendURL)
	if err != nil {
		return "", err
	}
	query := target.Query()
	query.Set("connected", string(provider))
	query.Set("userId", session.UserID)
	query.Set("orgId", session.OrgID)
	target.RawQuery = query.Encode()
	return target.String(), nil
}

// writeServiceError maps service errors onto HTTP statuses with a
// human-readable detail string. Unclassified errors stay opaque.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	var oauthErr *driving.OAuthError
	if errors.As(err, &oauthErr) {
		status := http.StatusBadRequest
		if oauthErr.Code == driving.ErrOAuthProviderNotFound.Code {
			status = http.StatusNotFound
		}
		writeError(w, status, oauthErr.Error())
		return
	}

	switch {
	case errors.Is(err, domain.ErrInvalidState),
		errors.Is(err, domain.ErrTokenExchange),
		errors.Is(err, domain.ErrNoCredentials),
		errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrProviderNotFound),
		errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, domain.ErrUpstreamTimeout):
		writeError(w, http.StatusGatewayTimeout, err.Error())
	case errors.Is(err, domain.ErrUpstream):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"detail": message})
}
