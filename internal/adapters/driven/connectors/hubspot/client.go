package hubspot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bhataasim1/integrations-technical-assessment/internal/core/domain"
	"github.com/bhataasim1/integrations-technical-assessment/internal/observability"
)

// maxErrorBody bounds how much of an upstream error body is kept.
const maxErrorBody = 512

// Client provides HubSpot CRM API operations. Tokens are passed per call
// because credentials belong to sessions, not to the client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	pageLimit  int
	maxRetries int
}

// NewClient creates a new HubSpot API client.
func NewClient(cfg Config) *Client {
	cfg = cfg.withDefaults()
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimSuffix(cfg.APIBaseURL, "/"),
		pageLimit:  cfg.PageLimit,
		maxRetries: cfg.MaxRetries,
	}
}

// ObjectPage is a single page of CRM objects.
type ObjectPage struct {
	// Records holds the objects in API order.
	Records []domain.Record

	// After is the cursor for the next page. Empty on the last page.
	After string
}

// apiObject mirrors one object in a CRM list response.
type apiObject struct {
	ID         string             `json:"id"`
	Properties map[string]*string `json:"properties"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}

// toRecord converts an API object to a domain record, dropping null
// properties.
func (o apiObject) toRecord() domain.Record {
	props := make(map[string]string, len(o.Properties))
	for name, value := range o.Properties {
		if value != nil {
			props[name] = *value
		}
	}
	return domain.Record{
		ID:         o.ID,
		Properties: props,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}

// ListObjects fetches one page of CRM objects of the given type.
//
// Error contract: 401 maps to domain.ErrUnauthorized without retry.
// 429 is retried up to MaxRetries honouring the Retry-After header,
// then maps to domain.ErrRateLimited. Other non-2xx responses map to
// domain.ErrUpstream; timeouts map to domain.ErrUpstreamTimeout.
func (c *Client) ListObjects(ctx context.Context, accessToken, objectType string, properties []string, after string) (*ObjectPage, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(c.pageLimit))
	if len(properties) > 0 {
		query.Set("properties", strings.Join(properties, ","))
	}
	if after != "" {
		query.Set("after", after)
	}
	endpoint := fmt.Sprintf("%s/crm/v3/objects/%s?%s", c.baseURL, objectType, query.Encode())

	for attempt := 0; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}

		req.Header.Set("Authorization", "Bearer "+accessToken)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if isTimeout(err) {
				return nil, fmt.Errorf("list %s: %w", objectType, domain.ErrUpstreamTimeout)
			}
			return nil, fmt.Errorf("list %s: %w", objectType, err)
		}
		observability.RecordProviderRequest(string(domain.ProviderTypeHubSpot), "list_"+objectType, resp.StatusCode)

		// Rate limited with retries left: wait and try again.
		if resp.StatusCode == http.StatusTooManyRequests && attempt < c.maxRetries {
			delay := retryDelay(resp, attempt)
			resp.Body.Close()
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
			continue
		}

		switch {
		case resp.StatusCode == http.StatusUnauthorized:
			resp.Body.Close()
			return nil, fmt.Errorf("list %s: %w", objectType, domain.ErrUnauthorized)

		case resp.StatusCode == http.StatusTooManyRequests:
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return nil, fmt.Errorf("list %s: %w", objectType, &domain.UpstreamError{
				Err:    domain.ErrRateLimited,
				Status: resp.StatusCode,
				Body:   excerpt(body),
			})

		case resp.StatusCode >= 400:
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return nil, fmt.Errorf("list %s: %w", objectType, &domain.UpstreamError{
				Err:    domain.ErrUpstream,
				Status: resp.StatusCode,
				Body:   excerpt(body),
			})
		}

		var page struct {
			Results []apiObject `json:"results"`
			Paging  *struct {
				Next *struct {
					After string `json:"after"`
				} `json:"next"`
			} `json:"paging"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
			resp.Body.Close()
			return nil, fmt.Errorf("decode %s page: %w", objectType, err)
		}
		resp.Body.Close()

		out := &ObjectPage{Records: make([]domain.Record, 0, len(page.Results))}
		for _, obj := range page.Results {
			out.Records = append(out.Records, obj.toRecord())
		}
		if page.Paging != nil && page.Paging.Next != nil {
			out.After = page.Paging.Next.After
		}

		return out, nil
	}
}

// retryDelay returns the wait before retrying a rate-limited request,
// honouring the Retry-After header when present.
func retryDelay(resp *http.Response, attempt int) time.Duration {
	if header := resp.Header.Get("Retry-After"); header != "" {
		if secs, err := strconv.Atoi(header); err == nil && secs >= 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return time.Duration(attempt+1) * time.Second
}

// isTimeout reports whether err is a request timeout or deadline expiry.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// excerpt bounds an upstream response body for use in error messages.
func excerpt(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorBody {
		s = s[:maxErrorBody]
	}
	return s
}
