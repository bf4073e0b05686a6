package driven

import (
	"context"

	"github.com/bhataasim1/integrations-technical-assessment/internal/core/domain"
)

// ItemSource fetches and normalizes CRM objects using a valid access
// token. Implementations page through every configured object kind and
// preserve provider emission order; they never deduplicate or re-sort.
type ItemSource interface {
	// FetchAll returns all items reachable with the token.
	// Error contract: 401 from the provider surfaces as
	// domain.ErrUnauthorized without retry; 429 is retried with backoff
	// up to a bounded budget, then surfaces as domain.ErrRateLimited;
	// other provider failures surface as domain.ErrUpstream or
	// domain.ErrUpstreamTimeout.
	FetchAll(ctx context.Context, accessToken string) ([]domain.Item, error)
}
