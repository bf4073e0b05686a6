package hubspot

import (
	"context"
	"fmt"

	"github.com/bhataasim1/integrations-technical-assessment/internal/core/domain"
	"github.com/bhataasim1/integrations-technical-assessment/internal/core/ports/driven"
)

// Ensure ItemSource implements the interface.
var _ driven.ItemSource = (*ItemSource)(nil)

// requestProperties lists the CRM properties requested per object kind.
// These match the properties the normaliser mappings read.
var requestProperties = map[string][]string{
	"contacts":  {"firstname", "lastname"},
	"companies": {"name"},
}

// ItemSource fetches HubSpot CRM objects and normalizes them into items.
type ItemSource struct {
	client     *Client
	normaliser driven.ItemNormaliser
	maxPages   int
}

// NewItemSource creates a HubSpot item source.
func NewItemSource(cfg Config, normaliser driven.ItemNormaliser) *ItemSource {
	cfg = cfg.withDefaults()
	return &ItemSource{
		client:     NewClient(cfg),
		normaliser: normaliser,
		maxPages:   cfg.MaxPages,
	}
}

// FetchAll pages through every registered object kind in registration
// order and returns the normalized items in provider emission order.
// A failure on any page abandons the whole fetch.
func (s *ItemSource) FetchAll(ctx context.Context, accessToken string) ([]domain.Item, error) {
	var items []domain.Item

	for _, kind := range s.normaliser.Kinds(domain.ProviderTypeHubSpot) {
		after := ""
		for page := 0; page < s.maxPages; page++ {
			objects, err := s.client.ListObjects(ctx, accessToken, kind, requestProperties[kind], after)
			if err != nil {
				return nil, err
			}

			for _, record := range objects.Records {
				item, err := s.normaliser.Normalise(domain.ProviderTypeHubSpot, kind, record)
				if err != nil {
					return nil, fmt.Errorf("normalise %s %s: %w", kind, record.ID, err)
				}
				items = append(items, *item)
			}

			if objects.After == "" {
				break
			}
			after = objects.After
		}
	}

	return items, nil
}
