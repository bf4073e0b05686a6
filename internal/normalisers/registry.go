package normalisers

import (
	"fmt"
	"strings"
	"sync"

	"github.com/bhataasim1/integrations-technical-assessment/internal/core/domain"
	"github.com/bhataasim1/integrations-technical-assessment/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ItemNormaliser = (*Registry)(nil)

// Mapping describes how one provider object kind becomes an Item.
// Mappings are data: adding a provider or object kind is a new entry,
// not new control flow.
type Mapping struct {
	// Type is the item type the kind maps to.
	Type domain.ItemType

	// NameProperties are joined with single spaces to form the item
	// name. Missing properties contribute nothing.
	NameProperties []string

	// NameFallback is used when the joined name comes out empty.
	NameFallback string

	// URLTemplate builds the "view in provider" link from the record ID
	// (fmt verb %s). Empty means the item carries no URL.
	URLTemplate string
}

// Registry implements ItemNormaliser with a mapping table keyed by
// provider and object kind.
type Registry struct {
	mu       sync.RWMutex
	mappings map[string]Mapping
	kinds    map[domain.ProviderType][]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		mappings: make(map[string]Mapping),
		kinds:    make(map[domain.ProviderType][]string),
	}
}

// Register adds a mapping for a provider object kind.
// Registration order is preserved by Kinds and drives fetch order.
func (r *Registry) Register(provider domain.ProviderType, kind string, mapping Mapping) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := mappingKey(provider, kind)
	if _, exists := r.mappings[key]; !exists {
		r.kinds[provider] = append(r.kinds[provider], kind)
	}
	r.mappings[key] = mapping
}

// Normalise converts one raw record using the registered mapping.
func (r *Registry) Normalise(provider domain.ProviderType, kind string, record domain.Record) (*domain.Item, error) {
	r.mu.RLock()
	mapping, ok := r.mappings[mappingKey(provider, kind)]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("no mapping for %s/%s: %w", provider, kind, domain.ErrNotFound)
	}

	parts := make([]string, 0, len(mapping.NameProperties))
	for _, prop := range mapping.NameProperties {
		parts = append(parts, record.Property(prop))
	}
	name := strings.TrimSpace(strings.Join(parts, " "))
	if name == "" {
		name = mapping.NameFallback
	}

	item := &domain.Item{
		ID:               record.ID,
		Name:             name,
		Type:             mapping.Type,
		CreationTime:     record.CreatedAt,
		LastModifiedTime: record.UpdatedAt,
	}
	if mapping.URLTemplate != "" {
		item.URL = fmt.Sprintf(mapping.URLTemplate, record.ID)
	}

	return item, nil
}

// Kinds lists the object kinds registered for a provider, in
// registration order.
func (r *Registry) Kinds(provider domain.ProviderType) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]string, len(r.kinds[provider]))
	copy(kinds, r.kinds[provider])
	return kinds
}

func mappingKey(provider domain.ProviderType, kind string) string {
	return string(provider) + "/" + kind
}

// DefaultRegistry creates a registry with the HubSpot mappings
// pre-registered. Contacts are fetched before companies.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register(domain.ProviderTypeHubSpot, "contacts", Mapping{
		Type:           domain.ItemTypeContact,
		NameProperties: []string{"firstname", "lastname"},
		URLTemplate:    "https://app.hubspot.com/contacts/%s",
	})
	r.Register(domain.ProviderTypeHubSpot, "companies", Mapping{
		Type:           domain.ItemTypeCompany,
		NameProperties: []string{"name"},
		NameFallback:   "Unnamed Company",
		URLTemplate:    "https://app.hubspot.com/companies/%s",
	})

	return r
}
