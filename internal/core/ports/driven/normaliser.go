package driven

import (
	"github.com/bhataasim1/integrations-technical-assessment/internal/core/domain"
)

// ItemNormaliser maps raw provider records onto normalized items.
// Mappings are registered as data (property names, type, URL template),
// so supporting another provider or object kind is a new mapping entry,
// not new control flow.
type ItemNormaliser interface {
	// Normalise converts one raw record of the given object kind.
	// Returns domain.ErrNotFound if no mapping is registered for the
	// provider/kind pair.
	Normalise(provider domain.ProviderType, kind string, record domain.Record) (*domain.Item, error)

	// Kinds lists the object kinds registered for a provider, in
	// registration order.
	Kinds(provider domain.ProviderType) []string
}
