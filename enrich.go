package docdrift

import "context"

// Enricher transforms a raw natural-language component description into a
// structured enriched document.
type Enricher interface {
	// Enrich produces an enriched document from a description.
	// Returns EINVALID if the description is empty.
	Enrich(ctx context.Context, description string) (*EnrichedDocument, error)
}
