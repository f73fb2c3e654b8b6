package mock

import (
	"context"

	"github.com/fwojciec/docdrift"
)

var _ docdrift.Enricher = (*Enricher)(nil)

// Enricher is a mock implementation of docdrift.Enricher.
type Enricher struct {
	EnrichFn func(ctx context.Context, description string) (*docdrift.EnrichedDocument, error)
}

func (e *Enricher) Enrich(ctx context.Context, description string) (*docdrift.EnrichedDocument, error) {
	return e.EnrichFn(ctx, description)
}
