package process_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/docdrift"
	"github.com/fwojciec/docdrift/mock"
	"github.com/fwojciec/docdrift/process"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStore backs a mock.DocumentService with an in-memory slice so
// processor tests can observe writes.
type memoryStore struct {
	mu   sync.Mutex
	docs []*docdrift.EnrichedDocument
	seq  int

	creates int
	updates int
}

func (s *memoryStore) service() *mock.DocumentService {
	return &mock.DocumentService{
		CreateDocumentFn: func(_ context.Context, doc *docdrift.EnrichedDocument) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.seq++
			doc.ID = fmt.Sprintf("doc-%d", s.seq)
			copied := *doc
			s.docs = append(s.docs, &copied)
			s.creates++
			return nil
		},
		FindDocumentByIDFn: func(_ context.Context, id string) (*docdrift.EnrichedDocument, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			for _, doc := range s.docs {
				if doc.ID == id {
					copied := *doc
					return &copied, nil
				}
			}
			return nil, docdrift.Errorf(docdrift.ENOTFOUND, "document not found")
		},
		FindDocumentsFn: func(_ context.Context, filter docdrift.DocumentFilter) ([]*docdrift.EnrichedDocument, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			var out []*docdrift.EnrichedDocument
			for _, doc := range s.docs {
				if filter.ServiceName != nil && doc.Metadata.ServiceName != *filter.ServiceName {
					continue
				}
				if filter.TitleLike != nil &&
					!strings.Contains(strings.ToLower(doc.Content.Title), strings.ToLower(*filter.TitleLike)) {
					continue
				}
				copied := *doc
				out = append(out, &copied)
			}
			return out, nil
		},
		UpdateDocumentFn: func(_ context.Context, doc *docdrift.EnrichedDocument) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, stored := range s.docs {
				if stored.ID == doc.ID {
					copied := *doc
					s.docs[i] = &copied
					s.updates++
					return nil
				}
			}
			return docdrift.Errorf(docdrift.ENOTFOUND, "document not found")
		},
		DeleteDocumentFn: func(_ context.Context, id string) error {
			return docdrift.Errorf(docdrift.ENOTFOUND, "document not found")
		},
	}
}

func enricherFor(docs map[string]*docdrift.EnrichedDocument) *mock.Enricher {
	return &mock.Enricher{
		EnrichFn: func(_ context.Context, description string) (*docdrift.EnrichedDocument, error) {
			doc, ok := docs[description]
			if !ok {
				return nil, docdrift.Errorf(docdrift.EINTERNAL, "unexpected description %q", description)
			}
			copied := *doc
			return &copied, nil
		},
	}
}

func authDocument() *docdrift.EnrichedDocument {
	return &docdrift.EnrichedDocument{
		Content: docdrift.DocumentContent{
			Title:       "Auth Service",
			Summary:     "Authentication for internal services.",
			Description: "Handles login, token issuance and session validation.",
			Purpose:     "Central authentication authority.",
			Sections: []docdrift.Section{
				{Title: "Overview", Content: "Issues and validates tokens.", Type: docdrift.SectionOverview},
			},
		},
		Metadata: docdrift.DocumentMetadata{
			ServiceName: "auth",
			Version:     "1.2.0",
		},
	}
}

func TestProcessor_Ingest(t *testing.T) {
	t.Parallel()

	fixedNow := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	t.Run("creates when store is empty", func(t *testing.T) {
		t.Parallel()

		store := &memoryStore{}
		p := &process.Processor{
			Enricher:  enricherFor(map[string]*docdrift.EnrichedDocument{"auth description": authDocument()}),
			Documents: store.service(),
			Now:       func() time.Time { return fixedNow },
		}

		result, err := p.Ingest(context.Background(), "auth description")
		require.NoError(t, err)

		assert.Equal(t, process.ActionCreated, result.Action)
		assert.Nil(t, result.Matched)
		assert.Nil(t, result.Analysis)
		assert.NotEmpty(t, result.Document.ID)
		assert.Equal(t, 1, store.creates)
	})

	t.Run("skips an identical re-ingest", func(t *testing.T) {
		t.Parallel()

		store := &memoryStore{}
		p := &process.Processor{
			Enricher:  enricherFor(map[string]*docdrift.EnrichedDocument{"auth description": authDocument()}),
			Documents: store.service(),
			Now:       func() time.Time { return fixedNow },
		}

		_, err := p.Ingest(context.Background(), "auth description")
		require.NoError(t, err)

		result, err := p.Ingest(context.Background(), "auth description")
		require.NoError(t, err)

		assert.Equal(t, process.ActionSkipped, result.Action)
		assert.False(t, result.Analysis.HasChanges)
		assert.Equal(t, 1, store.creates)
		assert.Equal(t, 0, store.updates)
	})

	t.Run("merges small drift into the stored document", func(t *testing.T) {
		t.Parallel()

		updated := authDocument()
		updated.Metadata.Category = "platform"

		store := &memoryStore{}
		p := &process.Processor{
			Enricher: enricherFor(map[string]*docdrift.EnrichedDocument{
				"auth description":    authDocument(),
				"updated description": updated,
			}),
			Documents: store.service(),
			Now:       func() time.Time { return fixedNow },
		}

		_, err := p.Ingest(context.Background(), "auth description")
		require.NoError(t, err)

		result, err := p.Ingest(context.Background(), "updated description")
		require.NoError(t, err)

		assert.Equal(t, process.ActionUpdated, result.Action)
		require.NotNil(t, result.Matched)
		assert.Equal(t, docdrift.RecommendUpdateExisting, result.Analysis.Recommendation)
		assert.Equal(t, 1, store.creates)
		assert.Equal(t, 1, store.updates)
		require.Len(t, store.docs, 1)
		assert.Equal(t, "platform", store.docs[0].Metadata.Category)
		assert.Equal(t, fixedNow, store.docs[0].UpdatedAt)
	})

	t.Run("flags heavy drift for review without writing", func(t *testing.T) {
		t.Parallel()

		rewritten := authDocument()
		rewritten.Content.Description = "completely unrelated replacement text"
		rewritten.Metadata.ServiceName = "authn"
		rewritten.Metadata.Version = "9.0.0"

		store := &memoryStore{}
		p := &process.Processor{
			Enricher: enricherFor(map[string]*docdrift.EnrichedDocument{
				"auth description":      authDocument(),
				"rewritten description": rewritten,
			}),
			Documents: store.service(),
			Now:       func() time.Time { return fixedNow },
		}

		_, err := p.Ingest(context.Background(), "auth description")
		require.NoError(t, err)

		result, err := p.Ingest(context.Background(), "rewritten description")
		require.NoError(t, err)

		assert.Equal(t, process.ActionReview, result.Action)
		assert.Equal(t, docdrift.RecommendManualReview, result.Analysis.Recommendation)
		assert.Equal(t, 1, store.creates)
		assert.Equal(t, 0, store.updates)
	})

	t.Run("unrelated titles do not match", func(t *testing.T) {
		t.Parallel()

		billing := authDocument()
		billing.Content.Title = "Billing Gateway"
		billing.Metadata.ServiceName = "billing"

		store := &memoryStore{}
		p := &process.Processor{
			Enricher: enricherFor(map[string]*docdrift.EnrichedDocument{
				"auth description":    authDocument(),
				"billing description": billing,
			}),
			Documents: store.service(),
			Now:       func() time.Time { return fixedNow },
		}

		_, err := p.Ingest(context.Background(), "auth description")
		require.NoError(t, err)

		result, err := p.Ingest(context.Background(), "billing description")
		require.NoError(t, err)

		assert.Equal(t, process.ActionCreated, result.Action)
		assert.Nil(t, result.Matched)
		assert.Equal(t, 2, store.creates)
	})

	t.Run("propagates enricher errors", func(t *testing.T) {
		t.Parallel()

		p := &process.Processor{
			Enricher: &mock.Enricher{
				EnrichFn: func(context.Context, string) (*docdrift.EnrichedDocument, error) {
					return nil, docdrift.Errorf(docdrift.EUNAVAILABLE, "model unavailable")
				},
			},
			Documents: (&memoryStore{}).service(),
		}

		_, err := p.Ingest(context.Background(), "anything")
		require.Error(t, err)
		assert.Equal(t, docdrift.EUNAVAILABLE, docdrift.ErrorCode(err))
	})
}

func TestProcessor_IngestAll(t *testing.T) {
	t.Parallel()

	auth := authDocument()
	billing := authDocument()
	billing.Content.Title = "Billing Gateway"
	billing.Metadata.ServiceName = "billing"
	search := authDocument()
	search.Content.Title = "Search Indexer"
	search.Metadata.ServiceName = "search"

	store := &memoryStore{}
	p := &process.Processor{
		Enricher: enricherFor(map[string]*docdrift.EnrichedDocument{
			"auth":    auth,
			"billing": billing,
			"search":  search,
		}),
		Documents:   store.service(),
		Concurrency: 2,
	}

	results, err := p.IngestAll(context.Background(), []string{"auth", "billing", "search"})
	require.NoError(t, err)

	require.Len(t, results, 3)
	for _, result := range results {
		assert.Equal(t, process.ActionCreated, result.Action)
	}
	assert.Equal(t, "Auth Service", results[0].Document.Content.Title)
	assert.Equal(t, "Billing Gateway", results[1].Document.Content.Title)
	assert.Equal(t, "Search Indexer", results[2].Document.Content.Title)
	assert.Equal(t, 3, store.creates)
}
