// Package process orchestrates the document ingestion workflow: it enriches
// raw descriptions, looks up the best-matching stored document, runs drift
// analysis, and performs the storage action the analysis recommends.
package process

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fwojciec/docdrift"
	"github.com/fwojciec/docdrift/bloom"
	"github.com/fwojciec/docdrift/drift"
	"golang.org/x/sync/errgroup"
)

// maxQueryKeywords bounds the search query built from a document title.
const maxQueryKeywords = 8

// Action describes what the processor did with an ingested description.
type Action string

// Action constants for Result.
const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionReview  Action = "review"
	ActionSkipped Action = "skipped"
)

// Result holds the outcome of ingesting one description.
type Result struct {
	// Document is the document that ended up in storage, or the enriched
	// document awaiting review when Action is ActionReview.
	Document *docdrift.EnrichedDocument

	// Matched is the stored document the analysis compared against.
	// Nil when no candidate cleared the match threshold.
	Matched *docdrift.EnrichedDocument

	// Analysis is nil when there was no candidate to compare against.
	Analysis *docdrift.DriftAnalysis

	Action Action
}

// Processor runs the ingestion workflow. The drift analysis itself is a
// pure function; the processor owns the impure edges around it.
type Processor struct {
	Enricher  docdrift.Enricher
	Documents docdrift.DocumentService

	// Options configures drift analysis. A zero Threshold means
	// drift.DefaultThreshold.
	Options docdrift.AnalyzeOptions

	// Strategy drives merges for update-existing and merge-required
	// recommendations. Zero value selects merge-sections.
	Strategy docdrift.MergeStrategy

	// Concurrency bounds IngestAll workers. Defaults to 4.
	Concurrency int

	// Now returns the current time. Defaults to time.Now in UTC.
	Now func() time.Time

	mu     sync.Mutex
	filter *bloom.TokenFilter
}

// Ingest enriches a description and reconciles it against stored documents.
// Concurrent ingests of near-duplicate descriptions may race the candidate
// lookup and both create documents; the next ingest for the same subject
// reconciles against whichever won.
func (p *Processor) Ingest(ctx context.Context, description string) (*Result, error) {
	enriched, err := p.Enricher.Enrich(ctx, description)
	if err != nil {
		return nil, fmt.Errorf("enrich: %w", err)
	}

	candidate, err := p.findCandidate(ctx, enriched)
	if err != nil {
		return nil, fmt.Errorf("find candidate: %w", err)
	}

	if candidate == nil {
		if err := p.Documents.CreateDocument(ctx, enriched); err != nil {
			return nil, fmt.Errorf("create document: %w", err)
		}
		p.recordTitle(enriched.Content.Title)
		return &Result{Document: enriched, Action: ActionCreated}, nil
	}

	analysis := drift.Analyze(candidate, enriched, p.Options)

	// An identical match needs no write; re-ingesting the same description
	// must not pile up duplicates.
	if !analysis.HasChanges {
		return &Result{Document: candidate, Matched: candidate, Analysis: analysis, Action: ActionSkipped}, nil
	}

	switch analysis.Recommendation {
	case docdrift.RecommendCreateNew:
		if err := p.Documents.CreateDocument(ctx, enriched); err != nil {
			return nil, fmt.Errorf("create document: %w", err)
		}
		p.recordTitle(enriched.Content.Title)
		return &Result{Document: enriched, Matched: candidate, Analysis: analysis, Action: ActionCreated}, nil

	case docdrift.RecommendManualReview:
		return &Result{Document: enriched, Matched: candidate, Analysis: analysis, Action: ActionReview}, nil

	default: // update-existing, merge-required
		merged := drift.Merge(candidate, enriched, p.Strategy, p.now())
		if err := p.Documents.UpdateDocument(ctx, merged); err != nil {
			return nil, fmt.Errorf("update document: %w", err)
		}
		p.recordTitle(merged.Content.Title)
		return &Result{Document: merged, Matched: candidate, Analysis: analysis, Action: ActionUpdated}, nil
	}
}

// IngestAll ingests descriptions concurrently and returns results in input
// order. The first error cancels the remaining work.
func (p *Processor) IngestAll(ctx context.Context, descriptions []string) ([]*Result, error) {
	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	results := make([]*Result, len(descriptions))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, description := range descriptions {
		g.Go(func() error {
			result, err := p.Ingest(gctx, description)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// findCandidate returns the stored document whose title is most similar to
// the enriched document's title, or nil when no title clears the threshold.
// A Bloom filter over stored title tokens short-circuits the scan for
// titles that cannot match anything.
func (p *Processor) findCandidate(ctx context.Context, enriched *docdrift.EnrichedDocument) (*docdrift.EnrichedDocument, error) {
	keywords := Keywords(enriched.Content.Title, maxQueryKeywords)
	if len(keywords) == 0 {
		return nil, nil
	}

	if err := p.ensureFilter(ctx); err != nil {
		return nil, err
	}

	p.mu.Lock()
	miss := !p.filter.TestAny(keywords)
	p.mu.Unlock()
	if miss {
		return nil, nil
	}

	candidates, err := p.searchCandidates(ctx, enriched, keywords)
	if err != nil {
		return nil, err
	}

	threshold := p.Options.Threshold
	if threshold == 0 {
		threshold = drift.DefaultThreshold
	}

	var best *docdrift.EnrichedDocument
	bestScore := threshold
	for _, candidate := range candidates {
		score := drift.Similarity(candidate.Content.Title, enriched.Content.Title)
		if score >= bestScore {
			best = candidate
			bestScore = score
		}
	}
	return best, nil
}

// searchCandidates gathers stored documents matching the service name or
// any title keyword, deduplicated by ID in retrieval order.
func (p *Processor) searchCandidates(ctx context.Context, enriched *docdrift.EnrichedDocument, keywords []string) ([]*docdrift.EnrichedDocument, error) {
	var candidates []*docdrift.EnrichedDocument
	seen := map[string]struct{}{}

	appendDocs := func(docs []*docdrift.EnrichedDocument) {
		for _, doc := range docs {
			if _, dup := seen[doc.ID]; dup {
				continue
			}
			seen[doc.ID] = struct{}{}
			candidates = append(candidates, doc)
		}
	}

	if serviceName := enriched.Metadata.ServiceName; serviceName != "" {
		docs, err := p.Documents.FindDocuments(ctx, docdrift.DocumentFilter{ServiceName: &serviceName})
		if err != nil {
			return nil, err
		}
		appendDocs(docs)
	}

	for _, keyword := range keywords {
		docs, err := p.Documents.FindDocuments(ctx, docdrift.DocumentFilter{TitleLike: &keyword})
		if err != nil {
			return nil, err
		}
		appendDocs(docs)
	}

	return candidates, nil
}

// ensureFilter lazily builds the title-token filter from stored documents.
// Tokens are only ever added; deletions leave stale tokens behind, which
// costs a wasted scan, not a wrong answer.
func (p *Processor) ensureFilter(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.filter != nil {
		return nil
	}

	docs, err := p.Documents.FindDocuments(ctx, docdrift.DocumentFilter{})
	if err != nil {
		return err
	}

	filter := bloom.NewTokenFilter(10000, 0.01)
	for _, doc := range docs {
		for _, token := range Keywords(doc.Content.Title, 0) {
			filter.Add(token)
		}
	}
	p.filter = filter
	return nil
}

func (p *Processor) recordTitle(title string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.filter == nil {
		return
	}
	for _, token := range Keywords(title, 0) {
		p.filter.Add(token)
	}
}

func (p *Processor) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now().UTC()
}
