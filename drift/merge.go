package drift

import (
	"time"

	"github.com/fwojciec/docdrift"
)

// Merge combines an existing document with an incoming one according to the
// strategy's conflict resolution and returns the merged document. The
// existing document's ID and CreatedAt always survive; UpdatedAt is set to
// now, which the caller supplies so the resolver itself stays deterministic.
//
// The merge-sections path is intentionally lossy: sections removed in the
// incoming document are dropped, and incoming content wins conflicts.
// Callers needing a human decision should route through the analyzer's
// manual-review recommendation before merging.
func Merge(existing, incoming *docdrift.EnrichedDocument, strategy docdrift.MergeStrategy, now time.Time) *docdrift.EnrichedDocument {
	switch strategy.ConflictResolution {
	case docdrift.PreferNew:
		merged := *incoming
		merged.ID = existing.ID
		merged.CreatedAt = existing.CreatedAt
		merged.UpdatedAt = now
		return &merged

	case docdrift.PreferExisting:
		merged := *existing
		merged.UpdatedAt = now
		return &merged

	default: // merge-sections
		return mergeSections(existing, incoming, now)
	}
}

// mergeSections builds the merged section list as unchanged + modified
// (incoming content wins) + added, in that order. Top-level content fields
// come from incoming; metadata is a shallow merge where incoming fields win
// when set.
func mergeSections(existing, incoming *docdrift.EnrichedDocument, now time.Time) *docdrift.EnrichedDocument {
	diff := DiffSections(existing.Content.Sections, incoming.Content.Sections)

	sections := make([]docdrift.Section, 0, len(diff.Unchanged)+len(diff.Modified)+len(diff.Added))
	sections = append(sections, diff.Unchanged...)
	for _, modified := range diff.Modified {
		sections = append(sections, modified.Incoming)
	}
	sections = append(sections, diff.Added...)

	metadata := mergeMetadata(existing.Metadata, incoming.Metadata)
	metadata.EnrichmentTimestamp = now

	return &docdrift.EnrichedDocument{
		ID: existing.ID,
		Content: docdrift.DocumentContent{
			Title:       incoming.Content.Title,
			Summary:     incoming.Content.Summary,
			Description: incoming.Content.Description,
			Purpose:     incoming.Content.Purpose,
			Sections:    sections,
		},
		Metadata:  metadata,
		CreatedAt: existing.CreatedAt,
		UpdatedAt: now,
	}
}

// mergeMetadata shallow-merges metadata: incoming fields overwrite existing
// ones when the incoming document defines them.
func mergeMetadata(existing, incoming docdrift.DocumentMetadata) docdrift.DocumentMetadata {
	merged := existing

	if incoming.ServiceName != "" {
		merged.ServiceName = incoming.ServiceName
	}
	if incoming.Version != "" {
		merged.Version = incoming.Version
	}
	if incoming.Author != "" {
		merged.Author = incoming.Author
	}
	if incoming.Dependencies != nil {
		merged.Dependencies = incoming.Dependencies
	}
	if incoming.Tags != nil {
		merged.Tags = incoming.Tags
	}
	if incoming.Category != "" {
		merged.Category = incoming.Category
	}
	if incoming.BusinessUnit != "" {
		merged.BusinessUnit = incoming.BusinessUnit
	}
	if incoming.Confidence != 0 {
		merged.Confidence = incoming.Confidence
	}
	if incoming.ReviewStatus != "" {
		merged.ReviewStatus = incoming.ReviewStatus
	}

	return merged
}
