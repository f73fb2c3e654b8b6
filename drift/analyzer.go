package drift

import "github.com/fwojciec/docdrift"

// DefaultThreshold is the default candidate-match similarity floor carried
// in AnalyzeOptions for workflow callers.
const DefaultThreshold = 0.7

// Similarity boundaries for the shared text-change significance rule and
// the per-item minor-change skip.
const (
	highSignificanceBelow   = 0.5
	mediumSignificanceBelow = 0.8
	minorChangeAbove        = 0.95
)

// Analyze compares an existing document against an incoming one and returns
// a unified drift analysis: the ordered change list, an aggregate confidence
// score, and a recommendation for the workflow layer. It is a pure function
// of its inputs; the caller stamps any timestamps.
func Analyze(existing, incoming *docdrift.EnrichedDocument, opts docdrift.AnalyzeOptions) *docdrift.DriftAnalysis {
	var changes []docdrift.DriftChange

	// Title changes are never classified low.
	if existing.Content.Title != incoming.Content.Title {
		similarity := Similarity(existing.Content.Title, incoming.Content.Title)
		significance := docdrift.SignificanceMedium
		if similarity < highSignificanceBelow {
			significance = docdrift.SignificanceHigh
		}
		changes = append(changes, docdrift.DriftChange{
			Section:      "title",
			Type:         docdrift.ChangeModification,
			OldValue:     existing.Content.Title,
			NewValue:     incoming.Content.Title,
			Significance: significance,
		})
	}

	changes = appendTextChange(changes, "description",
		existing.Content.Description, incoming.Content.Description, opts.IgnoreMinorChanges)
	changes = appendTextChange(changes, "purpose",
		existing.Content.Purpose, incoming.Content.Purpose, opts.IgnoreMinorChanges)

	diff := DiffSections(existing.Content.Sections, incoming.Content.Sections)
	for _, section := range diff.Removed {
		changes = append(changes, docdrift.DriftChange{
			Section:      "sections." + section.Title,
			Type:         docdrift.ChangeDeletion,
			OldValue:     section.Content,
			Significance: docdrift.SignificanceMedium,
		})
	}
	for _, section := range diff.Added {
		changes = append(changes, docdrift.DriftChange{
			Section:      "sections." + section.Title,
			Type:         docdrift.ChangeAddition,
			NewValue:     section.Content,
			Significance: docdrift.SignificanceMedium,
		})
	}
	for _, modified := range diff.Modified {
		if opts.IgnoreMinorChanges && modified.Similarity > minorChangeAbove {
			continue
		}
		changes = append(changes, docdrift.DriftChange{
			Section:      "sections." + modified.Title,
			Type:         docdrift.ChangeModification,
			OldValue:     modified.Existing.Content,
			NewValue:     modified.Incoming.Content,
			Significance: classifyTextChange(modified.Similarity),
		})
	}

	changes = append(changes, DiffMetadata(existing.Metadata, incoming.Metadata, opts.FocusAreas)...)

	// Second, list-wide filter in addition to the per-item skip above.
	if opts.IgnoreMinorChanges {
		changes = dropLowSignificance(changes)
	}

	if len(changes) == 0 {
		return &docdrift.DriftAnalysis{
			HasChanges:     false,
			Confidence:     1.0,
			Changes:        []docdrift.DriftChange{},
			Recommendation: docdrift.RecommendCreateNew,
		}
	}

	confidence := confidenceScore(changes)

	return &docdrift.DriftAnalysis{
		HasChanges:     true,
		Confidence:     confidence,
		Changes:        changes,
		Recommendation: recommend(changes, confidence),
	}
}

// appendTextChange records a modification for a top-level text field,
// classified by the shared significance rule. Under ignoreMinor, near-equal
// text (similarity > 0.95) is skipped entirely.
func appendTextChange(changes []docdrift.DriftChange, section, oldText, newText string, ignoreMinor bool) []docdrift.DriftChange {
	if oldText == newText {
		return changes
	}

	similarity := Similarity(oldText, newText)
	if ignoreMinor && similarity > minorChangeAbove {
		return changes
	}

	return append(changes, docdrift.DriftChange{
		Section:      section,
		Type:         docdrift.ChangeModification,
		OldValue:     oldText,
		NewValue:     newText,
		Significance: classifyTextChange(similarity),
	})
}

// classifyTextChange is the canonical significance rule for text changes.
// Sections use it for modifications only; metadata has its own static table.
func classifyTextChange(similarity float64) docdrift.Significance {
	switch {
	case similarity < highSignificanceBelow:
		return docdrift.SignificanceHigh
	case similarity < mediumSignificanceBelow:
		return docdrift.SignificanceMedium
	default:
		return docdrift.SignificanceLow
	}
}

func dropLowSignificance(changes []docdrift.DriftChange) []docdrift.DriftChange {
	filtered := changes[:0]
	for _, change := range changes {
		if change.Significance != docdrift.SignificanceLow {
			filtered = append(filtered, change)
		}
	}
	return filtered
}

// confidenceScore starts at 0.8 and subtracts penalties for change volume
// (capped at 0.4) and for high and medium significance counts, clamped to
// [0.1, 1.0]. The no-change case short-circuits to 1.0 before this runs.
func confidenceScore(changes []docdrift.DriftChange) float64 {
	confidence := 0.8

	volume := float64(len(changes)) * 0.05
	if volume > 0.4 {
		volume = 0.4
	}
	confidence -= volume

	high, medium := countBySignificance(changes)
	confidence -= float64(high)*0.15 + float64(medium)*0.08

	if confidence < 0.1 {
		return 0.1
	}
	if confidence > 1.0 {
		return 1.0
	}
	return confidence
}

// recommend maps the change list and confidence to a next action, evaluated
// in precedence order.
func recommend(changes []docdrift.DriftChange, confidence float64) docdrift.Recommendation {
	high, _ := countBySignificance(changes)

	switch {
	case high > 2 || confidence < 0.5:
		return docdrift.RecommendManualReview
	case len(changes) <= 3 && high <= 1:
		return docdrift.RecommendUpdateExisting
	case len(changes) > 5:
		return docdrift.RecommendCreateNew
	default:
		return docdrift.RecommendMergeRequired
	}
}

func countBySignificance(changes []docdrift.DriftChange) (high, medium int) {
	for _, change := range changes {
		switch change.Significance {
		case docdrift.SignificanceHigh:
			high++
		case docdrift.SignificanceMedium:
			medium++
		}
	}
	return high, medium
}
