package docdrift

// ChangeType classifies a single detected change.
type ChangeType string

// ChangeType constants for DriftChange.
const (
	ChangeAddition     ChangeType = "addition"
	ChangeDeletion     ChangeType = "deletion"
	ChangeModification ChangeType = "modification"
)

// Significance is the qualitative severity of a detected change.
type Significance string

// Significance constants for DriftChange.
const (
	SignificanceLow    Significance = "low"
	SignificanceMedium Significance = "medium"
	SignificanceHigh   Significance = "high"
)

// Recommendation is the analyzer's suggested next action for the workflow
// layer.
type Recommendation string

// Recommendation constants for DriftAnalysis.
const (
	RecommendCreateNew      Recommendation = "create-new"
	RecommendUpdateExisting Recommendation = "update-existing"
	RecommendManualReview   Recommendation = "manual-review"
	RecommendMergeRequired  Recommendation = "merge-required"
)

// DriftChange records a single difference between an existing document and
// an incoming one. Section is a dotted path such as "sections.Overview" or
// "metadata.version". For additions OldValue is empty; for deletions
// NewValue is empty; modifications carry both.
type DriftChange struct {
	Section      string       `json:"section"`
	Type         ChangeType   `json:"type"`
	OldValue     string       `json:"oldValue,omitempty"`
	NewValue     string       `json:"newValue,omitempty"`
	Significance Significance `json:"significance"`
}

// DriftAnalysis is the aggregate result of comparing two documents. It is
// derived, never persisted: identical inputs always produce an identical
// analysis.
type DriftAnalysis struct {
	HasChanges     bool           `json:"hasChanges"`
	Confidence     float64        `json:"confidence"`
	Changes        []DriftChange  `json:"changes"`
	Recommendation Recommendation `json:"recommendation"`
}

// AnalyzeOptions configures drift analysis.
type AnalyzeOptions struct {
	// Threshold is the minimum title similarity for a stored document to be
	// considered a match candidate by the workflow layer. Defaults to 0.7.
	// The analyzer itself does not consult it.
	Threshold float64 `json:"threshold,omitempty"`

	// IgnoreMinorChanges skips text modifications with similarity above
	// 0.95 and drops low-significance changes from the final list.
	IgnoreMinorChanges bool `json:"ignoreMinorChanges,omitempty"`

	// FocusAreas overrides the default metadata field list when provided.
	FocusAreas []string `json:"focusAreas,omitempty"`
}

// ModifiedSection pairs the existing and incoming versions of a section
// whose content changed, along with their content similarity.
type ModifiedSection struct {
	Title      string  `json:"title"`
	Existing   Section `json:"existing"`
	Incoming   Section `json:"incoming"`
	Similarity float64 `json:"similarity"`
}

// SectionDiff partitions the union of two section lists by title: every
// title appears in exactly one of the four buckets. Ordering follows the
// incoming document for Added and the existing document for the rest.
type SectionDiff struct {
	Added     []Section         `json:"added"`
	Removed   []Section         `json:"removed"`
	Modified  []ModifiedSection `json:"modified"`
	Unchanged []Section         `json:"unchanged"`
}

// ConflictResolution selects how the merge resolver combines two documents.
type ConflictResolution string

// ConflictResolution constants for MergeStrategy.
const (
	PreferNew      ConflictResolution = "prefer-new"
	PreferExisting ConflictResolution = "prefer-existing"
	MergeSections  ConflictResolution = "merge-sections"
)

// MergeStrategy configures the merge resolver. Only ConflictResolution
// drives current merge behavior; the remaining fields are carried for
// callers that select sections ahead of a merge.
type MergeStrategy struct {
	ConflictResolution ConflictResolution `json:"conflictResolution"`
	SectionsToUpdate   []string           `json:"sectionsToUpdate,omitempty"`
	PreserveMetadata   bool               `json:"preserveMetadata,omitempty"`
}
