package docdrift

import (
	"context"
	"time"
)

// SectionType tags the role a section plays in an enriched document.
type SectionType string

// SectionType constants. The enricher assigns these based on section content.
const (
	SectionOverview  SectionType = "overview"
	SectionTechnical SectionType = "technical"
	SectionUsage     SectionType = "usage"
	SectionAPI       SectionType = "api"
	SectionOther     SectionType = "other"
)

// ReviewStatus represents the human review state of an enriched document.
type ReviewStatus string

// ReviewStatus constants for DocumentMetadata.
const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

// Section is a titled unit of document content. Sections are immutable once
// part of a document; replacing a section means constructing a new value.
// Titles act as the comparison key during drift detection, with the last
// occurrence winning when a document repeats a title.
type Section struct {
	Title    string            `json:"title"`
	Content  string            `json:"content"`
	Type     SectionType       `json:"type"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// DocumentContent holds the structured text of an enriched document.
type DocumentContent struct {
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	Purpose     string    `json:"purpose"`
	Sections    []Section `json:"sections"`
}

// DocumentMetadata holds structured attributes extracted alongside the
// document content.
type DocumentMetadata struct {
	ServiceName         string       `json:"serviceName,omitempty"`
	Version             string       `json:"version,omitempty"`
	Author              string       `json:"author,omitempty"`
	Dependencies        []string     `json:"dependencies,omitempty"`
	Tags                []string     `json:"tags,omitempty"`
	Category            string       `json:"category,omitempty"`
	BusinessUnit        string       `json:"businessUnit,omitempty"`
	EnrichmentTimestamp time.Time    `json:"enrichmentTimestamp"`
	Confidence          float64      `json:"confidence"`
	ReviewStatus        ReviewStatus `json:"reviewStatus"`
}

// EnrichedDocument is the LLM-transformed structured representation of a raw
// component description. The ID is assigned at storage time.
type EnrichedDocument struct {
	ID        string           `json:"id,omitempty"`
	Content   DocumentContent  `json:"content"`
	Metadata  DocumentMetadata `json:"metadata"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// Validate returns an error if the document contains invalid fields.
func (d *EnrichedDocument) Validate() error {
	if d.Content.Title == "" {
		return Errorf(EINVALID, "document title required")
	}
	if d.Content.Description == "" {
		return Errorf(EINVALID, "document description required")
	}
	return nil
}

// DocumentService represents a service for managing enriched documents.
type DocumentService interface {
	// CreateDocument creates a new document, assigning its ID.
	CreateDocument(ctx context.Context, doc *EnrichedDocument) error

	// FindDocumentByID retrieves a document by ID.
	// Returns ENOTFOUND if document does not exist.
	FindDocumentByID(ctx context.Context, id string) (*EnrichedDocument, error)

	// FindDocuments retrieves documents matching the filter.
	FindDocuments(ctx context.Context, filter DocumentFilter) ([]*EnrichedDocument, error)

	// UpdateDocument replaces the stored content and metadata of the
	// document with the given ID.
	// Returns ENOTFOUND if document does not exist.
	UpdateDocument(ctx context.Context, doc *EnrichedDocument) error

	// DeleteDocument permanently removes a document.
	// Returns ENOTFOUND if document does not exist.
	DeleteDocument(ctx context.Context, id string) error
}

// DocumentFilter represents a filter for FindDocuments.
type DocumentFilter struct {
	ID          *string `json:"id"`
	ServiceName *string `json:"serviceName"`
	TitleLike   *string `json:"titleLike"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
