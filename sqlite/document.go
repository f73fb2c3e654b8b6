package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docdrift"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ docdrift.DocumentService = (*DocumentService)(nil)

// DocumentService implements docdrift.DocumentService using SQLite.
type DocumentService struct {
	db *DB
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(db *DB) *DocumentService {
	return &DocumentService{db: db}
}

// hashContent computes xxHash over the document's text fields and returns a
// hex string, giving callers a cheap byte-equality check across stores.
func hashContent(content docdrift.DocumentContent) string {
	var sb strings.Builder
	sb.WriteString(content.Title)
	sb.WriteByte(0)
	sb.WriteString(content.Summary)
	sb.WriteByte(0)
	sb.WriteString(content.Description)
	sb.WriteByte(0)
	sb.WriteString(content.Purpose)
	for _, section := range content.Sections {
		sb.WriteByte(0)
		sb.WriteString(section.Title)
		sb.WriteByte(0)
		sb.WriteString(section.Content)
	}

	h := xxhash.Sum64String(sb.String())
	b := make([]byte, 8)
	for i := range b {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b)
}

// CreateDocument creates a new document, assigning its ID and timestamps.
func (s *DocumentService) CreateDocument(ctx context.Context, doc *docdrift.EnrichedDocument) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	doc.ID = uuid.New().String()
	doc.CreatedAt = time.Now().UTC()
	doc.UpdatedAt = doc.CreatedAt

	sections, metadata, err := marshalDocument(doc)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (id, title, summary, description, purpose, sections, metadata, service_name, content_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.Content.Title, doc.Content.Summary, doc.Content.Description, doc.Content.Purpose,
		sections, metadata, doc.Metadata.ServiceName, hashContent(doc.Content),
		doc.CreatedAt.Format(time.RFC3339), doc.UpdatedAt.Format(time.RFC3339))

	return err
}

// FindDocumentByID retrieves a document by ID.
func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*docdrift.EnrichedDocument, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, summary, description, purpose, sections, metadata, created_at, updated_at
		FROM documents
		WHERE id = ?
	`, id)

	doc, err := scanDocument(row.Scan)
	if err == sql.ErrNoRows {
		return nil, docdrift.Errorf(docdrift.ENOTFOUND, "document not found")
	}
	return doc, err
}

// FindDocuments retrieves documents matching the filter, most recently
// updated first.
func (s *DocumentService) FindDocuments(ctx context.Context, filter docdrift.DocumentFilter) ([]*docdrift.EnrichedDocument, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, title, summary, description, purpose, sections, metadata, created_at, updated_at FROM documents WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.ServiceName != nil {
		query.WriteString(" AND service_name = ?")
		args = append(args, *filter.ServiceName)
	}
	if filter.TitleLike != nil {
		query.WriteString(" AND title LIKE ? ESCAPE '\\'")
		args = append(args, "%"+escapeLike(*filter.TitleLike)+"%")
	}

	query.WriteString(" ORDER BY updated_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*docdrift.EnrichedDocument
	for rows.Next() {
		doc, err := scanDocument(rows.Scan)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// UpdateDocument replaces the stored content and metadata for doc.ID.
func (s *DocumentService) UpdateDocument(ctx context.Context, doc *docdrift.EnrichedDocument) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	if doc.ID == "" {
		return docdrift.Errorf(docdrift.EINVALID, "document ID required")
	}

	doc.UpdatedAt = time.Now().UTC()

	sections, metadata, err := marshalDocument(doc)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE documents
		SET title = ?, summary = ?, description = ?, purpose = ?, sections = ?, metadata = ?, service_name = ?, content_hash = ?, updated_at = ?
		WHERE id = ?
	`, doc.Content.Title, doc.Content.Summary, doc.Content.Description, doc.Content.Purpose,
		sections, metadata, doc.Metadata.ServiceName, hashContent(doc.Content),
		doc.UpdatedAt.Format(time.RFC3339), doc.ID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return docdrift.Errorf(docdrift.ENOTFOUND, "document not found")
	}
	return nil
}

// DeleteDocument permanently removes a document.
func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return docdrift.Errorf(docdrift.ENOTFOUND, "document not found")
	}
	return nil
}

// marshalDocument serializes the JSON columns.
func marshalDocument(doc *docdrift.EnrichedDocument) (sections, metadata string, err error) {
	sectionList := doc.Content.Sections
	if sectionList == nil {
		sectionList = []docdrift.Section{}
	}

	sectionsJSON, err := json.Marshal(sectionList)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal sections: %w", err)
	}
	metadataJSON, err := json.Marshal(doc.Metadata)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal metadata: %w", err)
	}
	return string(sectionsJSON), string(metadataJSON), nil
}

// scanDocument builds a document from a row scan function.
func scanDocument(scan func(dest ...any) error) (*docdrift.EnrichedDocument, error) {
	var doc docdrift.EnrichedDocument
	var sections, metadata, createdAt, updatedAt string

	if err := scan(&doc.ID, &doc.Content.Title, &doc.Content.Summary, &doc.Content.Description,
		&doc.Content.Purpose, &sections, &metadata, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(sections), &doc.Content.Sections); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sections: %w", err)
	}
	if err := json.Unmarshal([]byte(metadata), &doc.Metadata); err != nil {
		return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
	}

	var err error
	if doc.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if doc.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &doc, nil
}

// escapeLike escapes LIKE wildcards in user-supplied search terms.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
