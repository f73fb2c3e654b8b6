package mock

import (
	"context"

	"github.com/fwojciec/docdrift"
)

var _ docdrift.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of docdrift.DocumentService.
type DocumentService struct {
	CreateDocumentFn   func(ctx context.Context, doc *docdrift.EnrichedDocument) error
	FindDocumentByIDFn func(ctx context.Context, id string) (*docdrift.EnrichedDocument, error)
	FindDocumentsFn    func(ctx context.Context, filter docdrift.DocumentFilter) ([]*docdrift.EnrichedDocument, error)
	UpdateDocumentFn   func(ctx context.Context, doc *docdrift.EnrichedDocument) error
	DeleteDocumentFn   func(ctx context.Context, id string) error
}

func (s *DocumentService) CreateDocument(ctx context.Context, doc *docdrift.EnrichedDocument) error {
	return s.CreateDocumentFn(ctx, doc)
}

func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*docdrift.EnrichedDocument, error) {
	return s.FindDocumentByIDFn(ctx, id)
}

func (s *DocumentService) FindDocuments(ctx context.Context, filter docdrift.DocumentFilter) ([]*docdrift.EnrichedDocument, error) {
	return s.FindDocumentsFn(ctx, filter)
}

func (s *DocumentService) UpdateDocument(ctx context.Context, doc *docdrift.EnrichedDocument) error {
	return s.UpdateDocumentFn(ctx, doc)
}

func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	return s.DeleteDocumentFn(ctx, id)
}
