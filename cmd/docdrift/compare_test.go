package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/fwojciec/docdrift"
	main "github.com/fwojciec/docdrift/cmd/docdrift"
	"github.com/fwojciec/docdrift/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func documentStore(docs ...*docdrift.EnrichedDocument) *mock.DocumentService {
	byID := map[string]*docdrift.EnrichedDocument{}
	for _, doc := range docs {
		byID[doc.ID] = doc
	}
	return &mock.DocumentService{
		FindDocumentByIDFn: func(_ context.Context, id string) (*docdrift.EnrichedDocument, error) {
			doc, ok := byID[id]
			if !ok {
				return nil, docdrift.Errorf(docdrift.ENOTFOUND, "document not found")
			}
			return doc, nil
		},
	}
}

func TestCompareCmd_Run(t *testing.T) {
	t.Parallel()

	existing := &docdrift.EnrichedDocument{
		ID: "doc-1",
		Content: docdrift.DocumentContent{
			Title:       "Auth Service API",
			Description: "Handles user authentication and token issuance.",
		},
	}

	t.Run("reports no changes for identical documents", func(t *testing.T) {
		t.Parallel()

		incoming := &docdrift.EnrichedDocument{ID: "doc-2", Content: existing.Content}

		stdout := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Documents: documentStore(existing, incoming),
		}

		cmd := &main.CompareCmd{ExistingID: "doc-1", IncomingID: "doc-2"}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No changes detected.")
		assert.Contains(t, stdout.String(), "confidence: 1.00")
	})

	t.Run("lists changes with significance and recommendation", func(t *testing.T) {
		t.Parallel()

		incoming := &docdrift.EnrichedDocument{
			ID: "doc-2",
			Content: docdrift.DocumentContent{
				Title:       "Authentication Service API",
				Description: "Handles user authentication and token issuance.",
			},
		}

		stdout := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Documents: documentStore(existing, incoming),
		}

		cmd := &main.CompareCmd{ExistingID: "doc-1", IncomingID: "doc-2"}

		err := cmd.Run(deps)

		require.NoError(t, err)

		output := stdout.String()
		assert.Contains(t, output, "modification")
		assert.Contains(t, output, "title")
		assert.Contains(t, output, "recommendation: update-existing")
	})

	t.Run("prints analysis as JSON", func(t *testing.T) {
		t.Parallel()

		incoming := &docdrift.EnrichedDocument{
			ID: "doc-2",
			Content: docdrift.DocumentContent{
				Title:       "Authentication Service API",
				Description: "Handles user authentication and token issuance.",
			},
		}

		stdout := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Documents: documentStore(existing, incoming),
		}

		cmd := &main.CompareCmd{ExistingID: "doc-1", IncomingID: "doc-2", JSON: true}

		err := cmd.Run(deps)

		require.NoError(t, err)

		var analysis docdrift.DriftAnalysis
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &analysis))
		assert.True(t, analysis.HasChanges)
		require.Len(t, analysis.Changes, 1)
		assert.Equal(t, "title", analysis.Changes[0].Section)
	})

	t.Run("returns error when a document is missing", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    &bytes.Buffer{},
			Stderr:    stderr,
			Documents: documentStore(existing),
		}

		cmd := &main.CompareCmd{ExistingID: "doc-1", IncomingID: "missing"}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, docdrift.ENOTFOUND, docdrift.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error:")
	})
}
