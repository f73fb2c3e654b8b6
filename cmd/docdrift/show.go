package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/docdrift"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	doc, err := deps.Documents.FindDocumentByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdrift.ErrorMessage(err))
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", docdrift.ErrorMessage(err))
			return err
		}
		return nil
	}

	fmt.Fprintf(deps.Stdout, "# %s\n\n", doc.Content.Title)
	if doc.Content.Summary != "" {
		fmt.Fprintf(deps.Stdout, "%s\n\n", doc.Content.Summary)
	}
	fmt.Fprintf(deps.Stdout, "service: %s", doc.Metadata.ServiceName)
	if doc.Metadata.Version != "" {
		fmt.Fprintf(deps.Stdout, "  version: %s", doc.Metadata.Version)
	}
	fmt.Fprintf(deps.Stdout, "  status: %s  confidence: %.2f\n", doc.Metadata.ReviewStatus, doc.Metadata.Confidence)
	if len(doc.Metadata.Tags) > 0 {
		fmt.Fprintf(deps.Stdout, "tags: %s\n", strings.Join(doc.Metadata.Tags, ", "))
	}
	fmt.Fprintln(deps.Stdout)

	for _, s := range doc.Content.Sections {
		fmt.Fprintf(deps.Stdout, "## %s\n\n%s\n\n", s.Title, s.Content)
	}

	return nil
}
