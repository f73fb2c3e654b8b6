package main

import (
	"fmt"

	"github.com/fwojciec/docdrift"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := docdrift.DocumentFilter{Limit: c.Limit}
	if c.Service != "" {
		filter.ServiceName = &c.Service
	}

	docs, err := deps.Documents.FindDocuments(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdrift.ErrorMessage(err))
		return err
	}

	if len(docs) == 0 {
		fmt.Fprintln(deps.Stdout, "No documents found. Use 'docdrift ingest' to create one.")
		return nil
	}

	for _, d := range docs {
		fmt.Fprintf(deps.Stdout, "%s  %-20s  %s\n", d.ID, d.Metadata.ServiceName, d.Content.Title)
	}

	return nil
}
