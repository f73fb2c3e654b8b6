package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fwojciec/docdrift"
	"github.com/fwojciec/docdrift/process"
)

// Run executes the ingest command.
func (c *IngestCmd) Run(deps *Dependencies) error {
	descriptions, err := c.readDescriptions(deps.Stdin)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdrift.ErrorMessage(err))
		return err
	}
	if len(descriptions) == 0 {
		fmt.Fprintf(deps.Stderr, "error: no descriptions to ingest\n")
		return docdrift.Errorf(docdrift.EINVALID, "no descriptions to ingest")
	}

	results, err := deps.Processor.IngestAll(deps.Ctx, descriptions)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdrift.ErrorMessage(err))
		return err
	}

	for _, r := range results {
		switch r.Action {
		case process.ActionCreated:
			fmt.Fprintf(deps.Stdout, "created  %s  %s\n", r.Document.ID, r.Document.Content.Title)
		case process.ActionUpdated:
			fmt.Fprintf(deps.Stdout, "updated  %s  %s\n", r.Document.ID, r.Document.Content.Title)
		case process.ActionSkipped:
			fmt.Fprintf(deps.Stdout, "skipped  %s  %s (no changes)\n", r.Matched.ID, r.Matched.Content.Title)
		case process.ActionReview:
			fmt.Fprintf(deps.Stdout, "review   %s  %s\n", r.Matched.ID, r.Matched.Content.Title)
			printAnalysis(deps.Stdout, r.Analysis)
		}
	}

	return nil
}

// readDescriptions loads one description per file argument, or a single
// description from stdin when no files were given.
func (c *IngestCmd) readDescriptions(stdin io.Reader) ([]string, error) {
	if len(c.Files) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		text := strings.TrimSpace(string(data))
		if text == "" {
			return nil, nil
		}
		return []string{text}, nil
	}

	var descriptions []string
	for _, path := range c.Files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %q: %w", path, err)
		}
		if text := strings.TrimSpace(string(data)); text != "" {
			descriptions = append(descriptions, text)
		}
	}
	return descriptions, nil
}
