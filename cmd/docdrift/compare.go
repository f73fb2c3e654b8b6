package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fwojciec/docdrift"
	"github.com/fwojciec/docdrift/drift"
)

// Run executes the compare command.
func (c *CompareCmd) Run(deps *Dependencies) error {
	existing, err := deps.Documents.FindDocumentByID(deps.Ctx, c.ExistingID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdrift.ErrorMessage(err))
		return err
	}
	incoming, err := deps.Documents.FindDocumentByID(deps.Ctx, c.IncomingID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdrift.ErrorMessage(err))
		return err
	}

	analysis := drift.Analyze(existing, incoming, docdrift.AnalyzeOptions{
		IgnoreMinorChanges: c.IgnoreMinor,
		FocusAreas:         c.Focus,
	})

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(analysis); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", docdrift.ErrorMessage(err))
			return err
		}
		return nil
	}

	if !analysis.HasChanges {
		fmt.Fprintln(deps.Stdout, "No changes detected.")
	}
	printAnalysis(deps.Stdout, analysis)
	return nil
}

// printAnalysis writes a human-readable drift summary.
func printAnalysis(w io.Writer, analysis *docdrift.DriftAnalysis) {
	for _, ch := range analysis.Changes {
		fmt.Fprintf(w, "  %-12s %-12s %s\n", ch.Type, ch.Significance, ch.Section)
	}
	fmt.Fprintf(w, "  confidence: %.2f  recommendation: %s\n", analysis.Confidence, analysis.Recommendation)
}
