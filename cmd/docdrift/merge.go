package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fwojciec/docdrift"
	"github.com/fwojciec/docdrift/drift"
)

// Run executes the merge command.
func (c *MergeCmd) Run(deps *Dependencies) error {
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

	merged := drift.Merge(existing, incoming, docdrift.MergeStrategy{
		ConflictResolution: docdrift.ConflictResolution(c.Strategy),
	}, time.Now().UTC())

	if c.DryRun {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(merged); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", docdrift.ErrorMessage(err))
			return err
		}
		return nil
	}

	if err := deps.Documents.UpdateDocument(deps.Ctx, merged); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdrift.ErrorMessage(err))
		return err
	}

	if c.DeleteIncoming {
		if err := deps.Documents.DeleteDocument(deps.Ctx, incoming.ID); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", docdrift.ErrorMessage(err))
			return err
		}
	}

	fmt.Fprintf(deps.Stdout, "Merged %s into %s (%s)\n", incoming.ID, merged.ID, c.Strategy)
	return nil
}
