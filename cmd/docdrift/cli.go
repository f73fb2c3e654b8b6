package main

import (
	"context"
	"io"

	"github.com/fwojciec/docdrift"
	"github.com/fwojciec/docdrift/process"
	"github.com/fwojciec/docdrift/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	DB        *sqlite.DB
	Documents docdrift.DocumentService
	Enricher  docdrift.Enricher
	Processor *process.Processor
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log enrichment calls to stderr"`

	Ingest  IngestCmd  `cmd:"" help:"Enrich descriptions and reconcile them with stored documents"`
	Compare CompareCmd `cmd:"" help:"Analyze drift between two stored documents"`
	Merge   MergeCmd   `cmd:"" help:"Merge one stored document into another"`
	List    ListCmd    `cmd:"" help:"List stored documents"`
	Show    ShowCmd    `cmd:"" help:"Show a stored document"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a stored document"`
}

// IngestCmd is the "ingest" subcommand.
type IngestCmd struct {
	Files       []string `arg:"" optional:"" help:"Files with raw descriptions, one description per file (reads stdin when omitted)"`
	Threshold   float64  `short:"t" default:"0.7" help:"Minimum title similarity for matching an existing document"`
	IgnoreMinor bool     `help:"Suppress low-significance changes during analysis"`
	Focus       []string `short:"F" help:"Metadata fields to compare (repeatable)"`
	Strategy    string   `short:"s" default:"merge-sections" enum:"prefer-new,prefer-existing,merge-sections" help:"Conflict resolution strategy for updates"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent enrichment limit"`
}

// CompareCmd is the "compare" subcommand.
type CompareCmd struct {
	ExistingID  string   `arg:"" help:"ID of the existing document"`
	IncomingID  string   `arg:"" help:"ID of the incoming document"`
	IgnoreMinor bool     `help:"Suppress low-significance changes"`
	Focus       []string `short:"F" help:"Metadata fields to compare (repeatable)"`
	JSON        bool     `help:"Print the analysis as JSON"`
}

// MergeCmd is the "merge" subcommand.
type MergeCmd struct {
	ExistingID     string `arg:"" help:"ID of the document to merge into"`
	IncomingID     string `arg:"" help:"ID of the document to merge from"`
	Strategy       string `short:"s" default:"merge-sections" enum:"prefer-new,prefer-existing,merge-sections" help:"Conflict resolution strategy"`
	DryRun         bool   `help:"Print the merged document without saving"`
	DeleteIncoming bool   `help:"Delete the incoming document after a successful merge"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Service string `short:"S" help:"Filter by service name"`
	Limit   int    `short:"n" help:"Maximum number of documents to show"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID   string `arg:"" help:"Document ID"`
	JSON bool   `help:"Print the document as JSON"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Document ID"`
	Force bool   `help:"Confirm deletion"`
}
