// Package slog provides logging decorators for docdrift services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docdrift"
)

// Ensure LoggingEnricher implements docdrift.Enricher.
var _ docdrift.Enricher = (*LoggingEnricher)(nil)

// LoggingEnricher wraps an Enricher with timing and outcome logging.
type LoggingEnricher struct {
	next   docdrift.Enricher
	logger *slog.Logger
}

// NewLoggingEnricher creates a new LoggingEnricher.
func NewLoggingEnricher(next docdrift.Enricher, logger *slog.Logger) *LoggingEnricher {
	return &LoggingEnricher{next: next, logger: logger}
}

// Enrich delegates to the wrapped enricher and logs the operation.
func (e *LoggingEnricher) Enrich(ctx context.Context, description string) (doc *docdrift.EnrichedDocument, err error) {
	defer func(begin time.Time) {
		title := ""
		confidence := 0.0
		if doc != nil {
			title = doc.Content.Title
			confidence = doc.Metadata.Confidence
		}
		e.logger.Info("enrichment",
			"input_len", len(description),
			"title", title,
			"confidence", confidence,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Enrich(ctx, description)
}
