// Package gemini implements document enrichment using Google Gemini.
package gemini

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/fwojciec/docdrift"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// Ensure Enricher implements docdrift.Enricher at compile time.
var _ docdrift.Enricher = (*Enricher)(nil)

// Enricher implements docdrift.Enricher using Google Gemini. Requests are
// rate-limited to stay inside free-tier quotas.
type Enricher struct {
	client  *genai.Client
	limiter *rate.Limiter
	now     func() time.Time
}

// NewEnricher creates a new Enricher.
func NewEnricher(client *genai.Client) *Enricher {
	return &Enricher{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(1), 2),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Enrich transforms a natural-language component description into a
// structured enriched document.
func (e *Enricher) Enrich(ctx context.Context, description string) (*docdrift.EnrichedDocument, error) {
	if strings.TrimSpace(description) == "" {
		return nil, docdrift.Errorf(docdrift.EINVALID, "description required")
	}

	if err := e.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	result, err := e.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildUserPrompt(description)}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, docdrift.Errorf(docdrift.EINTERNAL, "gemini returned nil result")
	}

	return ParseDocument(result.Text(), description, e.now()), nil
}

// BuildConfig returns the GenerateContentConfig for enrichment calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a technical writer producing structured documentation for software components. Respond with a single JSON object and nothing else.",
			}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
	}
}

// BuildUserPrompt builds the enrichment prompt for a component description.
func BuildUserPrompt(description string) string {
	var sb strings.Builder
	sb.WriteString("Transform the following component description into structured documentation.\n\n")
	sb.WriteString("<description>\n")
	sb.WriteString(description)
	sb.WriteString("\n</description>\n\n")
	sb.WriteString(`Respond with JSON in this shape:
{
  "title": "component name",
  "summary": "one-sentence summary",
  "description": "expanded description",
  "purpose": "what the component is for",
  "sections": [{"title": "...", "content": "...", "type": "overview|technical|usage|api|other"}],
  "metadata": {
    "serviceName": "...", "version": "...", "author": "...",
    "dependencies": ["..."], "tags": ["..."],
    "category": "...", "businessUnit": "...",
    "confidence": 0.0
  }
}
Omit metadata fields you cannot infer. Set confidence in [0,1] to how well the description supports the documentation.`)
	return sb.String()
}

// enrichmentResponse is the JSON contract expected from the model.
type enrichmentResponse struct {
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	Description string `json:"description"`
	Purpose     string `json:"purpose"`
	Sections    []struct {
		Title   string `json:"title"`
		Content string `json:"content"`
		Type    string `json:"type"`
	} `json:"sections"`
	Metadata struct {
		ServiceName  string   `json:"serviceName"`
		Version      string   `json:"version"`
		Author       string   `json:"author"`
		Dependencies []string `json:"dependencies"`
		Tags         []string `json:"tags"`
		Category     string   `json:"category"`
		BusinessUnit string   `json:"businessUnit"`
		Confidence   float64  `json:"confidence"`
	} `json:"metadata"`
}

// ParseDocument parses a model response into an enriched document. A
// response that is not valid JSON falls back to a minimal document built
// from the raw text, so downstream drift analysis still has something to
// work with.
func ParseDocument(text, description string, now time.Time) *docdrift.EnrichedDocument {
	var parsed enrichmentResponse
	if err := json.Unmarshal([]byte(trimCodeFence(text)), &parsed); err != nil || parsed.Title == "" {
		return fallbackDocument(text, description, now)
	}

	sections := make([]docdrift.Section, 0, len(parsed.Sections))
	for _, s := range parsed.Sections {
		sections = append(sections, docdrift.Section{
			Title:   s.Title,
			Content: s.Content,
			Type:    sectionType(s.Type),
		})
	}

	return &docdrift.EnrichedDocument{
		Content: docdrift.DocumentContent{
			Title:       parsed.Title,
			Summary:     parsed.Summary,
			Description: parsed.Description,
			Purpose:     parsed.Purpose,
			Sections:    sections,
		},
		Metadata: docdrift.DocumentMetadata{
			ServiceName:         parsed.Metadata.ServiceName,
			Version:             parsed.Metadata.Version,
			Author:              parsed.Metadata.Author,
			Dependencies:        parsed.Metadata.Dependencies,
			Tags:                parsed.Metadata.Tags,
			Category:            parsed.Metadata.Category,
			BusinessUnit:        parsed.Metadata.BusinessUnit,
			EnrichmentTimestamp: now,
			Confidence:          parsed.Metadata.Confidence,
			ReviewStatus:        docdrift.ReviewPending,
		},
	}
}

// fallbackDocument structures an unparseable response: the first line
// becomes the title, the rest the description. Confidence is marked low so
// drift decisions against it lean toward review.
func fallbackDocument(text, description string, now time.Time) *docdrift.EnrichedDocument {
	body := strings.TrimSpace(text)
	if body == "" {
		body = strings.TrimSpace(description)
	}

	title := body
	rest := ""
	if i := strings.IndexByte(body, '\n'); i >= 0 {
		title = strings.TrimSpace(body[:i])
		rest = strings.TrimSpace(body[i+1:])
	}
	if rest == "" {
		rest = body
	}

	return &docdrift.EnrichedDocument{
		Content: docdrift.DocumentContent{
			Title:       title,
			Summary:     title,
			Description: rest,
		},
		Metadata: docdrift.DocumentMetadata{
			EnrichmentTimestamp: now,
			Confidence:          0.1,
			ReviewStatus:        docdrift.ReviewPending,
		},
	}
}

// trimCodeFence strips a markdown code fence wrapper some models add even
// when asked for raw JSON.
func trimCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func sectionType(s string) docdrift.SectionType {
	switch docdrift.SectionType(s) {
	case docdrift.SectionOverview, docdrift.SectionTechnical, docdrift.SectionUsage, docdrift.SectionAPI:
		return docdrift.SectionType(s)
	default:
		return docdrift.SectionOther
	}
}
