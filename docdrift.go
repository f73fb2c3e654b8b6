// Package docdrift detects and resolves drift between LLM-enriched
// documentation documents. It ingests natural-language component
// descriptions, enriches them into structured documents, and decides
// whether a newly enriched document duplicates a previously stored one
// (requiring an update or merge) or is genuinely new.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, gemini/) or their concern
// (drift/, process/).
package docdrift
