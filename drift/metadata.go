package drift

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/fwojciec/docdrift"
)

// defaultMetadataFields is the fixed comparison order when the caller does
// not provide focus areas.
var defaultMetadataFields = []string{
	"serviceName",
	"version",
	"dependencies",
	"tags",
	"category",
	"businessUnit",
}

// fieldSignificance is a static importance table; fields not listed are low.
var fieldSignificance = map[string]docdrift.Significance{
	"serviceName":  docdrift.SignificanceHigh,
	"version":      docdrift.SignificanceHigh,
	"dependencies": docdrift.SignificanceMedium,
	"category":     docdrift.SignificanceMedium,
	"businessUnit": docdrift.SignificanceMedium,
}

// DiffMetadata compares a fixed set of metadata fields for equality and
// returns a modification change for each differing field. List fields are
// compared by their JSON serialization, so element order matters. An empty
// fields argument selects the default field set.
func DiffMetadata(existing, incoming docdrift.DocumentMetadata, fields []string) []docdrift.DriftChange {
	if len(fields) == 0 {
		fields = defaultMetadataFields
	}

	var changes []docdrift.DriftChange
	for _, field := range fields {
		oldValue := metadataValue(existing, field)
		newValue := metadataValue(incoming, field)
		if metadataEqual(oldValue, newValue) {
			continue
		}

		changes = append(changes, docdrift.DriftChange{
			Section:      "metadata." + field,
			Type:         docdrift.ChangeModification,
			OldValue:     formatMetadataValue(oldValue),
			NewValue:     formatMetadataValue(newValue),
			Significance: metadataSignificance(field),
		})
	}
	return changes
}

// metadataValue resolves a field name to its value. Unknown fields resolve
// to nil, which compares equal to itself and formats as "".
func metadataValue(m docdrift.DocumentMetadata, field string) any {
	switch field {
	case "serviceName":
		return m.ServiceName
	case "version":
		return m.Version
	case "author":
		return m.Author
	case "dependencies":
		return m.Dependencies
	case "tags":
		return m.Tags
	case "category":
		return m.Category
	case "businessUnit":
		return m.BusinessUnit
	default:
		return nil
	}
}

// metadataEqual deep-compares two field values by JSON serialization.
// Intentionally stricter than the text comparisons: list order matters.
func metadataEqual(a, b any) bool {
	aJSON, errA := json.Marshal(a)
	bJSON, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(aJSON, bJSON)
}

// formatMetadataValue renders a field value for a DriftChange: lists joined
// with ", ", scalars as-is, anything else JSON-stringified, nil as "".
func formatMetadataValue(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case []string:
		return strings.Join(value, ", ")
	default:
		encoded, err := json.Marshal(value)
		if err != nil {
			return ""
		}
		return string(encoded)
	}
}

func metadataSignificance(field string) docdrift.Significance {
	if significance, ok := fieldSignificance[field]; ok {
		return significance
	}
	return docdrift.SignificanceLow
}
