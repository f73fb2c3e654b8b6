package process

import (
	"strings"
	"unicode"
)

// stopWords are excluded from search-query keywords. This filtering applies
// only to query construction; the drift similarity scorer compares raw
// token sets.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {},
	"be": {}, "by": {}, "for": {}, "from": {}, "has": {}, "have": {},
	"in": {}, "is": {}, "it": {}, "its": {}, "of": {}, "on": {},
	"or": {}, "that": {}, "the": {}, "this": {}, "to": {}, "was": {},
	"were": {}, "which": {}, "will": {}, "with": {},
}

// Keywords extracts up to max search keywords from text: case-folded,
// stripped of surrounding punctuation, stop words removed, duplicates
// dropped, original order preserved. A max of 0 means no limit.
func Keywords(text string, max int) []string {
	var keywords []string
	seen := map[string]struct{}{}

	for _, field := range strings.Fields(strings.ToLower(text)) {
		token := strings.TrimFunc(field, isPunct)
		if token == "" {
			continue
		}
		if _, stop := stopWords[token]; stop {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		keywords = append(keywords, token)
		if max > 0 && len(keywords) == max {
			break
		}
	}

	return keywords
}

func isPunct(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
