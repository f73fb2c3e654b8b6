// Package drift implements drift detection and resolution between enriched
// documents: text similarity scoring, section and metadata diffing, change
// aggregation with confidence scoring and a recommendation, and merge
// resolution. Everything in this package is a pure function of its inputs,
// safe to call from concurrent workflow instances without coordination.
package drift

import "strings"

// Similarity returns the Jaccard similarity of the token sets of a and b,
// a symmetric value in [0,1]. Both strings are case-folded and split on
// whitespace runs; duplicate tokens collapse. Two strings with an empty
// token union (both empty, or whitespace only) are deemed identical and
// score 1.0.
func Similarity(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)

	intersection := 0
	for token := range setA {
		if _, ok := setB[token]; ok {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 1.0
	}

	return float64(intersection) / float64(union)
}

// tokenSet case-folds s and collects its whitespace-delimited tokens.
func tokenSet(s string) map[string]struct{} {
	tokens := strings.Fields(strings.ToLower(s))
	set := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		set[token] = struct{}{}
	}
	return set
}
