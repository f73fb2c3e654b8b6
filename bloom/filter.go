// Package bloom provides a probabilistic prefilter over document title
// tokens, used to skip candidate scans for descriptions that cannot match
// any stored document.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// TokenFilter wraps a Bloom filter keyed by title tokens.
type TokenFilter struct {
	f *bloom.BloomFilter
}

// NewTokenFilter creates a filter sized for n expected tokens with the
// given false positive rate.
func NewTokenFilter(n uint, fpRate float64) *TokenFilter {
	return &TokenFilter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records a token in the filter.
func (f *TokenFilter) Add(token string) {
	f.f.AddString(token)
}

// TestAny returns true if any of the tokens might be in the filter.
// False positives are possible; false negatives are not.
func (f *TokenFilter) TestAny(tokens []string) bool {
	for _, token := range tokens {
		if f.f.TestString(token) {
			return true
		}
	}
	return false
}

// EstimatedCount returns the approximate number of tokens in the filter.
func (f *TokenFilter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
