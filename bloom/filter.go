// Package bloom tracks visited listing pages with a Bloom filter.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter is a probabilistic set of URLs. It is not safe for concurrent use;
// callers serialize access.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a filter sized for n URLs at the given false positive
// rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{f: bloom.NewWithEstimates(n, fpRate)}
}

// Add records url.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
}

// Test reports whether url may have been added. False positives are
// possible; false negatives are not.
func (f *Filter) Test(url string) bool {
	return f.f.TestString(url)
}

// TestAndAdd records url and reports whether it may have been present
// before.
func (f *Filter) TestAndAdd(url string) bool {
	return f.f.TestAndAddString(url)
}
