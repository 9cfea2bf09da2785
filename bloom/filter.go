// Package bloom tracks which chunk contents an index already holds, so
// additive updates can skip the exact lookup for content never seen.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter is a probabilistic set of chunk contents.
type Filter struct {
	f     *bloom.BloomFilter
	added uint
}

// NewFilter creates a new Filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records content as present.
func (f *Filter) Add(content string) {
	f.f.AddString(content)
	f.added++
}

// MayContain returns false when content was definitely never added.
// A true result must be confirmed against the index.
func (f *Filter) MayContain(content string) bool {
	return f.f.TestString(content)
}

// Added returns the number of Add calls, duplicates included.
func (f *Filter) Added() uint {
	return f.added
}
