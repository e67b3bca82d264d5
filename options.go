// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package malloc

import "github.com/PrateekJain90/Malloc/provider"

// MinChunkSize is the smallest chunk a Heap grows by when it extends the
// heap. New's first Provider request, for the fixed 144-byte header region,
// is separate and smaller.
const MinChunkSize = 512

type config struct {
	provider  Provider
	chunkSize uint32
	maxBytes  int
	compact   bool
}

// Option configures a Heap at construction time, following the same
// functional-options shape github.com/cznic/exp/dbm uses for its Options
// struct, just expressed as closures instead of struct fields.
type Option func(*config)

// WithProvider supplies the backing memory Provider explicitly. Without it,
// New creates a provider.SliceProvider sized by WithMaxBytes.
func WithProvider(p Provider) Option {
	return func(c *config) { c.provider = p }
}

// WithChunkSize sets the minimum number of bytes requested from the
// Provider every time the heap must grow. It is rounded up to a multiple
// of 8 and to at least MinChunkSize.
func WithChunkSize(n int) Option {
	return func(c *config) {
		if n < MinChunkSize {
			n = MinChunkSize
		}
		c.chunkSize = uint32(roundUp8(uint32(n)))
	}
}

// WithMaxBytes bounds the size of the default provider.SliceProvider New
// creates when WithProvider is not used. It has no effect if WithProvider
// is also given.
func WithMaxBytes(n int) Option {
	return func(c *config) { c.maxBytes = n }
}

// WithCompaction exists only to document, at the API surface, that
// compaction/defragmentation is out of scope for this allocator: passing
// true makes New fail with ErrInvalid instead of silently ignoring the
// request.
func WithCompaction(enabled bool) Option {
	return func(c *config) { c.compact = enabled }
}

func newConfig(opts []Option) *config {
	c := &config{chunkSize: MinChunkSize}
	for _, opt := range opts {
		opt(c)
	}
	if c.provider == nil {
		c.provider = provider.NewSliceProvider(c.maxBytes)
	}
	return c
}

func roundUp8(n uint32) uint32 { return (n + 7) &^ 7 }
