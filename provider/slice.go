// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package provider

import "fmt"

// DefaultMaxBytes is the reservation NewSliceProvider and NewMmapProvider
// use when given maxBytes <= 0: 2 GiB, half of the 4 GiB that the
// allocator's 32-bit offsets can address.
const DefaultMaxBytes = 1 << 32 / 2

// SliceProvider is a Provider backed by a single pre-capacity []byte,
// grounded on github.com/cznic/exp/lldb's MemFiler: a plain slice stands in
// for real backing storage, with no cgo and no syscalls, so it runs
// anywhere the Go toolchain does. Extend only ever reslices within the
// slice's original capacity, which is reserved once at construction time;
// this is what keeps every offset handed out before a given Extend call
// valid after it - the backing array is never reallocated.
type SliceProvider struct {
	buf []byte
	max int
}

var _ Provider = (*SliceProvider)(nil)

// NewSliceProvider reserves capacity for maxBytes bytes and returns a
// Provider with zero bytes committed. maxBytes must be > 0; passing <= 0
// uses DefaultMaxBytes.
func NewSliceProvider(maxBytes int) *SliceProvider {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &SliceProvider{buf: make([]byte, 0, maxBytes), max: maxBytes}
}

// Bytes implements Provider.
func (p *SliceProvider) Bytes() []byte { return p.buf }

// Len implements Provider.
func (p *SliceProvider) Len() int { return len(p.buf) }

// Extend implements Provider.
func (p *SliceProvider) Extend(n int) (base int, err error) {
	if n <= 0 || n%8 != 0 {
		return 0, fmt.Errorf("provider: Extend(%d): size must be a positive multiple of 8", n)
	}

	base = len(p.buf)
	if base+n > cap(p.buf) {
		return 0, ErrOutOfMemory
	}

	p.buf = p.buf[:base+n]
	return base, nil
}
