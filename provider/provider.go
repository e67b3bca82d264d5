// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package provider implements the backing-memory collaborators consumed by
// a malloc.Heap: a monotonic, byte-granularity heap-extension service
// modeled on the classical sbrk(2) contract. A Heap never depends on a
// concrete Provider; it only needs Extend, Bytes and Len.
//
// Two implementations are provided: SliceProvider, a pure Go, reservation
// based arena suitable for tests and for hosts without a usable mmap, and
// MmapProvider, which reserves a single anonymous mapping up front and
// commits pages on demand, so that every address it ever hands out stays
// valid for the process lifetime.
package provider

import "errors"

// ErrOutOfMemory is returned by Extend when the reservation backing a
// Provider is exhausted. It is never returned for any other reason.
var ErrOutOfMemory = errors.New("provider: heap reservation exhausted")

// Provider is the contract a malloc.Heap requires from its backing store:
// extend(n_bytes) plus the heap bounds, simplified to fit a Go byte-slice
// arena rather than raw pointers - offsets into Bytes() play the role of
// the classical heap_lo relative pointer.
type Provider interface {
	// Bytes returns the currently committed region of the heap. The
	// returned slice shares storage with the Provider and its backing
	// array never changes identity across calls to Extend - only its
	// length grows - so offsets computed against an earlier call remain
	// valid indices into a later one.
	Bytes() []byte

	// Len is len(Bytes()).
	Len() int

	// Extend grows the committed region by n bytes, which is always a
	// multiple of 8, and returns the offset of the first new byte. It
	// returns ErrOutOfMemory, and leaves the Provider unchanged, if the
	// growth cannot be satisfied.
	Extend(n int) (base int, err error)
}
