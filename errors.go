// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package malloc

import (
	"errors"
	"fmt"
)

// ErrOutOfMemory is returned, wrapped or not, whenever the backing Provider
// refuses to extend the heap. Malloc, Realloc and Calloc return it together
// with the zero Ptr, leaving existing allocations untouched; callers that
// need to distinguish "out of memory" from "bad argument" can probe with
// errors.Is.
var ErrOutOfMemory = errors.New("malloc: backing provider refused to extend the heap")

// ErrInvalid reports a bad argument passed to the public API: a negative
// size, an overflowing Calloc(n, sz), a Ptr that cannot possibly refer to a
// live block, etc. It never reports a data-structure invariant violation;
// for that see ErrCorrupt.
type ErrInvalid struct {
	Msg string
	Arg interface{}
}

func (e *ErrInvalid) Error() string {
	if e.Arg == nil {
		return fmt.Sprintf("malloc: invalid argument: %s", e.Msg)
	}
	return fmt.Sprintf("malloc: invalid argument: %s (%v)", e.Msg, e.Arg)
}

// Invariant names reported by ErrCorrupt.
const (
	InvAlignment     = "misaligned block"
	InvPrologue      = "bad prologue"
	InvEpilogue      = "bad epilogue"
	InvBoundaryTag   = "free block header/footer mismatch"
	InvPrevAlloc     = "prev_alloc bit disagrees with predecessor"
	InvFreeListLink  = "free list link integrity violated"
	InvFreeListMiss  = "block missing from its free list bucket"
	InvFreeListExtra = "block present in a free list while marked allocated"
	InvAdjacentFree  = "two physically adjacent blocks are both free"
	InvOutOfRange    = "offset outside the committed heap"
)

// ErrCorrupt reports a detected violation of one of the allocator's
// maintained invariants. Walk reports every instance it finds to a caller
// supplied log function and Checkheap returns the first one; the core
// allocation path returns
// the first one it notices, where it can do so cheaply, as a defensive
// measure - most foreign-pointer misuse is undefined behavior rather than
// something this package can detect, so this is best-effort, not a
// guarantee.
type ErrCorrupt struct {
	Invariant string
	Offset    uint32
	Detail    string
}

func (e *ErrCorrupt) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("malloc: corrupt heap at offset %#x: %s", e.Offset, e.Invariant)
	}
	return fmt.Sprintf("malloc: corrupt heap at offset %#x: %s (%s)", e.Offset, e.Invariant, e.Detail)
}
