// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package malloc implements a single-threaded, segregated-fit dynamic
// memory allocator over a contiguous, monotonically growable byte arena.
//
// The design follows the classical boundary-tag allocator: every block
// (free or allocated) carries a 4-byte header encoding its size and two
// allocation bits; free blocks additionally carry a duplicate footer so
// that a just-freed block's left neighbor can be located and coalesced in
// O(1). Free blocks of similar size are kept on one of 16 segregated,
// doubly-linked free lists threaded through the free block's own payload
// bytes, so the data structure costs no memory beyond the arena itself.
//
// A Heap is the allocator's context value; it owns no global state and is
// safe to create any number of, one per arena. It is not safe for
// concurrent use - callers serialize their own access, exactly like the
// C-family allocators this package is modeled after. Package-level
// Malloc/Free/Realloc/Calloc/Checkheap functions are a thin shim over a
// lazily created process-default Heap, for callers that want the familiar
// global surface.
package malloc
