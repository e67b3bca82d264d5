// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package malloc

// Stats records statistics about a Heap's arena, optionally filled in by
// Walk when it completes without a fatal error.
type Stats struct {
	TotalBlocks int64
	AllocBlocks int64
	AllocBytes  int64
	FreeBlocks  int64
	FreeBytes   int64

	// BucketCounts[i] is the number of free blocks currently linked into
	// bucket i.
	BucketCounts [numBuckets]int64
}

// Walk traverses every block in the heap from the prologue to the
// epilogue, checking the invariants a well-formed heap must hold, and
// separately walks every segregated free list cross-checking it against
// the block walk. Every violation found is reported to log; log may
// return false to stop the walk early. Walk returns the first error log
// was given if log itself never stops it, together with the Stats
// accumulated up to that point, or nil and complete Stats if nothing was
// found.
//
// This mirrors the shape of github.com/cznic/exp/lldb's Allocator.Verify:
// a physical block-by-block pass that also reconciles the free-space
// index, reporting every problem through a caller-supplied log callback
// rather than stopping at the first one.
func (h *Heap) Walk(log func(error) bool) (*Stats, error) {
	if log == nil {
		log = func(error) bool { return true }
	}

	var st Stats
	var firstErr error
	report := func(err error) bool {
		if firstErr == nil {
			firstErr = err
		}
		return log(err)
	}

	arenaLen := h.arenaLen()
	if arenaLen < headerRegion {
		report(&ErrCorrupt{Invariant: InvOutOfRange, Detail: "arena shorter than the fixed header region"})
		return &st, firstErr
	}

	seen := make(map[uint32]bool)
	bp := prologueBP + prologueSize // first real block, past the phantom prologue
	wasAlloc := true                // the prologue itself counts as allocated
	for bp != arenaLen {
		if bp%8 != 0 {
			if !report(&ErrCorrupt{Invariant: InvAlignment, Offset: bp}) {
				return &st, firstErr
			}
		}

		size := h.sizeOf(bp)
		if size < minBlockSize || size%8 != 0 || bp+size > arenaLen {
			if !report(&ErrCorrupt{Invariant: InvBoundaryTag, Offset: bp, Detail: "implausible block size"}) {
				return &st, firstErr
			}
			break
		}

		if h.prevAllocOf(bp) != wasAlloc {
			if !report(&ErrCorrupt{Invariant: InvPrevAlloc, Offset: bp}) {
				return &st, firstErr
			}
		}

		alloc := h.selfAllocOf(bp)
		if !alloc {
			hdr := h.readWord(hdrOff(bp))
			ftr := h.readWord(ftrOff(bp, size))
			if hdr != ftr {
				if !report(&ErrCorrupt{Invariant: InvBoundaryTag, Offset: bp, Detail: "header/footer mismatch"}) {
					return &st, firstErr
				}
			}
			if !wasAlloc {
				if !report(&ErrCorrupt{Invariant: InvAdjacentFree, Offset: bp}) {
					return &st, firstErr
				}
			}
			seen[bp] = false
			st.FreeBlocks++
			st.FreeBytes += int64(size)
			st.BucketCounts[bucketOf(size)]++
		} else {
			st.AllocBlocks++
			st.AllocBytes += int64(size - allocOverhead)
		}

		st.TotalBlocks++
		wasAlloc = alloc
		bp += size
	}

	if bp != arenaLen {
		report(&ErrCorrupt{Invariant: InvEpilogue, Offset: bp, Detail: "block walk did not land exactly on the epilogue"})
	} else if !h.selfAllocOf(bp) {
		report(&ErrCorrupt{Invariant: InvEpilogue, Offset: bp, Detail: "epilogue is not marked allocated"})
	}

	for i := 0; i < numBuckets; i++ {
		var prev uint32
		for cur := h.headOf(i); cur != 0; cur = h.freeLinkNext(cur) {
			if _, ok := seen[cur]; !ok {
				if !report(&ErrCorrupt{Invariant: InvFreeListExtra, Offset: cur, Detail: "linked but not free on the block walk"}) {
					return &st, firstErr
				}
			} else {
				seen[cur] = true
			}

			if got := bucketOf(h.sizeOf(cur)); got != i {
				report(&ErrCorrupt{Invariant: InvFreeListMiss, Offset: cur, Detail: "block linked into the wrong bucket"})
			}
			if h.freeLinkPrev(cur) != prev {
				report(&ErrCorrupt{Invariant: InvFreeListLink, Offset: cur, Detail: "prev link does not point back"})
			}
			prev = cur
		}
	}

	for bp, linked := range seen {
		if !linked {
			report(&ErrCorrupt{Invariant: InvFreeListMiss, Offset: bp, Detail: "free on the block walk but not linked into any bucket"})
		}
	}

	return &st, firstErr
}

// Checkheap reports the first invariant violation Walk finds, or nil if
// none. It is a convenience wrapper for callers that only care whether the
// heap is consistent, not the full list of problems.
func (h *Heap) Checkheap() error {
	_, err := h.Walk(func(error) bool { return false })
	return err
}
