// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package malloc

// coalesceAndInsert merges the free region [bp, bp+size) - which is not yet
// written to the arena and not yet in any free list - with its free
// physical neighbors, if any, writes the resulting block's boundary tags,
// inserts it into the matching free list, and clears the prev_alloc bit of
// whatever now physically follows it. The four possible left/right-free
// combinations collapse into one routine since the two checks are
// independent of each other. prevAlloc is the prev_alloc state of bp
// itself, i.e. whether the block immediately to its left is allocated.
//
// Both Heap.Free and Heap.extendHeap funnel through here: a freshly grown
// chunk and a freshly freed block are, from this point on, the same kind of
// event - a new free region that must be merged into the free-list
// structure right away, before anything else can observe it uncoalesced.
func (h *Heap) coalesceAndInsert(bp, size uint32, prevAlloc bool) {
	if !prevAlloc {
		leftSize := h.footerSizeAt(bp)
		leftBP := bp - leftSize
		leftPrevAlloc := h.prevAllocOf(leftBP)
		h.removeFree(leftBP)
		bp = leftBP
		size += leftSize
		prevAlloc = leftPrevAlloc
	}

	next := bp + size
	if !h.selfAllocOf(next) {
		rightSize := h.sizeOf(next)
		h.removeFree(next)
		size += rightSize
	}

	h.writeFreeHeaderFooter(bp, size, prevAlloc)
	h.insertFree(bp)
	h.setPrevAllocBit(bp+size, false)
}
