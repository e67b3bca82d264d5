// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package malloc

// The segregated free-list index lives in the first headsRegionSize bytes
// of the arena: numBuckets slots of 8 bytes each, the first 4 of which hold
// the head's payload offset (0 meaning an empty list) and the remaining 4
// reserved so every slot stays 8-byte spaced. This mirrors the FLT
// ("free list table") of github.com/cznic/exp/lldb, generalized from a
// Fibonacci/powers-of-two table of on-disk handles to an in-memory table of
// bucket heads.

func headSlotOff(i int) uint32 { return uint32(i) * 8 }

func (h *Heap) headOf(i int) uint32 { return h.readWord(headSlotOff(i)) }

func (h *Heap) setHeadOf(i int, bp uint32) { h.writeWord(headSlotOff(i), bp) }

// insertFree adds the free block bp, LIFO, to the head of the bucket
// matching its current size. O(1).
func (h *Heap) insertFree(bp uint32) {
	i := bucketOf(h.sizeOf(bp))
	head := h.headOf(i)
	h.setFreeLinkPrev(bp, 0)
	h.setFreeLinkNext(bp, head)
	if head != 0 {
		h.setFreeLinkPrev(head, bp)
	}
	h.setHeadOf(i, bp)
}

// removeFree splices the free block bp out of the bucket matching its
// current size. O(1). The block's own size must not have changed since it
// was inserted into this bucket.
func (h *Heap) removeFree(bp uint32) {
	i := bucketOf(h.sizeOf(bp))
	prev := h.freeLinkPrev(bp)
	next := h.freeLinkNext(bp)

	if prev == 0 {
		h.setHeadOf(i, next)
	} else {
		h.setFreeLinkNext(prev, next)
	}

	if next != 0 {
		h.setFreeLinkPrev(next, prev)
	}

	h.setFreeLinkPrev(bp, 0)
	h.setFreeLinkNext(bp, 0)
}
