// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package malloc

// findFit scans the segregated free lists for the first block able to hold
// asize bytes: first-fit within a bucket, smallest-bucket-that-fits across
// buckets. It reports ok=false if no free block is big enough.
func (h *Heap) findFit(asize uint32) (bp uint32, ok bool) {
	for i := bucketOf(asize); i < numBuckets; i++ {
		for cur := h.headOf(i); cur != 0; cur = h.freeLinkNext(cur) {
			if h.sizeOf(cur) >= asize {
				return cur, true
			}
		}
	}
	return 0, false
}

// place carves an asize-byte allocated block out of the free block at bp,
// splitting off and re-inserting the remainder when it is large enough to
// be useful on its own.
func (h *Heap) place(bp, asize uint32) {
	prevAlloc := h.prevAllocOf(bp)
	csize := h.sizeOf(bp)
	h.removeFree(bp)

	if csize-asize >= minBlockSize {
		h.writeAllocHeader(bp, asize, prevAlloc)

		remBP := bp + asize
		remSize := csize - asize
		h.writeFreeHeaderFooter(remBP, remSize, true)
		h.insertFree(remBP)
		h.setPrevAllocBit(remBP+remSize, false)
		return
	}

	h.writeAllocHeader(bp, csize, prevAlloc)
	h.setPrevAllocBit(bp+csize, true)
}
