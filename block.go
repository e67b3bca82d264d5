// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package malloc

import "encoding/binary"

// Heap layout constants. A block is addressed by its payload offset bp: the
// 4-byte header lives at bp-4, and for a free block a 4-byte footer
// duplicating the header lives at bp+size(bp)-8.
const (
	numBuckets      = 16
	headsRegionSize = numBuckets * 8 // 16 slots, 8 bytes each (4 used + 4 pad), for alignment
	paddingSize     = 4
	prologueSize    = 8 // header + footer, zero payload
	epilogueHdrSize = 4
	headerRegion    = headsRegionSize + paddingSize + prologueSize + epilogueHdrSize // 144

	minBlockSize  = 16
	allocOverhead = 4 // header only
	freeOverhead  = 8 // header + footer

	wordSize = 4

	flagSelfAlloc uint32 = 1 << 0
	flagPrevAlloc uint32 = 1 << 1
	sizeMask      uint32 = ^uint32(7)
)

// prologueBP / epilogue bookkeeping: the prologue's payload offset is fixed
// once and for all by the static header region; the epilogue's payload
// offset always equals the current committed arena length (its header is
// the last 4 bytes of the arena).
const prologueBP = headsRegionSize + paddingSize + 4 // offset of prologue header + 4

func word(v uint32, selfAlloc, prevAlloc bool) uint32 {
	w := v &^ 7
	if prevAlloc {
		w |= flagPrevAlloc
	}
	if selfAlloc {
		w |= flagSelfAlloc
	}
	return w
}

func (h *Heap) arena() []byte { return h.p.Bytes() }

func (h *Heap) arenaLen() uint32 { return uint32(h.p.Len()) }

func (h *Heap) readWord(off uint32) uint32 {
	return binary.LittleEndian.Uint32(h.arena()[off : off+4])
}

func (h *Heap) writeWord(off uint32, v uint32) {
	binary.LittleEndian.PutUint32(h.arena()[off:off+4], v)
}

func hdrOff(bp uint32) uint32 { return bp - wordSize }

func ftrOff(bp, size uint32) uint32 { return bp + size - 2*wordSize }

// sizeOf returns the size, in bytes, of the block whose payload starts at
// bp, as recorded in its header.
func (h *Heap) sizeOf(bp uint32) uint32 { return h.readWord(hdrOff(bp)) & sizeMask }

// selfAllocOf reports whether the block at bp is currently allocated.
func (h *Heap) selfAllocOf(bp uint32) bool { return h.readWord(hdrOff(bp))&flagSelfAlloc != 0 }

// prevAllocOf reports whether the block physically preceding bp is
// allocated, without reading that neighbor.
func (h *Heap) prevAllocOf(bp uint32) bool { return h.readWord(hdrOff(bp))&flagPrevAlloc != 0 }

// nextBlock returns the payload offset of the block physically following
// bp. For the last real block this returns the epilogue's payload offset.
func (h *Heap) nextBlock(bp uint32) uint32 { return bp + h.sizeOf(bp) }

// writeAllocHeader marks [bp-4, bp-4+size) as an allocated block. Allocated
// blocks never carry a footer.
func (h *Heap) writeAllocHeader(bp, size uint32, prevAlloc bool) {
	h.writeWord(hdrOff(bp), word(size, true, prevAlloc))
}

// writeFreeHeaderFooter marks [bp-4, bp-4+size) as a free block, writing
// matching header and footer words.
func (h *Heap) writeFreeHeaderFooter(bp, size uint32, prevAlloc bool) {
	w := word(size, false, prevAlloc)
	h.writeWord(hdrOff(bp), w)
	h.writeWord(ftrOff(bp, size), w)
}

// setPrevAllocBit updates the prev_alloc bit (bit 1) of the block at bp
// in place, without touching its size or self_alloc bit. If the block is
// free, the footer - which must mirror the header exactly - is kept in
// sync too.
func (h *Heap) setPrevAllocBit(bp uint32, prevAlloc bool) {
	off := hdrOff(bp)
	w := h.readWord(off)
	selfAlloc := w&flagSelfAlloc != 0
	size := w & sizeMask
	nw := word(size, selfAlloc, prevAlloc)
	h.writeWord(off, nw)
	if !selfAlloc {
		h.writeWord(ftrOff(bp, size), nw)
	}
}

// footerSizeAt returns the size recorded in the footer word ending just
// before bp - i.e. the size of bp's left physical neighbor, which must be
// free for this footer to exist.
func (h *Heap) footerSizeAt(bp uint32) uint32 {
	return h.readWord(bp-2*wordSize) & sizeMask
}

// freeLinkPrev/freeLinkNext read and write the doubly-linked free list
// pointers stored in the first 8 bytes of a free block's payload. 0 means
// "no link".
func (h *Heap) freeLinkPrev(bp uint32) uint32 { return h.readWord(bp) }
func (h *Heap) freeLinkNext(bp uint32) uint32 { return h.readWord(bp + wordSize) }

func (h *Heap) setFreeLinkPrev(bp, v uint32) { h.writeWord(bp, v) }
func (h *Heap) setFreeLinkNext(bp, v uint32) { h.writeWord(bp+wordSize, v) }
