// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package malloc

import (
	"errors"

	"github.com/PrateekJain90/Malloc/provider"
)

// Provider is the backing-memory collaborator a Heap grows into. It is an
// alias of provider.Provider so callers configuring a Heap do not need to
// import the provider package just to name the type.
type Provider = provider.Provider

// Ptr is a handle to an allocated block: the block's payload offset within
// its Heap's arena. The zero Ptr is the null pointer - it can never be a
// valid payload offset because that range is occupied by the free-list head
// table.
type Ptr uint32

// Heap holds all allocator state for one arena. Its zero value is not ready
// for use; create one with New. A Heap is not safe for concurrent use.
type Heap struct {
	p         Provider
	chunkSize uint32
}

// New creates a Heap over a freshly initialized arena. Pass WithProvider to
// supply a specific backing Provider (e.g. provider.NewMmapProvider for
// address-stable, OS-backed memory); without it, New creates a
// provider.SliceProvider sized by WithMaxBytes (or provider.DefaultMaxBytes).
func New(opts ...Option) (*Heap, error) {
	c := newConfig(opts)
	if c.compact {
		return nil, &ErrInvalid{Msg: "compaction is not supported by this allocator"}
	}

	h := &Heap{p: c.provider, chunkSize: c.chunkSize}
	if err := h.init(); err != nil {
		return nil, err
	}
	return h, nil
}

// init installs the free-list head table and the prologue/epilogue
// sentinels, then performs the first heap extension.
func (h *Heap) init() error {
	base, err := h.p.Extend(headerRegion)
	if err != nil {
		return errOutOfMemory(err)
	}
	if base != 0 {
		return &ErrCorrupt{Invariant: InvOutOfRange, Offset: uint32(base), Detail: "Provider was not empty at Heap.init"}
	}

	// Free-list heads and padding start zeroed (Extend returns zeroed
	// bytes on both providers); only the prologue and epilogue tags need
	// to be written explicitly. The prologue's own "predecessor" is
	// vacuously allocated, so both its header and footer carry
	// prev_alloc=true.
	h.writeAllocHeader(prologueBP, prologueSize, true)
	h.writeWord(ftrOff(prologueBP, prologueSize), h.readWord(hdrOff(prologueBP)))

	epiBP := h.arenaLen()
	h.writeWord(hdrOff(epiBP), word(0, true, true))

	if _, err := h.extendHeap(h.chunkSize); err != nil {
		return err
	}
	return nil
}

func errOutOfMemory(cause error) error {
	if errors.Is(cause, provider.ErrOutOfMemory) {
		return ErrOutOfMemory
	}
	return cause
}

// extendHeap grows the arena by at least minBytes (rounded up to
// max(minBytes, chunkSize), then to a multiple of 8), replacing the old
// epilogue with a new free block and writing a fresh epilogue at the new
// end, coalescing with a preceding free block if there is one.
func (h *Heap) extendHeap(minBytes uint32) (uint32, error) {
	n := minBytes
	if n < h.chunkSize {
		n = h.chunkSize
	}
	n = roundUp8(n)

	beforeLen := h.arenaLen()
	oldEpilogue := h.readWord(hdrOff(beforeLen))
	prevAlloc := oldEpilogue&flagPrevAlloc != 0

	base, err := h.p.Extend(int(n))
	if err != nil {
		return 0, errOutOfMemory(err)
	}
	if uint32(base) != beforeLen {
		return 0, &ErrCorrupt{Invariant: InvOutOfRange, Offset: uint32(base), Detail: "Provider.Extend returned a non-contiguous offset"}
	}

	newBP := beforeLen
	newEpilogueBP := beforeLen + n
	h.writeWord(hdrOff(newEpilogueBP), word(0, true, false))

	h.coalesceAndInsert(newBP, n, prevAlloc)
	return newBP, nil
}

// adjustSize translates a client-requested payload size into the block
// size actually carved out of the heap: the smallest block is 16 bytes, and
// larger requests pay a 4-byte header overhead rounded up to an 8-byte
// multiple.
func adjustSize(size int) uint32 {
	if size <= 8 {
		return minBlockSize
	}
	return roundUp8(uint32(size) + allocOverhead)
}

// Malloc allocates a block able to hold size bytes and returns a handle to
// it, or the zero Ptr and a nil error for size == 0. A size too large for a
// block's 32-bit size field is reported as ErrInvalid. The memory is not
// initialized.
func (h *Heap) Malloc(size int) (Ptr, error) {
	if size < 0 {
		return 0, &ErrInvalid{Msg: "negative size", Arg: size}
	}
	if size == 0 {
		return 0, nil
	}
	if uint64(size) > uint64(sizeMask-allocOverhead) {
		return 0, &ErrInvalid{Msg: "size too large for a block", Arg: size}
	}

	asize := adjustSize(size)
	if bp, ok := h.findFit(asize); ok {
		h.place(bp, asize)
		return Ptr(bp), nil
	}

	if _, err := h.extendHeap(asize); err != nil {
		return 0, err
	}

	bp, ok := h.findFit(asize)
	if !ok {
		// extendHeap succeeded but the resulting free block still
		// doesn't fit: only possible if the Provider rounded the
		// grant down, which no Provider in this package does.
		return 0, &ErrCorrupt{Invariant: InvOutOfRange, Detail: "heap extension did not yield a block large enough for the request"}
	}
	h.place(bp, asize)
	return Ptr(bp), nil
}

// Free deallocates the block referred to by p. Freeing the zero Ptr is a
// well-defined no-op; p must otherwise have come from Malloc, Calloc or
// Realloc on this Heap and still be live - passing anything else is
// undefined, though out-of-range offsets are rejected defensively.
func (h *Heap) Free(p Ptr) error {
	if p == 0 {
		return nil
	}

	bp := uint32(p)
	if bp < prologueBP+prologueSize || bp+wordSize > h.arenaLen() {
		return &ErrInvalid{Msg: "Ptr out of heap range", Arg: p}
	}
	if !h.selfAllocOf(bp) {
		return &ErrInvalid{Msg: "double free or Ptr into a free block", Arg: p}
	}

	size := h.sizeOf(bp)
	prevAlloc := h.prevAllocOf(bp)
	h.coalesceAndInsert(bp, size, prevAlloc)
	return nil
}

// Realloc resizes the block referred to by p to size bytes, preserving the
// first min(size, old payload size) bytes, and returns a handle to the
// (possibly different) resulting block. size == 0 frees p and returns the
// zero Ptr; p == 0 behaves like Malloc(size).
func (h *Heap) Realloc(p Ptr, size int) (Ptr, error) {
	if size == 0 {
		if err := h.Free(p); err != nil {
			return 0, err
		}
		return 0, nil
	}
	if p == 0 {
		return h.Malloc(size)
	}

	old := h.Bytes(p)
	q, err := h.Malloc(size)
	if err != nil {
		return 0, err
	}

	n := len(old)
	if n > size {
		n = size
	}
	copy(h.Bytes(q), old[:n])

	if err := h.Free(p); err != nil {
		return 0, err
	}
	return q, nil
}

// Calloc allocates space for n elements of sz bytes each and zeroes it.
// n*sz overflowing int is reported as ErrInvalid rather than silently
// wrapping.
func (h *Heap) Calloc(n, sz int) (Ptr, error) {
	if n < 0 || sz < 0 {
		return 0, &ErrInvalid{Msg: "negative Calloc argument", Arg: [2]int{n, sz}}
	}
	if n != 0 && sz != 0 && n > (1<<62)/sz {
		return 0, &ErrInvalid{Msg: "Calloc(n, sz) overflows", Arg: [2]int{n, sz}}
	}

	p, err := h.Malloc(n * sz)
	if err != nil || p == 0 {
		return p, err
	}

	b := h.Bytes(p)
	for i := range b {
		b[i] = 0
	}
	return p, nil
}

// Bytes returns the payload of the block referred to by p as a slice over
// the heap's own arena: writes through it are the allocation's contents.
// It returns nil for the zero Ptr.
func (h *Heap) Bytes(p Ptr) []byte {
	if p == 0 {
		return nil
	}

	bp := uint32(p)
	size := h.sizeOf(bp)
	return h.arena()[bp : bp+size-allocOverhead]
}
