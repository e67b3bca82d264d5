// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package malloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHeap(t *testing.T) *Heap {
	t.Helper()
	h, err := New(WithChunkSize(MinChunkSize), WithMaxBytes(1<<20))
	require.NoError(t, err)
	return h
}

func TestInitThenAlloc(t *testing.T) {
	h := newTestHeap(t)

	p, err := h.Malloc(1)
	require.NoError(t, err)
	require.NotZero(t, p)

	bp := uint32(p)
	assert.Zero(t, bp%8, "payload not 8-byte aligned")
	assert.Equal(t, uint32(minBlockSize), h.sizeOf(bp))
	assert.True(t, h.prevAllocOf(h.nextBlock(bp)), "next block's prev_alloc bit not set")
}

func TestSplit(t *testing.T) {
	h := newTestHeap(t)

	p, err := h.Malloc(24)
	require.NoError(t, err)
	bp := uint32(p)
	assert.Equal(t, uint32(32), h.sizeOf(bp))

	rem := h.nextBlock(bp)
	assert.Equal(t, uint32(512-32), h.sizeOf(rem))
	assert.Equal(t, 5, bucketOf(h.sizeOf(rem)))
	assert.False(t, h.selfAllocOf(rem))
}

func TestCoalesceFourCases(t *testing.T) {
	h := newTestHeap(t)

	a, err := h.Malloc(28)
	require.NoError(t, err)
	b, err := h.Malloc(28)
	require.NoError(t, err)
	c, err := h.Malloc(28)
	require.NoError(t, err)
	// d pins the right edge of c while a, b and c are freed, so that
	// coalescing stays confined to them instead of sweeping up the large
	// trailing remainder of the initial chunk.
	d, err := h.Malloc(28)
	require.NoError(t, err)

	require.NoError(t, h.Checkheap())

	require.NoError(t, h.Free(b)) // A-A: insert unchanged
	require.NoError(t, h.Checkheap())
	bBP := uint32(b)
	assert.False(t, h.selfAllocOf(bBP))
	assert.Equal(t, uint32(32), h.sizeOf(bBP))

	require.NoError(t, h.Free(a)) // A-F: a absorbs the now-free b to its right
	require.NoError(t, h.Checkheap())
	aBP := uint32(a)
	assert.Equal(t, uint32(64), h.sizeOf(aBP))

	require.NoError(t, h.Free(c)) // F-A: c is absorbed into the 64-byte a/b run to its left
	require.NoError(t, h.Checkheap())
	assert.Equal(t, uint32(96), h.sizeOf(aBP))

	require.NoError(t, h.Free(d)) // F-F: d joins the 96-byte run on its left and the 384-byte remainder on its right
	require.NoError(t, h.Checkheap())
	assert.Equal(t, uint32(512), h.sizeOf(aBP))
}

func TestReallocGrow(t *testing.T) {
	h := newTestHeap(t)

	p, err := h.Malloc(16)
	require.NoError(t, err)
	copy(h.Bytes(p), []byte("ABCDEFGHIJKLMNOP"))

	q, err := h.Realloc(p, 64)
	require.NoError(t, err)
	require.NotZero(t, q)
	assert.Equal(t, []byte("ABCDEFGHIJKLMNOP"), h.Bytes(q)[:16])

	require.NoError(t, h.Checkheap())
}

func TestReallocShrinkAndFree(t *testing.T) {
	h := newTestHeap(t)

	p, err := h.Malloc(64)
	require.NoError(t, err)
	copy(h.Bytes(p), []byte("0123456789"))

	q, err := h.Realloc(p, 8)
	require.NoError(t, err)
	require.NotZero(t, q)
	assert.Equal(t, []byte("01234567"), h.Bytes(q)[:8])
	require.NoError(t, h.Checkheap())

	r, err := h.Realloc(q, 0)
	require.NoError(t, err)
	assert.Zero(t, r)
	require.NoError(t, h.Checkheap())
}

func TestHeapExtension(t *testing.T) {
	h := newTestHeap(t)

	var live []Ptr
	for i := 0; i < 40; i++ {
		p, err := h.Malloc(48)
		require.NoError(t, err)
		live = append(live, p)
	}

	require.NoError(t, h.Checkheap())

	for _, p := range live[:20] {
		require.NoError(t, h.Free(p))
	}
	require.NoError(t, h.Checkheap())
}

func TestBucketSelectionBoundary(t *testing.T) {
	h := newTestHeap(t)

	// Carve a 16-byte block off the front of the 512-byte initial chunk,
	// leaving a 496-byte remainder (bucket 5, since 496 <= 16<<5 == 512).
	p, err := h.Malloc(12) // rounds to 16
	require.NoError(t, err)
	rem := h.nextBlock(uint32(p))
	assert.Equal(t, uint32(496), h.sizeOf(rem))
	assert.Equal(t, 5, bucketOf(h.sizeOf(rem)))

	st, err := h.Walk(func(error) bool { return true })
	require.NoError(t, err)
	assert.Equal(t, int64(1), st.BucketCounts[5])
}

func TestMallocZeroReturnsNull(t *testing.T) {
	h := newTestHeap(t)

	p, err := h.Malloc(0)
	require.NoError(t, err)
	assert.Zero(t, p)
}

func TestFreeNullIsNoop(t *testing.T) {
	h := newTestHeap(t)
	assert.NoError(t, h.Free(0))
}

func TestReallocNullIsMalloc(t *testing.T) {
	h := newTestHeap(t)
	p, err := h.Realloc(0, 10)
	require.NoError(t, err)
	assert.NotZero(t, p)
}

func TestCalloc(t *testing.T) {
	h := newTestHeap(t)

	p, err := h.Calloc(8, 4)
	require.NoError(t, err)
	require.NotZero(t, p)

	// 32 requested bytes need a 40-byte block, whose payload is 36 bytes.
	b := h.Bytes(p)
	assert.Len(t, b, 36)
	for _, v := range b {
		assert.Zero(t, v)
	}
}

func TestCallocOverflow(t *testing.T) {
	h := newTestHeap(t)

	_, err := h.Calloc(1<<31, 1<<32)
	require.Error(t, err)
	var ie *ErrInvalid
	assert.ErrorAs(t, err, &ie)
}

func TestDoubleFreeDetected(t *testing.T) {
	h := newTestHeap(t)

	p, err := h.Malloc(16)
	require.NoError(t, err)
	require.NoError(t, h.Free(p))

	err = h.Free(p)
	require.Error(t, err)
}
