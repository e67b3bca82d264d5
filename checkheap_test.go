// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package malloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalkCleanHeap(t *testing.T) {
	h := newTestHeap(t)

	ptrs := make([]Ptr, 0, 10)
	for i := 0; i < 10; i++ {
		p, err := h.Malloc(20 + i*4)
		require.NoError(t, err)
		ptrs = append(ptrs, p)
	}
	for i := 0; i < len(ptrs); i += 2 {
		require.NoError(t, h.Free(ptrs[i]))
	}

	st, err := h.Walk(func(error) bool { return true })
	require.NoError(t, err)
	assert.Equal(t, int64(5), st.AllocBlocks)
	assert.Equal(t, int64(6), st.FreeBlocks) // the five freed blocks plus the trailing remainder of the initial chunk
}

func TestWalkDetectsCorruptedBoundaryTag(t *testing.T) {
	h := newTestHeap(t)

	p, err := h.Malloc(32)
	require.NoError(t, err)
	require.NoError(t, h.Free(p))

	bp := uint32(p)
	h.writeWord(ftrOff(bp, h.sizeOf(bp)), 0xdeadbeef) // tamper with the footer directly

	var violations []error
	_, err = h.Walk(func(e error) bool {
		violations = append(violations, e)
		return true
	})
	require.Error(t, err)
	require.NotEmpty(t, violations)

	var ce *ErrCorrupt
	require.ErrorAs(t, violations[0], &ce)
	assert.Equal(t, InvBoundaryTag, ce.Invariant)
}

func TestWalkDetectsMissingFreeListMembership(t *testing.T) {
	h := newTestHeap(t)

	p, err := h.Malloc(32)
	require.NoError(t, err)
	require.NoError(t, h.Free(p))

	bp := uint32(p)
	h.removeFree(bp) // detach from the free list without re-marking it allocated

	var sawMiss bool
	_, err = h.Walk(func(e error) bool {
		if ce, ok := e.(*ErrCorrupt); ok && ce.Invariant == InvFreeListMiss {
			sawMiss = true
		}
		return true
	})
	require.Error(t, err)
	assert.True(t, sawMiss)
}
