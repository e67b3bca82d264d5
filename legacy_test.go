// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package malloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLegacyShim(t *testing.T) {
	require.NoError(t, Init(WithChunkSize(MinChunkSize), WithMaxBytes(1<<20)))

	p, err := Malloc(32)
	require.NoError(t, err)
	require.NotZero(t, p)

	copy(Bytes(p), []byte("hello"))
	assert.Equal(t, "hello", string(Bytes(p)[:5]))

	q, err := Realloc(p, 64)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(Bytes(q)[:5]))

	require.NoError(t, Checkheap())
	require.NoError(t, Free(q))
}
