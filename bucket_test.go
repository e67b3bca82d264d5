// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package malloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBucketOf(t *testing.T) {
	cases := []struct {
		size uint32
		want int
	}{
		{16, 0},
		{17, 1},
		{32, 1},
		{33, 2},
		{480, 5},
		{16 << 15, numBuckets - 1},
		{1 << 20, numBuckets - 1},
	}

	for _, c := range cases {
		assert.Equalf(t, c.want, bucketOf(c.size), "bucketOf(%d)", c.size)
	}
}

func TestBucketOfMonotonic(t *testing.T) {
	prev := bucketOf(16)
	for size := uint32(24); size <= 1<<16; size += 8 {
		got := bucketOf(size)
		assert.GreaterOrEqualf(t, got, prev, "bucketOf(%d) regressed relative to smaller size", size)
		prev = got
	}
}
