// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package malloc

import "github.com/cznic/mathutil"

// bucketOf returns the index, in [0, numBuckets), of the segregated free
// list a block of the given size belongs to: bucket i holds blocks of size
// in (16<<(i-1), 16<<i] for i < 15, and bucket 15 is the catch-all for
// anything bigger than 16<<14.
//
// Rather than scan the buckets linearly, the smallest i with size <= 16<<i
// is computed directly: let units = ceil(size/16); i is the number of bits
// needed to represent units-1, i.e. mathutil.BitLen(units-1), the same
// technique github.com/cznic/exp/lldb's flt.go precomputes into a lookup
// table and github.com/cznic/memory uses for its slab size classes.
func bucketOf(size uint32) int {
	units := (size + 15) / 16
	i := mathutil.BitLen(int(units - 1))
	if i >= numBuckets {
		i = numBuckets - 1
	}
	return i
}
