// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Heapstat runs a canned allocation workload against a malloc.Heap and
// reports the resulting block and free-list statistics.
package main

import (
	"flag"
	"log"

	"github.com/cznic/mathutil"

	"github.com/PrateekJain90/Malloc"
)

var (
	oOps      = flag.Int("ops", 20000, "number of malloc/free operations to perform")
	oMaxSize  = flag.Int("max-size", 4096, "largest payload size requested")
	oSeed     = flag.Uint64("seed", 42, "PRNG seed for the allocation trace")
	oChunk    = flag.Int("chunk", malloc.MinChunkSize, "heap extension chunk size in bytes")
	oVerbose  = flag.Bool("v", false, "log every invariant violation instead of just the first")
	oMaxBytes = flag.Int("max-bytes", 0, "backing arena reservation in bytes (0 = provider default)")
)

func main() {
	log.SetFlags(0)
	flag.Parse()

	h, err := malloc.New(malloc.WithChunkSize(*oChunk), malloc.WithMaxBytes(*oMaxBytes))
	if err != nil {
		log.Fatalf("heapstat: New: %v", err)
	}

	rng, err := mathutil.NewFC32(1, *oMaxSize, false)
	if err != nil {
		log.Fatalf("heapstat: NewFC32: %v", err)
	}
	rng.Seed(int64(*oSeed))

	live := make([]malloc.Ptr, 0, *oOps)
	for i := 0; i < *oOps; i++ {
		if len(live) > 0 && rng.Next()%2 == 0 {
			j := rng.Next() % len(live)
			if err := h.Free(live[j]); err != nil {
				log.Fatalf("heapstat: Free: %v", err)
			}
			live[j] = live[len(live)-1]
			live = live[:len(live)-1]
			continue
		}

		size := rng.Next()
		p, err := h.Malloc(size)
		if err != nil {
			log.Fatalf("heapstat: Malloc(%d): %v", size, err)
		}
		live = append(live, p)
	}

	nErr := 0
	stats, err := h.Walk(func(e error) bool {
		nErr++
		if *oVerbose {
			log.Printf("invariant violation: %v", e)
		}
		return *oVerbose
	})
	if err != nil && !*oVerbose {
		log.Printf("first invariant violation: %v", err)
	}

	log.Printf("ops=%d live=%d violations=%d", *oOps, len(live), nErr)
	log.Printf("blocks: total=%d alloc=%d free=%d", stats.TotalBlocks, stats.AllocBlocks, stats.FreeBlocks)
	log.Printf("bytes: alloc=%d free=%d", stats.AllocBytes, stats.FreeBytes)
	for i, c := range stats.BucketCounts {
		if c > 0 {
			log.Printf("bucket[%2d]: %d free blocks", i, c)
		}
	}
}
