// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package malloc

import "sync"

var (
	defaultMu   sync.Mutex
	defaultHeap *Heap
)

// Init (re)creates the process-default Heap used by the package-level
// Malloc/Free/Realloc/Calloc/Checkheap functions, applying opts. Calling it
// discards any state the previous default Heap held; it exists for tests
// and command-line tools that want a fresh arena without threading a *Heap
// through every call.
func Init(opts ...Option) error {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	h, err := New(opts...)
	if err != nil {
		return err
	}
	defaultHeap = h
	return nil
}

func defaultHeapLocked() (*Heap, error) {
	if defaultHeap == nil {
		h, err := New()
		if err != nil {
			return nil, err
		}
		defaultHeap = h
	}
	return defaultHeap, nil
}

// Malloc allocates from the process-default Heap, creating it with default
// options on first use. See (*Heap).Malloc.
func Malloc(size int) (Ptr, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	h, err := defaultHeapLocked()
	if err != nil {
		return 0, err
	}
	return h.Malloc(size)
}

// Free frees a Ptr obtained from the process-default Heap. See (*Heap).Free.
func Free(p Ptr) error {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	h, err := defaultHeapLocked()
	if err != nil {
		return err
	}
	return h.Free(p)
}

// Realloc resizes a Ptr obtained from the process-default Heap. See
// (*Heap).Realloc.
func Realloc(p Ptr, size int) (Ptr, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	h, err := defaultHeapLocked()
	if err != nil {
		return 0, err
	}
	return h.Realloc(p, size)
}

// Calloc allocates zeroed memory from the process-default Heap. See
// (*Heap).Calloc.
func Calloc(n, sz int) (Ptr, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	h, err := defaultHeapLocked()
	if err != nil {
		return 0, err
	}
	return h.Calloc(n, sz)
}

// Bytes returns the payload of a Ptr obtained from the process-default
// Heap. See (*Heap).Bytes.
func Bytes(p Ptr) []byte {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	h, err := defaultHeapLocked()
	if err != nil {
		return nil
	}
	return h.Bytes(p)
}

// Checkheap validates the process-default Heap and reports the first
// invariant violation found, if any. See (*Heap).Checkheap.
func Checkheap() error {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	h, err := defaultHeapLocked()
	if err != nil {
		return err
	}
	return h.Checkheap()
}
