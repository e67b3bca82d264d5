// Copyright 2011 Evan Shaw. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE-MMAP-GO file.

// Modifications (c) 2017 The Memory Authors.

//go:build unix

package provider

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// MmapProvider is a Provider backed by a single anonymous mapping reserved
// once, up front, at construction time. Growing the heap only changes the
// protection of already-reserved pages (PROT_NONE -> PROT_READ|PROT_WRITE)
// rather than remapping or copying, so a pointer into a committed region
// never moves for the life of the Provider - the real-world analogue of a
// classical sbrk(2)-backed heap, grounded on github.com/cznic/memory's
// mmap_unix.go, reworked to use golang.org/x/sys/unix instead of raw
// syscall numbers.
type MmapProvider struct {
	mem    []byte // PROT_NONE reservation of length max
	used   int    // bytes currently PROT_READ|PROT_WRITE, from the start of mem
	max    int
	pgsz   int
	closed bool
}

var _ Provider = (*MmapProvider)(nil)

// NewMmapProvider reserves maxBytes bytes of address space. maxBytes is
// rounded up to a multiple of the OS page size. No physical memory is
// committed until Extend is called.
func NewMmapProvider(maxBytes int) (*MmapProvider, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	pgsz := unix.Getpagesize()
	rounded := (maxBytes + pgsz - 1) &^ (pgsz - 1)

	mem, err := unix.Mmap(-1, 0, rounded, unix.PROT_NONE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("provider: reserving %d bytes: %w", rounded, err)
	}

	return &MmapProvider{mem: mem, max: rounded, pgsz: pgsz}, nil
}

// Close releases the reservation. It is not necessary to Close a
// MmapProvider when exiting a process.
func (p *MmapProvider) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	return unix.Munmap(p.mem)
}

// Bytes implements Provider.
func (p *MmapProvider) Bytes() []byte { return p.mem[:p.used] }

// Len implements Provider.
func (p *MmapProvider) Len() int { return p.used }

// Extend implements Provider.
func (p *MmapProvider) Extend(n int) (base int, err error) {
	if n <= 0 || n%8 != 0 {
		return 0, fmt.Errorf("provider: Extend(%d): size must be a positive multiple of 8", n)
	}

	base = p.used
	newUsed := base + n
	if newUsed > p.max {
		return 0, ErrOutOfMemory
	}

	// Commit whole pages covering [base, newUsed); re-protecting an
	// already-committed page is harmless.
	pageStart := base &^ (p.pgsz - 1)
	pageEnd := (newUsed + p.pgsz - 1) &^ (p.pgsz - 1)
	if err := unix.Mprotect(p.mem[pageStart:pageEnd], unix.PROT_READ|unix.PROT_WRITE); err != nil {
		return 0, fmt.Errorf("provider: committing pages: %w", err)
	}

	p.used = newUsed
	return base, nil
}
