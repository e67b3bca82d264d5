// Copyright 2011 Evan Shaw. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE-MMAP-GO file.

// Modifications (c) 2017 The Memory Authors.

//go:build !unix

package provider

import "errors"

// ErrUnsupported is returned by NewMmapProvider on hosts without the unix
// build tag (e.g. plan9, js/wasm). Use SliceProvider there instead.
var ErrUnsupported = errors.New("provider: MmapProvider is not supported on this platform, use SliceProvider")

// MmapProvider is unavailable on this platform; NewMmapProvider always
// fails. The type is kept so callers can reference it behind a build-tag
// free API surface.
type MmapProvider struct{}

// NewMmapProvider always returns ErrUnsupported on this platform.
func NewMmapProvider(maxBytes int) (*MmapProvider, error) { return nil, ErrUnsupported }

// Close is a no-op.
func (p *MmapProvider) Close() error { return nil }

// Bytes always returns nil.
func (p *MmapProvider) Bytes() []byte { return nil }

// Len always returns 0.
func (p *MmapProvider) Len() int { return 0 }

// Extend always fails with ErrUnsupported.
func (p *MmapProvider) Extend(n int) (int, error) { return 0, ErrUnsupported }
