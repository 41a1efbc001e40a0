// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package memheap provides a segheap.Heap with no backing OS mapping,
// in the manner of the teacher's MemFiler - a memory-only Filer used
// in its own tests instead of a real file. Tests and benchmarks that
// don't want a real mmap reservation per run use this instead of
// package arena.
package memheap

import "fmt"

// MemHeap is a segheap.Heap over a single pre-allocated, never
// relocated Go slice. Unlike MemFiler's paged map (built for sparse,
// arbitrarily large on-disk files), segheap needs one contiguous
// region so that block addresses can be recovered from a payload
// slice by pointer arithmetic; MemHeap trades MemFiler's unbounded
// size for that contiguity, reserving its full capacity up front with
// make, same as arena.Arena reserves its full capacity up front with
// mmap. The zero value is not usable; use New.
type MemHeap struct {
	buf []byte
}

// New returns a MemHeap with cap bytes of pre-allocated, never
// relocated backing storage.
func New(cap int64) (*MemHeap, error) {
	if cap <= 0 {
		return nil, fmt.Errorf("memheap: invalid capacity %d", cap)
	}
	return &MemHeap{buf: make([]byte, 0, cap)}, nil
}

// Grow implements segheap.Heap.
func (h *MemHeap) Grow(n int64) (int64, error) {
	used := int64(len(h.buf))
	if used+n > int64(cap(h.buf)) {
		return 0, fmt.Errorf("memheap: reservation of %d bytes exhausted growing by %d", cap(h.buf), n)
	}
	h.buf = h.buf[:used+n]
	return used, nil
}

// Low implements segheap.Heap. MemHeap uses 0 as its fixed logical
// base; unlike arena.Arena there is no real address to expose.
func (h *MemHeap) Low() int64 {
	return 0
}

// High implements segheap.Heap.
func (h *MemHeap) High() int64 {
	if len(h.buf) == 0 {
		return -1
	}
	return int64(len(h.buf)) - 1
}

// Size implements segheap.Heap.
func (h *MemHeap) Size() int64 {
	return int64(len(h.buf))
}

// Bytes implements segheap.Heap.
func (h *MemHeap) Bytes() []byte {
	return h.buf
}
