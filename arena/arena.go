// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package arena provides a segheap.Heap backed by a single upfront
// anonymous memory mapping, grounded on cznic-memory's mmap_unix.go
// and mmap_windows.go. Reserving the whole region once, rather than
// growing the mapping on every Grow call, means committed addresses
// never move: a block address computed before a Grow stays valid
// after it, which segheap's offset-linked free lists depend on.
package arena

import (
	"fmt"
	"os"
	"unsafe"

	"github.com/cznic/mathutil"
)

var osPageMask = os.Getpagesize() - 1

// Arena is a segheap.Heap reserving cap bytes of address space up
// front via mmap and tracking how much of it is committed to the
// heap so far. The zero value is not usable; use New.
type Arena struct {
	buf  []byte
	used int64
}

// New reserves cap bytes of address space for the arena. The
// reservation is rounded up to the next power of two (via
// mathutil.BitLen, as cznic-memory's Malloc sizes its pool chunks) and
// then to a multiple of the OS page size, trading a little reserved
// address space for simpler growth-amount bookkeeping.
func New(cap int64) (*Arena, error) {
	if cap <= 0 {
		return nil, fmt.Errorf("arena: invalid capacity %d", cap)
	}
	pow2 := 1 << uint(mathutil.BitLen(int(cap-1)))
	size := (pow2 + osPageMask) &^ osPageMask
	buf, err := mmapReserve(size)
	if err != nil {
		return nil, fmt.Errorf("arena: mmap reservation failed: %w", err)
	}
	return &Arena{buf: buf}, nil
}

// Grow implements segheap.Heap.
func (ar *Arena) Grow(n int64) (int64, error) {
	if ar.used+n > int64(len(ar.buf)) {
		return 0, fmt.Errorf("arena: reservation of %d bytes exhausted growing by %d", len(ar.buf), n)
	}
	first := ar.Low() + ar.used
	ar.used += n
	return first, nil
}

// Low implements segheap.Heap. The arena's base is the address of its
// backing array's first byte, fixed for the arena's lifetime.
func (ar *Arena) Low() int64 {
	if len(ar.buf) == 0 {
		return 0
	}
	return int64(uintptr(unsafe.Pointer(&ar.buf[0])))
}

// High implements segheap.Heap.
func (ar *Arena) High() int64 {
	if ar.used == 0 {
		return ar.Low() - 1
	}
	return ar.Low() + ar.used - 1
}

// Size implements segheap.Heap.
func (ar *Arena) Size() int64 {
	return ar.used
}

// Bytes implements segheap.Heap.
func (ar *Arena) Bytes() []byte {
	return ar.buf[:ar.used:ar.used]
}

// Close releases the arena's reserved address space. The Arena, and
// any Allocator built on it, must not be used afterward.
func (ar *Arena) Close() error {
	if len(ar.buf) == 0 {
		return nil
	}
	err := munmap(unsafe.Pointer(&ar.buf[0]), len(ar.buf))
	ar.buf = nil
	return err
}
