// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package segheap

import "unsafe"

// free2 marks block b free and coalesces it with whichever of its
// immediate neighbors are also free, inserting the resulting block
// into its size class's free list. The prolog and epilog are always
// reported allocated by isAlloc, so no boundary special-casing is
// needed here.
func (a *Allocator) free2(b addr) {
	prev := a.blockPrev(b)
	next := a.blockNext(b)
	prevFree := !a.isAlloc(prev)
	nextFree := !a.isAlloc(next)

	switch {
	case !prevFree && !nextFree:
		a.writeHeader(b, a.blockFlags(b)&(flagPFixed|flagSZClass)|uint32(a.blockSize(b)))
		a.blockMark(b)
		a.flInsert(b)

	case !prevFree && nextFree:
		a.flDelete(next)
		size := int64(a.blockSize(b)) + int64(a.blockSize(next)) + 8
		a.writeHeader(b, a.blockFlags(b)&(flagPFixed|flagSZClass)|uint32(size))
		a.blockMark(b)
		a.flInsert(b)

	case prevFree && !nextFree:
		a.flDelete(prev)
		size := int64(a.blockSize(prev)) + int64(a.blockSize(b)) + 8
		a.writeHeader(prev, a.blockFlags(prev)&(flagPFixed|flagSZClass)|uint32(size))
		a.blockMark(prev)
		a.flInsert(prev)

	default: // prevFree && nextFree
		a.flDelete(prev)
		a.flDelete(next)
		size := int64(a.blockSize(prev)) + int64(a.blockSize(b)) + int64(a.blockSize(next)) + 16
		a.writeHeader(prev, a.blockFlags(prev)&(flagPFixed|flagSZClass)|uint32(size))
		a.blockMark(prev)
		a.flInsert(prev)
	}
}

// headerOf recovers the header address of a block from a payload slice
// previously returned by Malloc/Realloc/Calloc, by subtracting the
// heap's own backing array address from the slice's backing pointer. Grounded on
// cznic-memory's pointer-arithmetic Free: p must point somewhere inside
// a.heap.Bytes(), which is guaranteed for any slice this Allocator ever
// handed out.
func (a *Allocator) headerOf(p []byte) addr {
	buf := a.heap.Bytes()
	off := int64(uintptr(unsafe.Pointer(&p[:1][0])) - uintptr(unsafe.Pointer(&buf[:1][0])))
	return a.base + off - headerSize
}

// Free releases a block previously returned by Malloc, Realloc or
// Calloc. Freeing nil is a no-op; freeing anything else not currently
// allocated by this Allocator is undefined behavior, mirroring the C
// free() contract.
func (a *Allocator) Free(p []byte) {
	if p == nil {
		return
	}
	b := a.headerOf(p)
	a.free2(b)
	a.checkDebug()
}
