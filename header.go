// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package segheap

import "encoding/binary"

// Status bits packed into the low 3 bits of every block header/footer.
// Payload size always occupies the remaining, 8-aligned, upper bits.
const (
	flagAlloc   = uint32(1)
	flagPFixed  = uint32(2)
	flagSZClass = uint32(4)
	flagMask    = flagAlloc | flagPFixed | flagSZClass
)

// headerSize is the size, in bytes, of a block header or footer word.
const headerSize = 4

// bytesAt returns the n bytes of the heap starting at address p as a
// slice sharing storage with the backing Heap.
func (a *Allocator) bytesAt(p addr, n int64) []byte {
	buf := a.heap.Bytes()
	i := p - a.base
	return buf[i : i+n]
}

func (a *Allocator) readHeader(p addr) uint32 {
	return binary.BigEndian.Uint32(a.bytesAt(p, headerSize))
}

func (a *Allocator) writeHeader(p addr, v uint32) {
	binary.BigEndian.PutUint32(a.bytesAt(p, headerSize), v)
}

func (a *Allocator) blockSize(b addr) uint32 {
	return a.readHeader(b) &^ flagMask
}

func (a *Allocator) blockFlags(b addr) uint32 {
	return a.readHeader(b) & flagMask
}

func (a *Allocator) isAlloc(b addr) bool {
	return a.blockFlags(b)&flagAlloc != 0
}

func (a *Allocator) isPFixed(b addr) bool {
	return a.blockFlags(b)&flagPFixed != 0
}

func (a *Allocator) szClassBit(b addr) bool {
	return a.blockFlags(b)&flagSZClass != 0
}

// blockNext returns the address of b's right neighbour, or 0 if b is
// the epilog. Every block, regardless of size class, spans
// 8+blockSize(b) bytes: a 4 byte header, its payload, and a trailing 4
// bytes that is either a real footer (class >= 6) or unused padding
// that the next block's header borrows for PFIXED/SZCLASS bookkeeping
// (class < 6).
func (a *Allocator) blockNext(b addr) addr {
	if b == a.epilog {
		return 0
	}
	return b + 8 + addr(a.blockSize(b))
}

// blockPrev returns the address of b's left neighbour, or 0 if b is
// the prolog.
func (a *Allocator) blockPrev(b addr) addr {
	if b == a.prolog {
		return 0
	}
	if a.isPFixed(b) {
		if a.szClassBit(b) {
			return b - 24 // SIZE5 fixed block: header(4)+payload(16)+pad(4)
		}
		return b - 16 // SIZE4 fixed block: header(4)+payload(8)+pad(4)
	}
	footer := a.readHeader(b - 4)
	prevSize := footer &^ flagMask
	return b - 8 - addr(prevSize)
}

// blockMark writes the bookkeeping that block_prev of b's successor
// depends on. It must be called after any change to b's size or class.
// For b in a footerless class (4 or 5) it sets PFIXED and the SZCLASS
// bit on the next block's header, leaving that header's own ALLOC bit
// and size untouched. Otherwise it clears those two bits on the next
// block and writes b's own header value into b's footer slot.
func (a *Allocator) blockMark(b addr) {
	cls := classOf(int64(a.blockSize(b)))
	next := a.blockNext(b)

	if cls < class6 {
		h := a.readHeader(next)
		h = (h &^ (flagPFixed | flagSZClass)) | flagPFixed
		if cls == class5 {
			h |= flagSZClass
		}
		a.writeHeader(next, h)
		return
	}

	h := a.readHeader(next)
	h &^= flagPFixed | flagSZClass
	a.writeHeader(next, h)
	a.writeHeader(b+4+addr(a.blockSize(b)), a.readHeader(b))
}
