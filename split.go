// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package segheap

// carve splits a free block b, which must currently be on a free list,
// into an allocated left part of s0 payload bytes and a free right part
// of s1 payload bytes (s0+s1+8 == blockSize(b)). It returns the address
// of the left, allocated part.
func (a *Allocator) carve(b addr, s0, s1 int64) addr {
	a.flDelete(b)

	flags := a.blockFlags(b) & (flagPFixed | flagSZClass)
	a.writeHeader(b, uint32(s0)|flags|flagAlloc)
	if classOf(s0) >= class6 {
		a.writeHeader(b+4+addr(s0), uint32(s0)|flagAlloc)
	}

	// right's header must hold its size before blockMark(b) runs: blockMark
	// only flips the PFIXED/SZCLASS bits of whatever header is already at
	// blockNext(b), it does not establish that header's size.
	right := a.blockNext(b)
	a.writeHeader(right, uint32(s1))
	a.blockMark(b)
	a.blockMark(right)
	a.flInsert(right)

	return b
}
