// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package segheap

import "github.com/cznic/mathutil"

// searchList looks for a block on the free list for cls that fits
// reqSize bytes of payload, returning its address or 0 if none is
// found. Classes below classSmallBound are fast-pathed: Malloc has
// already rounded reqSize to the class's lower bound, so the head -
// if any - is guaranteed to fit. Larger classes use first-fit followed
// by a bounded best-fit scan of up to lookahead(reqSize) further
// successors.
func (a *Allocator) searchList(cls int, reqSize int64) addr {
	head := a.listHead(cls)
	if head == 0 {
		return 0
	}
	if cls < classSmallBound {
		return head
	}

	cur := head
	var first addr
	for {
		if int64(a.blockSize(cur)) >= reqSize {
			first = cur
			break
		}
		cur = a.linkNext(cur)
		if cur == head {
			return 0
		}
	}

	best := first
	bestSize := a.blockSize(first)
	cur = a.linkNext(first)
	k := lookahead(reqSize)
	for i := 0; i < k && cur != head; i++ {
		if sz := a.blockSize(cur); int64(sz) >= reqSize && sz < bestSize {
			best, bestSize = cur, sz
		}
		cur = a.linkNext(cur)
	}
	return best
}

// lookahead bounds the best-fit scan past the first fit. Larger
// requests get a shorter scan: once a request needs more than 16 bits
// (64 KiB or more) there are few enough blocks of that size resident that
// spending the full ten-successor scan rarely improves on first-fit.
func lookahead(reqSize int64) int {
	if mathutil.BitLen(int(reqSize)) > 16 {
		return 5
	}
	return 10
}

// found removes a whole free block from its list, marks it allocated
// and returns its address. Used when the residual after a potential
// carve would be too small to be worth splitting off.
func (a *Allocator) found(b addr) addr {
	a.flDelete(b)
	a.writeHeader(b, a.readHeader(b)|flagAlloc)
	a.blockMark(b)
	return b
}

// place decides, for a block found on a free list, whether to hand it
// over whole or carve an allocated prefix of reqSize bytes off it,
// freeing the remainder when that remainder is at least 16 bytes (the
// minimum viable block: 8 bytes of header+footer overhead plus an
// 8 byte payload).
func (a *Allocator) place(b addr, reqSize int64) addr {
	residual := int64(a.blockSize(b)) - reqSize
	if residual >= 16 {
		return a.carve(b, reqSize, residual-8)
	}
	return a.found(b)
}
