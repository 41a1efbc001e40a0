// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package segheap

// Realloc resizes a block previously returned by Malloc, Realloc or
// Calloc to hold n bytes, preserving min(old, n) bytes of content.
// Realloc(nil, n) behaves like Malloc(n); Realloc(p, 0) keeps p's block
// allocated, splitting it down to the minimum 8 byte payload when at
// least 16 bytes would be left over, and returns a zero-length slice
// over it.
func (a *Allocator) Realloc(p []byte, n int64) ([]byte, error) {
	if p == nil {
		return a.Malloc(n)
	}

	size, err := roundRequest(n)
	if err != nil {
		return nil, err
	}

	b := a.headerOf(p)
	old := int64(a.blockSize(b))

	switch {
	case size == old:
		return a.payloadSlice(b, n), nil

	case size < old:
		out := a.shrinkInPlace(b, size, n)
		a.checkDebug()
		return out, nil

	default:
		next := a.blockNext(b)
		if !a.isAlloc(next) && old+int64(a.blockSize(next))+8 >= size {
			a.flDelete(next)
			merged := old + int64(a.blockSize(next)) + 8
			out := a.growInPlace(b, merged, size, n)
			a.checkDebug()
			return out, nil
		}

		fresh, err := a.Malloc(n)
		if err != nil {
			return nil, err
		}
		copy(fresh, p)
		a.Free(p)
		return fresh, nil
	}
}

// shrinkInPlace resizes block b down to s0 payload bytes, freeing the
// remainder when it is large enough to stand as its own block. It
// reuses free2's coalescing by temporarily marking the remainder
// allocated and routing it through the normal free path, so a shrink
// that exposes a free right neighbor still merges with it.
func (a *Allocator) shrinkInPlace(b addr, s0, origN int64) []byte {
	old := int64(a.blockSize(b))
	residual := old - s0

	if residual < 16 {
		return a.payloadSlice(b, origN)
	}

	flags := a.blockFlags(b) & (flagPFixed | flagSZClass)
	a.writeHeader(b, uint32(s0)|flags|flagAlloc)
	if classOf(s0) >= class6 {
		a.writeHeader(b+4+addr(s0), uint32(s0)|flagAlloc)
	}

	right := a.blockNext(b)
	s1 := residual - 8
	a.writeHeader(right, uint32(s1)|flagAlloc)
	a.blockMark(b)
	a.blockMark(right)
	a.free2(right)

	return a.payloadSlice(b, origN)
}

// growInPlace absorbs b's already-delisted free right neighbor into b,
// forming a single block of mergedSize payload bytes, then carves it
// down to s0 if the leftover is worth splitting back off.
func (a *Allocator) growInPlace(b addr, mergedSize, s0, origN int64) []byte {
	finalSize := mergedSize
	residual := mergedSize - s0
	split := residual >= 16
	if split {
		finalSize = s0
	}

	flags := a.blockFlags(b) & (flagPFixed | flagSZClass)
	a.writeHeader(b, uint32(finalSize)|flags|flagAlloc)
	if classOf(finalSize) >= class6 {
		a.writeHeader(b+4+addr(finalSize), uint32(finalSize)|flagAlloc)
	}

	if split {
		right := a.blockNext(b)
		a.writeHeader(right, uint32(residual-8))
		a.blockMark(b)
		a.blockMark(right)
		a.flInsert(right)
	} else {
		a.blockMark(b)
	}

	return a.payloadSlice(b, origN)
}
