// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package segheap

// roundRequest maps a caller-requested byte count to the payload size
// of the block that will back it: 8-byte aligned, at least 8 bytes.
// Negative requests are rejected; Malloc(0) is legal and gets the
// minimum block, mirroring C's malloc(0) returning a unique pointer.
func roundRequest(n int64) (int64, error) {
	if n < 0 {
		return 0, &InvalidRequestError{Op: "Malloc", N: n}
	}
	size := (n + 7) &^ 7
	if size < 8 {
		size = 8
	}
	return size, nil
}

// Malloc returns a slice of at least n usable bytes, or an error if n
// is negative or satisfying the request would grow the heap past its
// configured limit. The returned slice's length is exactly n; its
// capacity may be larger, up to the backing block's full payload size.
func (a *Allocator) Malloc(n int64) ([]byte, error) {
	size, err := roundRequest(n)
	if err != nil {
		return nil, err
	}

	for cls := classOf(size); cls <= classLarge; cls++ {
		b := a.searchList(cls, size)
		if b == 0 {
			continue
		}
		bb := a.place(b, size)
		out := a.payloadSlice(bb, n)
		a.checkDebug()
		return out, nil
	}

	out, err := a.growAndAlloc(size, n)
	if err != nil {
		return nil, err
	}
	a.checkDebug()
	return out, nil
}

// growAndAlloc extends the heap by exactly enough to host one new
// block of the given payload size, placing it where the old epilog
// stood and relaying the old epilog's PFIXED/SZCLASS bookkeeping bits
// onto the new block before blockMark recomputes them for the new
// epilog that follows it.
func (a *Allocator) growAndAlloc(size, origN int64) ([]byte, error) {
	need := size + 8
	if a.heap.Size()+need > a.limit {
		return nil, &OutOfMemoryError{Op: "Malloc", Requested: need, Limit: a.limit}
	}

	start, err := a.heap.Grow(need)
	if err != nil {
		return nil, &OutOfMemoryError{Op: "Malloc", Requested: need, Limit: a.limit}
	}

	b := start - 4
	flags := a.blockFlags(b) & (flagPFixed | flagSZClass)
	a.writeHeader(b, uint32(size)|flags|flagAlloc)
	if classOf(size) >= class6 {
		a.writeHeader(b+4+addr(size), uint32(size)|flagAlloc)
	}
	a.blockMark(b)

	newEpilog := b + 8 + addr(size)
	a.writeHeader(newEpilog, a.readHeader(newEpilog)|flagAlloc)
	a.epilog = newEpilog

	return a.payloadSlice(b, origN), nil
}

// payloadSlice returns the n usable bytes of block b's payload as a
// slice sharing storage with the heap. Its capacity extends to the
// block's full payload size, which lets Free and Realloc recover the
// block's address from any slice Malloc/Realloc/Calloc ever returned,
// including a zero-length one.
func (a *Allocator) payloadSlice(b addr, n int64) []byte {
	buf := a.heap.Bytes()
	lo := b + 4 - a.base
	size := int64(a.blockSize(b))
	return buf[lo : lo+n : lo+size]
}

func (a *Allocator) checkDebug() {
	if !a.debug {
		return
	}
	if err := a.Verify(); err != nil {
		panic(err)
	}
}
