// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package segheap

// Limit is the compile-time upper bound on total heap size: 100 MiB
// (0x6400000 bytes). Allocations that would grow the heap past Limit
// fail with OutOfMemoryError. It is the default used when Config.Limit
// is zero.
const Limit = 0x6400000

// addr is a byte address within the heap, always satisfying
// heap.Low() <= addr <= heap.High() for any live reference. The zero
// value denotes "no block" at the Go level; it never names a block even
// when a Heap's base is zero (memheap.MemHeap), because the lowest heap
// word is alignment padding and the prolog starts 4 bytes above it.
type addr = int64

// Heap is the collaborator segheap is built on: a monotonically
// growable byte region plus its bounds. It is the "page/sbrk primitive"
// spec treats as external. Package arena provides one implementation.
type Heap interface {
	// Grow extends the heap by n bytes (n is always a multiple of 4)
	// and returns the address of the first newly added byte - the
	// heap's previous high-water mark plus one, or Low() if the heap
	// was empty. Grow never relocates already-returned bytes; Bytes
	// reflects the full grown region on the next call.
	Grow(n int64) (addr, error)

	// Low returns the heap's fixed base address, established once and
	// never changed afterward.
	Low() addr

	// High returns the heap's current high address (the last valid
	// byte), or Low()-1 if the heap is empty.
	High() addr

	// Size returns High() - Low() + 1, or 0 if the heap is empty.
	Size() int64

	// Bytes returns a slice backing the committed region [Low, High].
	// Index 0 of the slice corresponds to address Low. The slice
	// length grows (never shrinks or relocates) as Grow is called.
	Bytes() []byte
}

// Config configures an Allocator.
type Config struct {
	// Limit overrides the default 100 MiB heap ceiling. Zero means use
	// the package Limit constant.
	Limit int64

	// Debug, when set, makes every public Allocator method call Verify
	// before returning and panic on the first structural defect found.
	// It supplements spec's mm_checkheap toggle; expensive, intended
	// for tests and cmd/segheapstress, off by default.
	Debug bool
}

// Allocator is the segregated free-list allocator. Its zero value is
// not usable; construct one with New. Allocator is not safe for
// concurrent use.
type Allocator struct {
	heap  Heap
	limit int64
	debug bool

	base   addr // heap.Low(), cached
	prolog addr
	epilog addr

	// heads[class-class4] is the head of the free list for that size
	// class, or 0 if the list is empty. Indices run class4..classLarge.
	heads [classLarge - class4 + 1]addr
}

// New creates an Allocator over heap, laying down the prolog/epilog
// sentinel pair. heap must be freshly grown (Size() == 0).
func New(heap Heap, cfg Config) (*Allocator, error) {
	if heap.Size() != 0 {
		return nil, &InvalidRequestError{Op: "New", N: heap.Size()}
	}

	limit := cfg.Limit
	if limit <= 0 {
		limit = Limit
	}

	a := &Allocator{heap: heap, limit: limit, debug: cfg.Debug}
	if err := a.init(); err != nil {
		return nil, err
	}
	return a, nil
}

// init lays down the initial 16 byte heap prefix: one word of
// alignment padding, the prolog header, a filler word consumed by the
// uniform 8-byte block-to-block span, and the epilog header. This
// mirrors mm_init's first mem_sbrk(4*WSIZE) call.
func (a *Allocator) init() error {
	start, err := a.heap.Grow(16)
	if err != nil {
		return &OutOfMemoryError{Op: "New", Requested: 16, Limit: a.limit}
	}

	a.base = a.heap.Low()
	a.writeHeader(start+4, flagAlloc)
	a.writeHeader(start+8, flagAlloc)
	a.writeHeader(start+12, flagAlloc)
	a.prolog = start + 4
	a.epilog = start + 12
	return nil
}
