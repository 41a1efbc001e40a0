// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package segheap

import "fmt"

// InvalidRequestError reports a request the allocator will never be able
// to satisfy regardless of available heap space: a negative size, or an
// overflowing/zero Calloc product.
type InvalidRequestError struct {
	Op string
	N  int64
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("segheap: %s: invalid request size %d", e.Op, e.N)
}

// OutOfMemoryError reports that growing the heap to satisfy a request
// would exceed Config.Limit, or that the underlying Heap failed to grow.
type OutOfMemoryError struct {
	Op        string
	Requested int64
	Limit     int64
}

func (e *OutOfMemoryError) Error() string {
	return fmt.Sprintf("segheap: %s: %d bytes requested, %d byte heap limit reached", e.Op, e.Requested, e.Limit)
}

// CorruptionKind enumerates the structural defects Verify can detect.
type CorruptionKind int

const (
	_ CorruptionKind = iota
	CorruptUnaligned
	CorruptNeighborMismatch
	CorruptFreeFlag
	CorruptListSymmetry
	CorruptOutOfBounds
	CorruptFreeAccounting
	CorruptBitmapSize
)

// CorruptionError is returned only by Verify (and, when Config.Debug is
// set, raised as a panic by the internal self check every public
// operation runs). It is
// never returned by Malloc, Free, Realloc or Calloc themselves - those
// surface failure only via InvalidRequestError/OutOfMemoryError, per the
// allocator's failure semantics. A CorruptionError indicates a
// programming defect, not a recoverable runtime condition.
type CorruptionError struct {
	Type   CorruptionKind
	Off    int64
	Detail string
}

func (e *CorruptionError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("segheap: heap corruption (kind %d) at offset %#x: %s", e.Type, e.Off, e.Detail)
	}
	return fmt.Sprintf("segheap: heap corruption (kind %d) at offset %#x", e.Type, e.Off)
}
