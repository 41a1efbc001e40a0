// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package segheap implements a general purpose dynamic memory allocator
// over a single contiguous heap region grown on demand from a caller
// supplied Heap primitive.
//
// The heap is organized as a sequence of blocks bounded by two permanent
// sentinel blocks, a prolog and an epilog. Each block carries a 4 byte
// header (and, for larger blocks, a 4 byte footer) encoding its size and
// three status bits. Free blocks are threaded, per size class, into
// thirteen segregated doubly linked lists whose links are themselves
// 4 byte offsets relative to the heap base rather than full pointers -
// the heap this package manages is assumed to never exceed 2^32 bytes.
//
// Allocator is not safe for concurrent use. Callers that share an
// Allocator across goroutines must serialize access themselves.
package segheap
