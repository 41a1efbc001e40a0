// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package segheap

import (
	"fmt"
	"io"
)

// Verify walks the heap twice - once block by block from the prolog to
// the epilog, once free list by free list - and cross-checks them. It
// is expensive (O(heap size)) and intended for tests, Config.Debug and
// cmd/segheapstress, not for production use on every call.
func (a *Allocator) Verify() error {
	free := make(map[addr]bool)

	for cls := class4; cls <= classLarge; cls++ {
		head := a.listHead(cls)
		if head == 0 {
			continue
		}
		cur := head
		for {
			if cur < a.base || cur > a.heap.High() {
				return &CorruptionError{Type: CorruptOutOfBounds, Off: cur - a.base}
			}
			if (cur-a.base)%4 != 0 {
				return &CorruptionError{Type: CorruptUnaligned, Off: cur - a.base}
			}
			if a.isAlloc(cur) {
				return &CorruptionError{Type: CorruptFreeFlag, Off: cur - a.base, Detail: "list member marked allocated"}
			}
			if a.blockClass(cur) != cls {
				return &CorruptionError{Type: CorruptFreeAccounting, Off: cur - a.base, Detail: "block on wrong size class list"}
			}
			next := a.linkNext(cur)
			if a.linkPrev(next) != cur {
				return &CorruptionError{Type: CorruptListSymmetry, Off: cur - a.base}
			}
			free[cur] = true
			cur = next
			if cur == head {
				break
			}
		}
	}

	b := a.blockNext(a.prolog)
	for b != a.epilog && b != 0 {
		if b < a.base || b > a.heap.High() {
			return &CorruptionError{Type: CorruptOutOfBounds, Off: b - a.base}
		}
		next := a.blockNext(b)
		if next != a.epilog {
			if a.blockPrev(next) != b {
				return &CorruptionError{Type: CorruptNeighborMismatch, Off: b - a.base}
			}
		}
		if !a.isAlloc(b) != free[b] {
			return &CorruptionError{Type: CorruptFreeAccounting, Off: b - a.base, Detail: "free bit disagrees with list membership"}
		}
		b = next
	}

	if len(a.heads) != classLarge-class4+1 {
		return &CorruptionError{Type: CorruptBitmapSize, Off: 0, Detail: "free list head table has the wrong size"}
	}

	return nil
}

// Dump writes a line per block between the prolog and the epilog to w,
// free or allocated, in heap order, reporting its offset, payload size,
// size class and allocation state. Free lists are not listed. It supplements Verify
// with a human-readable view of heap layout, grounded on mm.c's
// optional heap-printing debug aid.
func (a *Allocator) Dump(w io.Writer) error {
	b := a.blockNext(a.prolog)
	for b != a.epilog && b != 0 {
		state := "free"
		if a.isAlloc(b) {
			state = "alloc"
		}
		if _, err := fmt.Fprintf(w, "%#08x size=%-6d class=%-2d %s\n",
			b-a.base, a.blockSize(b), a.blockClass(b), state); err != nil {
			return err
		}
		b = a.blockNext(b)
	}
	return nil
}
