// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package segheap

import "encoding/binary"

// Free block links live in the first 8 bytes of the block's payload:
// a 4 byte prev offset followed by a 4 byte next offset, both encoded
// through the offset codec.

func (a *Allocator) linkPrev(b addr) addr {
	return a.decodeOffset(binary.BigEndian.Uint32(a.bytesAt(b+4, 4)))
}

func (a *Allocator) linkNext(b addr) addr {
	return a.decodeOffset(binary.BigEndian.Uint32(a.bytesAt(b+8, 4)))
}

func (a *Allocator) setLinkPrev(b, p addr) {
	binary.BigEndian.PutUint32(a.bytesAt(b+4, 4), a.encodeOffset(p))
}

func (a *Allocator) setLinkNext(b, n addr) {
	binary.BigEndian.PutUint32(a.bytesAt(b+8, 4), a.encodeOffset(n))
}

func (a *Allocator) listHead(cls int) addr {
	return a.heads[cls-class4]
}

func (a *Allocator) setListHead(cls int, h addr) {
	a.heads[cls-class4] = h
}

// flInsert adds a free block to the head of its size class's circular
// doubly linked list.
func (a *Allocator) flInsert(b addr) {
	cls := a.blockClass(b)
	head := a.listHead(cls)
	if head == 0 {
		a.setLinkPrev(b, b)
		a.setLinkNext(b, b)
		a.setListHead(cls, b)
		return
	}

	tail := a.linkPrev(head)
	a.setLinkNext(tail, b)
	a.setLinkPrev(b, tail)
	a.setLinkNext(b, head)
	a.setLinkPrev(head, b)
	a.setListHead(cls, b)
}

// flDelete removes a free block from its size class's list. b must
// currently be a member of the list for blockClass(b).
func (a *Allocator) flDelete(b addr) {
	cls := a.blockClass(b)
	prev := a.linkPrev(b)
	next := a.linkNext(b)
	if prev == b && next == b {
		a.setListHead(cls, 0)
		return
	}

	a.setLinkNext(prev, next)
	a.setLinkPrev(next, prev)
	if a.listHead(cls) == b {
		a.setListHead(cls, next)
	}
}
