// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package segheap

import "testing"

func TestFreeListInsertDeleteSymmetry(t *testing.T) {
	a := newTestAllocator(t, 1<<16)

	var p [4][]byte
	var err error
	for i := range p {
		p[i], err = a.Malloc(40)
		if err != nil {
			t.Fatal(err)
		}
	}
	blocks := [4]addr{
		a.headerOf(p[0]), a.headerOf(p[1]), a.headerOf(p[2]), a.headerOf(p[3]),
	}
	cls := a.blockClass(blocks[0])

	for _, b := range blocks {
		a.writeHeader(b, a.blockFlags(b)&(flagPFixed|flagSZClass)|uint32(a.blockSize(b)))
		a.flInsert(b)
	}

	seen := map[addr]bool{}
	cur := a.listHead(cls)
	head := cur
	for i := 0; i < 4; i++ {
		if seen[cur] {
			t.Fatalf("list cycle shorter than 4 at %d", cur)
		}
		seen[cur] = true
		if a.linkPrev(a.linkNext(cur)) != cur {
			t.Fatalf("asymmetric link around %d", cur)
		}
		cur = a.linkNext(cur)
	}
	if cur != head {
		t.Fatalf("list did not close after 4 nodes, landed on %d want %d", cur, head)
	}
	for _, b := range blocks {
		if !seen[b] {
			t.Errorf("block %d missing from free list", b)
		}
	}

	a.flDelete(blocks[1])
	if g := a.listHead(cls); g == blocks[1] {
		t.Fatal("deleted block still reachable as head")
	}
	cur = a.listHead(cls)
	for i := 0; i < 3; i++ {
		if cur == blocks[1] {
			t.Fatal("deleted block still reachable in list walk")
		}
		cur = a.linkNext(cur)
	}
	if cur != a.listHead(cls) {
		t.Fatal("list did not close after delete")
	}

	a.flDelete(blocks[0])
	a.flDelete(blocks[2])
	a.flDelete(blocks[3])
	if g := a.listHead(cls); g != 0 {
		t.Fatalf("listHead after emptying class = %d, want 0", g)
	}
}
