// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package segheap

import (
	"testing"

	"github.com/segheap/segheap/memheap"
)

func newTestAllocator(t *testing.T, cap int64) *Allocator {
	t.Helper()
	h, err := memheap.New(cap)
	if err != nil {
		t.Fatal(err)
	}
	a, err := New(h, Config{Limit: cap})
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestOffsetRoundTrip(t *testing.T) {
	a := newTestAllocator(t, 1<<16)

	for _, p := range []addr{a.base, a.base + 8, a.base + 4096} {
		o := a.encodeOffset(p)
		if g := a.decodeOffset(o); g != p {
			t.Errorf("decodeOffset(encodeOffset(%d)) = %d, want %d", p, g, p)
		}
	}
}

func TestOffsetZeroIsNoBlock(t *testing.T) {
	a := newTestAllocator(t, 1<<16)

	if g := a.encodeOffset(0); g != 0 {
		t.Errorf("encodeOffset(0) = %d, want 0", g)
	}
	if g := a.decodeOffset(0); g != 0 {
		t.Errorf("decodeOffset(0) = %d, want 0", g)
	}
}
