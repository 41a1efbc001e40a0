// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package segheap

import "testing"

func TestClassOf(t *testing.T) {
	table := []struct {
		size int64
		cls  int
	}{
		{8, class4},
		{16, class5},
		{24, class6},
		{32, 7},
		{36, 7},
		{40, 8},
		{48, 9},
		{56, 10},
		{64, classSmallBound},
		{72, classSmallBound},
		{80, 12},
		{104, 12},
		{112, 13},
		{304, 13},
		{312, 14},
		{504, 14},
		{512, 15},
		{1000, 15},
		{1008, classLarge},
		{1 << 20, classLarge},
	}
	for _, e := range table {
		if g := classOf(e.size); g != e.cls {
			t.Errorf("classOf(%d) = %d, want %d", e.size, g, e.cls)
		}
	}
}

// Every class below classSmallBound must be either a fixed exact size
// (4, 5, 6) or reachable only via a request that Malloc's roundRequest
// rounds up to exactly that class's lower bound - otherwise
// searchList's fast path (take the list head on faith) would be wrong.
func TestSmallClassesAreExactFit(t *testing.T) {
	for size := int64(8); size <= 72; size += 8 {
		cls := classOf(size)
		if cls >= classSmallBound {
			continue
		}
		rounded, err := roundRequest(size)
		if err != nil {
			t.Fatal(err)
		}
		if rounded != size {
			t.Errorf("size %d (class %d): roundRequest = %d, want %d", size, cls, rounded, size)
		}
	}
}
