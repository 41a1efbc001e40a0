// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package segheap

import (
	"math/rand"
	"testing"
)

// TestFuzzAllocFreeRealloc drives a bounded random sequence of
// Malloc/Free/Realloc/Calloc calls against a single allocator,
// checking Verify after every step so a structural defect is reported
// at the step that introduced it.
func TestFuzzAllocFreeRealloc(t *testing.T) {
	a := newTestAllocator(t, 1<<20)
	rng := rand.New(rand.NewSource(42))

	content := map[addr][]byte{}
	var ids []addr
	p := map[addr][]byte{}

	alloc := func(n int64) {
		var b []byte
		var err error
		if rng.Intn(4) == 0 {
			b, err = a.Calloc(1, n)
		} else {
			b, err = a.Malloc(n)
		}
		if err != nil {
			return
		}
		for i := range b {
			b[i] = byte(rng.Intn(256))
		}
		id := a.headerOf(b)
		ids = append(ids, id)
		p[id] = b
		content[id] = append([]byte(nil), b...)
	}

	for step := 0; step < 2000; step++ {
		switch {
		case len(ids) == 0 || rng.Intn(3) != 0:
			alloc(int64(rng.Intn(2000)))

		case rng.Intn(2) == 0:
			i := rng.Intn(len(ids))
			id := ids[i]
			a.Free(p[id])
			delete(p, id)
			delete(content, id)
			last := len(ids) - 1
			ids[i] = ids[last]
			ids = ids[:last]

		default:
			i := rng.Intn(len(ids))
			id := ids[i]
			n := int64(rng.Intn(2000))
			b, err := a.Realloc(p[id], n)
			if err != nil {
				continue
			}
			old := content[id]
			m := len(old)
			if len(b) < m {
				m = len(b)
			}
			for j := 0; j < m; j++ {
				if b[j] != old[j] {
					t.Fatalf("realloc step %d: byte %d corrupted, got %d want %d", step, j, b[j], old[j])
				}
			}
			delete(p, id)
			delete(content, id)
			newID := a.headerOf(b)
			ids[i] = newID
			p[newID] = b
			content[newID] = append([]byte(nil), b...)
		}

		if err := a.Verify(); err != nil {
			t.Fatalf("step %d: %v", step, err)
		}
	}

	for id, want := range content {
		got := p[id]
		for j, v := range want {
			if got[j] != v {
				t.Fatalf("final check: block %d byte %d corrupted, got %d want %d", id, j, got[j], v)
			}
		}
	}
}
