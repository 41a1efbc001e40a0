// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package segheap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Scenario 1: three single-byte allocations land in distinct,
// 8-aligned, class-4 blocks between prolog and epilog.
func TestScenarioThreeSmallAllocations(t *testing.T) {
	a := newTestAllocator(t, 1<<16)

	var blocks []addr
	for i := 0; i < 3; i++ {
		p, err := a.Malloc(1)
		require.NoError(t, err)
		b := a.headerOf(p)
		assert.Zero(t, (b+4-a.base)%8, "payload address not 8-aligned")
		assert.Equal(t, class4, a.blockClass(b))
		assert.True(t, a.isAlloc(b))
		for _, seen := range blocks {
			assert.NotEqual(t, seen, b, "duplicate block address")
		}
		blocks = append(blocks, b)
	}
	require.NoError(t, a.Verify())
}

// Scenario 2: freeing and reallocating the same size class reuses the
// freed address.
func TestScenarioFreedAddressReused(t *testing.T) {
	a := newTestAllocator(t, 1<<16)

	p1, err := a.Malloc(24)
	require.NoError(t, err)
	_, err = a.Malloc(24)
	require.NoError(t, err)
	b1 := a.headerOf(p1)

	a.Free(p1)
	p3, err := a.Malloc(24)
	require.NoError(t, err)
	assert.Equal(t, b1, a.headerOf(p3))
	require.NoError(t, a.Verify())
}

// Scenario 3: growing into a free right neighbor preserves content and
// the returned address.
func TestScenarioGrowInPlacePreservesContent(t *testing.T) {
	a := newTestAllocator(t, 1<<16)

	p, err := a.Malloc(100)
	require.NoError(t, err)
	for i := range p {
		p[i] = 0xAB
	}
	right, err := a.Malloc(64)
	require.NoError(t, err)
	a.Free(right)

	before := a.headerOf(p)
	grown, err := a.Realloc(p, 150)
	require.NoError(t, err)
	assert.Equal(t, before, a.headerOf(grown))
	for i := 0; i < 100; i++ {
		assert.Equal(t, byte(0xAB), grown[i], "byte %d corrupted by realloc", i)
	}
	require.NoError(t, a.Verify())
}

// Scenario 4: freeing the middle then the first of three equal-size
// neighbors coalesces the first two into one free block.
func TestScenarioCoalesceMiddleThenFirst(t *testing.T) {
	a := newTestAllocator(t, 1<<16)

	p1, err := a.Malloc(16)
	require.NoError(t, err)
	p2, err := a.Malloc(16)
	require.NoError(t, err)
	_, err = a.Malloc(16)
	require.NoError(t, err)

	b1 := a.headerOf(p1)
	a.Free(p2)
	a.Free(p1)

	assert.False(t, a.isAlloc(b1))
	assert.Equal(t, int64(40), int64(a.blockSize(b1)))
	assert.Equal(t, 8, a.blockClass(b1)) // payload 40 falls in the 37-40 bucket per the §4.3 boundary table
	require.NoError(t, a.Verify())
}

// Scenario 5: a single allocation near the heap limit succeeds; the
// next one fails.
func TestScenarioLimitReached(t *testing.T) {
	const limit = 1 << 16
	a := newTestAllocator(t, limit)

	big := limit - 24 // exactly saturates the heap: 16 bytes prolog/epilog + 8 byte header + big byte payload
	_, err := a.Malloc(int64(big))
	require.NoError(t, err)

	_, err = a.Malloc(1)
	assert.Error(t, err)
	var oom *OutOfMemoryError
	assert.ErrorAs(t, err, &oom)
}

// Scenario 6: two 300-byte requests (304-byte payloads), freed
// together, coalesce into one 616-byte free block on class 15's list.
func TestScenarioCoalesceTwoLargeBlocks(t *testing.T) {
	a := newTestAllocator(t, 1<<20)

	p1, err := a.Malloc(300)
	require.NoError(t, err)
	p2, err := a.Malloc(300)
	require.NoError(t, err)

	b1 := a.headerOf(p1)
	a.Free(p1)
	a.Free(p2)

	assert.Equal(t, int64(616), int64(a.blockSize(b1))) // 304 + 304 + 8 bytes of reclaimed header/footer
	assert.Equal(t, 15, a.blockClass(b1))               // payload 616 falls in the 505-1000 bucket per the §4.3 boundary table
	require.NoError(t, a.Verify())
}

func TestReallocSameSizeReturnsSameAddress(t *testing.T) {
	a := newTestAllocator(t, 1<<16)

	p, err := a.Malloc(40)
	require.NoError(t, err)
	before := a.headerOf(p)

	p2, err := a.Realloc(p, 40)
	require.NoError(t, err)
	assert.Equal(t, before, a.headerOf(p2))
}

func TestCallocZeroesPayload(t *testing.T) {
	a := newTestAllocator(t, 1<<16)

	p, err := a.Calloc(10, 8)
	require.NoError(t, err)
	require.Len(t, p, 80)
	for i, v := range p {
		assert.Zero(t, v, "byte %d not zeroed", i)
	}
}

func TestCallocOverflowRejected(t *testing.T) {
	a := newTestAllocator(t, 1<<16)

	_, err := a.Calloc(1<<62, 1<<62)
	require.Error(t, err)
	var ire *InvalidRequestError
	require.ErrorAs(t, err, &ire)
}

func TestFreeNilIsNoop(t *testing.T) {
	a := newTestAllocator(t, 1<<16)
	a.Free(nil)
	require.NoError(t, a.Verify())
}

func TestMallocNegativeRejected(t *testing.T) {
	a := newTestAllocator(t, 1<<16)
	_, err := a.Malloc(-1)
	require.Error(t, err)
	var ire *InvalidRequestError
	require.ErrorAs(t, err, &ire)
}
