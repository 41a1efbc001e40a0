// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package driver aliases segheap's Malloc/Free/Realloc/Calloc to a
// single process-wide Allocator over a single process-wide arena, the
// way a C program's driver redirects the standard allocation names
// (#define malloc mm_malloc) to a custom implementation.
package driver

import (
	"io"
	"sync"

	"github.com/segheap/segheap"
	"github.com/segheap/segheap/arena"
)

var (
	once sync.Once
	a    *segheap.Allocator
	ar   *arena.Arena
	err  error
)

// Config configures the process-wide allocator lazily built on first
// use by Malloc/Free/Realloc/Calloc. Set it before the first call;
// changing it afterward has no effect.
var Config segheap.Config

func ensure() {
	once.Do(func() {
		limit := Config.Limit
		if limit <= 0 {
			limit = segheap.Limit
		}
		ar, err = arena.New(limit)
		if err != nil {
			return
		}
		a, err = segheap.New(ar, Config)
	})
}

// Malloc is segheap's (*Allocator).Malloc against the process-wide
// allocator.
func Malloc(n int64) ([]byte, error) {
	ensure()
	if err != nil {
		return nil, err
	}
	return a.Malloc(n)
}

// Free is segheap's (*Allocator).Free against the process-wide
// allocator.
func Free(p []byte) {
	ensure()
	if err != nil {
		return
	}
	a.Free(p)
}

// Realloc is segheap's (*Allocator).Realloc against the process-wide
// allocator.
func Realloc(p []byte, n int64) ([]byte, error) {
	ensure()
	if err != nil {
		return nil, err
	}
	return a.Realloc(p, n)
}

// Calloc is segheap's (*Allocator).Calloc against the process-wide
// allocator.
func Calloc(nmemb, size int64) ([]byte, error) {
	ensure()
	if err != nil {
		return nil, err
	}
	return a.Calloc(nmemb, size)
}

// Dump writes the process-wide allocator's current heap layout. It
// returns an error if the allocator failed to initialize.
func Dump(w io.Writer) error {
	ensure()
	if err != nil {
		return err
	}
	return a.Dump(w)
}

// Verify runs the process-wide allocator's structural validator.
func Verify() error {
	ensure()
	if err != nil {
		return err
	}
	return a.Verify()
}
