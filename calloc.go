// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package segheap

import "math"

// Calloc returns a zeroed slice of nmemb*size bytes. It fails with
// InvalidRequestError if the product is zero, or if it overflows rather
// than silently wrapping, matching calloc's defined behavior on overflow.
func (a *Allocator) Calloc(nmemb, size int64) ([]byte, error) {
	if nmemb < 0 || size < 0 {
		return nil, &InvalidRequestError{Op: "Calloc", N: nmemb}
	}
	if nmemb == 0 || size == 0 {
		return nil, &InvalidRequestError{Op: "Calloc", N: 0}
	}
	if nmemb != 0 && size > math.MaxInt64/nmemb {
		return nil, &InvalidRequestError{Op: "Calloc", N: nmemb * size}
	}

	n := nmemb * size
	p, err := a.Malloc(n)
	if err != nil {
		return nil, err
	}
	for i := range p {
		p[i] = 0
	}
	return p, nil
}
