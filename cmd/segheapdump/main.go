// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Segheapdump runs a short scripted allocation sequence against a
// fresh arena and prints the resulting heap layout, optionally writing
// a Snappy-compressed snapshot of the report to disk.
package main

import (
	"bytes"
	"flag"
	"log"
	"os"

	"github.com/golang/snappy"

	"github.com/segheap/segheap"
	"github.com/segheap/segheap/arena"
)

var (
	oLimit    = flag.Int64("limit", segheap.Limit, "heap size limit in bytes")
	oSnapshot = flag.String("snapshot", "", "if set, write a Snappy-compressed copy of the report here")
)

func main() {
	flag.Parse()
	log.SetFlags(log.Lshortfile)

	ar, err := arena.New(*oLimit)
	if err != nil {
		log.Fatal(err)
	}
	a, err := segheap.New(ar, segheap.Config{Limit: *oLimit})
	if err != nil {
		log.Fatal(err)
	}

	var handles [][]byte
	for _, n := range []int64{24, 8, 4096, 40, 16, 1 << 20, 32, 8} {
		p, err := a.Malloc(n)
		if err != nil {
			log.Fatal(err)
		}
		handles = append(handles, p)
	}
	for i := 1; i < len(handles); i += 2 {
		a.Free(handles[i])
	}

	if err := a.Verify(); err != nil {
		log.Fatal(err)
	}

	var buf bytes.Buffer
	if err := a.Dump(&buf); err != nil {
		log.Fatal(err)
	}
	os.Stdout.Write(buf.Bytes())

	if *oSnapshot != "" {
		compressed := snappy.Encode(nil, buf.Bytes())
		if err := os.WriteFile(*oSnapshot, compressed, 0o644); err != nil {
			log.Fatal(err)
		}
	}
}
