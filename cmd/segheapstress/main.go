// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Segheapstress soak-tests the allocator: it drives Malloc/Realloc/
// Free against a live arena under randomized load, running
// Verify between rounds to catch the first structural defect at the
// round it was introduced rather than at process exit.
package main

import (
	"flag"
	"log"
	"log/syslog"
	"math/rand"
	"time"

	"github.com/segheap/segheap"
	"github.com/segheap/segheap/arena"
)

var (
	oLimit  = flag.Int64("limit", segheap.Limit, "heap size limit in bytes")
	oSeed   = flag.Int64("seed", 1, "random seed")
	oRounds = flag.Int("rounds", 200, "number of soak rounds")
	oTarget = flag.Int("target", 2000, "target live allocation count")
	oMax    = flag.Int("max", 1<<14, "maximum single allocation size")
)

func openSyslog() *log.Logger {
	slg, err := syslog.NewLogger(syslog.LOG_USER|syslog.LOG_DEBUG, log.Lshortfile)
	if err != nil {
		return log.New(log.Writer(), "", log.Lshortfile)
	}
	return slg
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lshortfile)
	slg := openSyslog()
	slg.Print("segheapstress started")

	ar, err := arena.New(*oLimit)
	if err != nil {
		log.Fatal(err)
	}
	a, err := segheap.New(ar, segheap.Config{Limit: *oLimit})
	if err != nil {
		log.Fatal(err)
	}

	rng := rand.New(rand.NewSource(*oSeed))
	var live [][]byte

	t0 := time.Now()
	for round := 0; round < *oRounds; round++ {
		for len(live) < *oTarget {
			n := int64(rng.Intn(*oMax + 1))
			p, err := a.Malloc(n)
			if err != nil {
				log.Fatal(err)
			}
			for i := range p {
				p[i] = byte(round)
			}
			live = append(live, p)
		}

		for nrealloc := len(live) / 4; nrealloc != 0; nrealloc-- {
			i := rng.Intn(len(live))
			n := int64(rng.Intn(*oMax + 1))
			p, err := a.Realloc(live[i], n)
			if err != nil {
				log.Fatal(err)
			}
			live[i] = p
		}

		for ndel := len(live) / 3; ndel != 0; ndel-- {
			if len(live) < 2 {
				break
			}
			i := rng.Intn(len(live))
			a.Free(live[i])
			last := len(live) - 1
			live[i] = live[last]
			live = live[:last]
		}

		if err := a.Verify(); err != nil {
			log.Fatal(err)
		}

		if round%20 == 0 {
			slg.Printf("round %d: %d live allocations, %d byte heap", round, len(live), ar.Size())
		}
	}

	slg.Printf("segheapstress finished %d rounds in %s, final heap %d bytes", *oRounds, time.Since(t0), ar.Size())
}
