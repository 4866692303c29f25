// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package search

import (
	"runtime"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/rcrowley/go-metrics"

	"github.com/bitmark-inc/replierd/cancellation"
	"github.com/bitmark-inc/replierd/challenge"
)

// Parallel - races several searchers on one challenge
type Parallel struct {
	sync.RWMutex
	workers   int
	limit     time.Duration
	hashes    metrics.Meter
	log       *logger.L
	newSource func() RandomSource
}

// NewParallel - workers <= 0 selects one worker per CPU
func NewParallel(workers int, limit time.Duration, hashes metrics.Meter, log *logger.L) *Parallel {
	if nil == hashes {
		hashes = metrics.NilMeter{}
	}
	p := &Parallel{
		limit:     limit,
		hashes:    hashes,
		log:       log,
		newSource: NewRandomSource,
	}
	p.SetWorkers(workers)
	return p
}

// SetWorkers - change the worker count used by later searches
func (p *Parallel) SetWorkers(workers int) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	p.Lock()
	defer p.Unlock()

	if p.workers != workers {
		p.log.Infof("workers: %d → %d", p.workers, workers)
	}
	p.workers = workers
}

// Workers - current worker count
func (p *Parallel) Workers() int {
	p.RLock()
	defer p.RUnlock()
	return p.workers
}

// Solve - search with the configured time limit
func (p *Parallel) Solve(c challenge.Challenge, h *cancellation.Handle) (uint64, bool) {
	return p.Search(c, h, p.limit)
}

// Search - start the workers sharing a child of h; the first nonce
// found cancels the rest, later results are dropped
//
// returns only after every worker has exited
//
// returns false if every worker was cancelled or ran out of time
func (p *Parallel) Search(c challenge.Challenge, h *cancellation.Handle, limit time.Duration) (uint64, bool) {
	workers := p.Workers()
	start := time.Now()

	shared := h.Child()
	slot := newCompletion()

	wg := sync.WaitGroup{}
	wg.Add(workers)

	for i := 0; i < workers; i += 1 {
		searcher := NewSearcher(p.newSource(), p.hashes)
		go func(id int) {
			defer wg.Done()

			r := searcher.Search(c, shared, limit)
			if Found != r.Outcome {
				return
			}
			if slot.offer(r.Nonce) {
				shared.Cancel()
			} else {
				p.log.Tracef("worker[%d]: late nonce: 0x%016x dropped", id, r.Nonce)
			}
		}(i)
	}

	finished := make(chan struct{})
	go func() {
		wg.Wait()
		close(finished)
	}()

	// the winner has already cancelled the shared handle so the
	// remaining workers stop at their next check
	<-finished

	select {
	case nonce := <-slot.result:
		p.logResult(c, workers, true, start)
		return nonce, true
	default:
	}
	p.logResult(c, workers, false, start)
	return 0, false
}

func (p *Parallel) logResult(c challenge.Challenge, workers int, found bool, start time.Time) {
	p.log.Debugf("%s  workers: %d  found: %t  elapsed: %s", c, workers, found, time.Since(start))
}
