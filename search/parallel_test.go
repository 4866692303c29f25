// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package search

import (
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/rcrowley/go-metrics"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/replierd/cancellation"
	"github.com/bitmark-inc/replierd/challenge"
	"github.com/bitmark-inc/replierd/digest"
)

func TestCompletionAcceptsFirstOffer(t *testing.T) {
	c := newCompletion()

	assert.True(t, c.offer(11), "first offer")
	assert.False(t, c.offer(12), "second offer")

	// still refused after the result was taken
	assert.Equal(t, uint64(11), <-c.result, "result")
	assert.False(t, c.offer(13), "offer after result taken")
}

func TestCompletionConcurrentOffers(t *testing.T) {
	c := newCompletion()

	const offers = 32
	accepted := make(chan uint64, offers)
	wg := sync.WaitGroup{}
	wg.Add(offers)
	for i := 0; i < offers; i += 1 {
		go func(n uint64) {
			defer wg.Done()
			if c.offer(n) {
				accepted <- n
			}
		}(uint64(i))
	}
	wg.Wait()
	close(accepted)

	count := 0
	for n := range accepted {
		count += 1
		assert.Equal(t, n, <-c.result, "accepted value differs from slot")
	}
	assert.Equal(t, 1, count, "accepted offers")
}

func TestParallelWorkerCount(t *testing.T) {
	p := NewParallel(0, TimeLimit, nil, logger.New(category))
	assert.Equal(t, runtime.NumCPU(), p.Workers(), "default workers")

	p.SetWorkers(3)
	assert.Equal(t, 3, p.Workers(), "set workers")

	p.SetWorkers(-1)
	assert.Equal(t, runtime.NumCPU(), p.Workers(), "negative workers")
}

func TestParallelFirstResultWins(t *testing.T) {
	p := NewParallel(4, TimeLimit, nil, logger.New(category))

	candidates := []uint64{seedOneZeroBits2, seedOneZeroBits2b, seedOneZeroBits2c, seedOneZeroBits2d}
	lock := sync.Mutex{}
	next := 0
	p.newSource = func() RandomSource {
		lock.Lock()
		defer lock.Unlock()
		s := newSequence(seedOneZeroBits0, candidates[next])
		next += 1
		return s
	}

	h := cancellation.New(1)
	nonce, found := p.Search(challenge.Challenge{Seed: seedOne, Difficulty: 2}, h, TimeLimit)

	assert.True(t, found, "found")
	assert.Contains(t, candidates, nonce, "nonce from a worker")
	assert.False(t, h.IsCancelled(), "success must not cancel the caller's handle")
}

func TestParallelReturnsAfterAllWorkersExit(t *testing.T) {
	const workers = 8
	p := NewParallel(workers, TimeLimit, nil, logger.New(category))

	lock := sync.Mutex{}
	sources := []*sequence{}
	p.newSource = func() RandomSource {
		lock.Lock()
		defer lock.Unlock()
		s := newSequence(seedOneZeroBits0)
		if 0 == len(sources) {
			s = newSequence(seedOneZeroBits0, seedOneZeroBits0, seedOneZeroBits2)
		}
		sources = append(sources, s)
		return s
	}

	for i := 0; i < 50; i += 1 {
		lock.Lock()
		sources = sources[:0]
		lock.Unlock()
		hashes := metrics.NewMeter()
		p.hashes = hashes

		nonce, found := p.Search(challenge.Challenge{Seed: seedOne, Difficulty: 2}, cancellation.New(uint64(i+1)), TimeLimit)
		assert.True(t, found, "%d: found", i)
		assert.Equal(t, uint64(seedOneZeroBits2), nonce, "%d: nonce", i)

		// every worker marks its remaining attempts as it exits
		total := 0
		lock.Lock()
		for _, s := range sources {
			total += s.count()
		}
		lock.Unlock()
		assert.Equal(t, int64(total), hashes.Count(), "%d: attempts not marked by a running worker", i)
		hashes.Stop()
	}
}

func TestParallelRandomSearch(t *testing.T) {
	hashes := metrics.NewMeter()
	defer hashes.Stop()

	p := NewParallel(4, TimeLimit, hashes, logger.New(category))
	c := challenge.Challenge{Seed: 0x0123456789abcdef, Difficulty: 6}

	nonce, found := p.Search(c, cancellation.New(1), 30*time.Second)

	assert.True(t, found, "found")
	assert.Equal(t, int(c.Difficulty), digest.New(c.Seed, nonce).LeadingZeroBits(), "zero bits")
	assert.True(t, hashes.Count() > 0, "hash meter not updated")
}

func TestParallelUnreachableDifficulty(t *testing.T) {
	p := NewParallel(4, TimeLimit, nil, logger.New(category))

	limit := 50 * time.Millisecond
	start := time.Now()
	nonce, found := p.Search(challenge.Challenge{Seed: 99, Difficulty: 64}, cancellation.New(1), limit)
	elapsed := time.Since(start)

	assert.False(t, found, "found")
	assert.Equal(t, uint64(0), nonce, "nonce")
	assert.True(t, elapsed >= limit, "returned before the limit: %s", elapsed)
	assert.True(t, elapsed < 2*time.Second, "took too long: %s", elapsed)
}

func TestParallelCancelledHandle(t *testing.T) {
	p := NewParallel(4, TimeLimit, nil, logger.New(category))

	h := cancellation.New(1)
	h.Cancel()

	_, found := p.Search(challenge.Challenge{Seed: seedOne, Difficulty: 2}, h, time.Hour)
	assert.False(t, found, "found on a cancelled handle")
}

func TestParallelCancelDuringSearch(t *testing.T) {
	p := NewParallel(4, time.Hour, nil, logger.New(category))
	h := cancellation.New(1)

	done := make(chan bool, 1)
	go func() {
		_, found := p.Solve(challenge.Challenge{Seed: seedOne, Difficulty: 200}, h)
		done <- found
	}()

	time.Sleep(20 * time.Millisecond)
	h.Cancel()

	select {
	case found := <-done:
		assert.False(t, found, "found")
	case <-time.After(5 * time.Second):
		t.Fatal("parallel search did not stop after cancel")
	}
}

func TestSingleSolve(t *testing.T) {
	s := NewSingle(TimeLimit, nil)
	s.newSource = func() RandomSource {
		return newSequence(seedOneZeroBits1, seedOneZeroBits3, seedOneZeroBits2)
	}

	nonce, found := s.Solve(challenge.Challenge{Seed: seedOne, Difficulty: 3}, cancellation.New(1))
	assert.True(t, found, "found")
	assert.Equal(t, uint64(seedOneZeroBits3), nonce, "nonce")

	h := cancellation.New(2)
	h.Cancel()
	_, found = s.Solve(challenge.Challenge{Seed: seedOne, Difficulty: 3}, h)
	assert.False(t, found, "found on cancelled handle")
}
