// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package search

import (
	"time"

	"github.com/rcrowley/go-metrics"

	"github.com/bitmark-inc/replierd/cancellation"
	"github.com/bitmark-inc/replierd/challenge"
	"github.com/bitmark-inc/replierd/digest"
)

// TimeLimit - a nonce found after this is considered late by the challenger
const TimeLimit = 800 * time.Millisecond

const (
	deadlineCheckInterval = 1024   // attempts between clock reads
	meterBatch            = 0x7fff // attempts between hash rate updates
)

// Outcome - how a search ended
type Outcome int

// possible outcomes
const (
	Found Outcome = iota
	Cancelled
	TimedOut
)

func (o Outcome) String() string {
	switch o {
	case Found:
		return "found"
	case Cancelled:
		return "cancelled"
	case TimedOut:
		return "timed out"
	default:
		return "unknown"
	}
}

// Result - outcome of one search, Nonce is only valid when Found
type Result struct {
	Outcome  Outcome
	Nonce    uint64
	Attempts uint64
}

// Searcher - single worker search loop
type Searcher struct {
	source RandomSource
	hashes metrics.Meter
	now    func() time.Time
}

// NewSearcher - create a searcher drawing nonces from source,
// hashes may be nil
func NewSearcher(source RandomSource, hashes metrics.Meter) *Searcher {
	if nil == hashes {
		hashes = metrics.NilMeter{}
	}
	return &Searcher{
		source: source,
		hashes: hashes,
		now:    time.Now,
	}
}

// Search - sample nonces until one has exactly the challenge's
// leading zero bits, the handle is cancelled or the limit expires
//
// a match found after the limit is reported as TimedOut
func (s *Searcher) Search(c challenge.Challenge, h *cancellation.Handle, limit time.Duration) Result {
	start := s.now()
	target := int(c.Difficulty)
	attempts := uint64(0)

	for {
		if h.IsCancelled() {
			return s.finish(Cancelled, 0, attempts)
		}

		nonce := s.source.Uint64()
		attempts += 1
		if 0 == attempts%meterBatch {
			s.hashes.Mark(meterBatch)
		}

		if target == digest.New(c.Seed, nonce).LeadingZeroBits() {
			if s.now().Sub(start) > limit {
				return s.finish(TimedOut, 0, attempts)
			}
			return s.finish(Found, nonce, attempts)
		}

		if 0 == attempts%deadlineCheckInterval && s.now().Sub(start) > limit {
			return s.finish(TimedOut, 0, attempts)
		}
	}
}

func (s *Searcher) finish(outcome Outcome, nonce uint64, attempts uint64) Result {
	s.hashes.Mark(int64(attempts % meterBatch))
	return Result{
		Outcome:  outcome,
		Nonce:    nonce,
		Attempts: attempts,
	}
}
