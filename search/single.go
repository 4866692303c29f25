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
)

// Single - one worker per challenge
//
// a fresh Searcher is used for every call since a superseded search
// may still be running when the next one starts
type Single struct {
	limit     time.Duration
	hashes    metrics.Meter
	newSource func() RandomSource
}

// NewSingle - hashes may be nil
func NewSingle(limit time.Duration, hashes metrics.Meter) *Single {
	return &Single{
		limit:     limit,
		hashes:    hashes,
		newSource: NewRandomSource,
	}
}

// Solve - search with the configured time limit
func (s *Single) Solve(c challenge.Challenge, h *cancellation.Handle) (uint64, bool) {
	r := NewSearcher(s.newSource(), s.hashes).Search(c, h, s.limit)
	return r.Nonce, Found == r.Outcome
}
