// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package statistics - counters for challenges, responses, score and
// hash rate, with a periodic log report
package statistics

import (
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/rcrowley/go-metrics"

	"github.com/bitmark-inc/replierd/challenge"
	"github.com/bitmark-inc/replierd/counter"
)

// metric names in the registry
const (
	challengesName = "replierd.challenges"
	deliveredName  = "replierd.delivered"
	discardedName  = "replierd.discarded"
	missedName     = "replierd.missed"
	scoreName      = "replierd.score"
	hashesName     = "replierd.hashes"
)

// Statistics - metrics for one process, shared by every connection
type Statistics struct {
	registry   metrics.Registry
	challenges metrics.Counter
	delivered  metrics.Counter
	discarded  metrics.Counter
	missed     metrics.Counter
	score      metrics.Gauge
	hashes     metrics.Meter
	scores     counter.Counter
	log        *logger.L
}

// Snapshot - values at one instant
type Snapshot struct {
	Challenges int64
	Delivered  int64
	Discarded  int64
	Missed     int64
	Score      int64
	Scores     uint64
	Hashes     int64
	HashRate   float64
}

// New - create and register all metrics
func New(log *logger.L) *Statistics {
	registry := metrics.NewRegistry()
	return &Statistics{
		registry:   registry,
		challenges: metrics.NewRegisteredCounter(challengesName, registry),
		delivered:  metrics.NewRegisteredCounter(deliveredName, registry),
		discarded:  metrics.NewRegisteredCounter(discardedName, registry),
		missed:     metrics.NewRegisteredCounter(missedName, registry),
		score:      metrics.NewRegisteredGauge(scoreName, registry),
		hashes:     metrics.NewRegisteredMeter(hashesName, registry),
		log:        log,
	}
}

// Registry - for exporting
func (s *Statistics) Registry() metrics.Registry {
	return s.registry
}

// Hashes - meter to be marked by the searchers
func (s *Statistics) Hashes() metrics.Meter {
	return s.hashes
}

// Challenge - a challenge was accepted
func (s *Statistics) Challenge(challenge.Challenge) {
	s.challenges.Inc(1)
}

// Delivered - a response was written
func (s *Statistics) Delivered(challenge.Response) {
	s.delivered.Inc(1)
}

// Discarded - a result was dropped as stale or could not be written
func (s *Statistics) Discarded(uint64) {
	s.discarded.Inc(1)
}

// Missed - no nonce was found in time
func (s *Statistics) Missed(uint64) {
	s.missed.Inc(1)
}

// Score - the challenger's score changed
func (s *Statistics) Score(score challenge.Score) {
	previous := s.score.Value()
	s.score.Update(int64(score))
	n := s.scores.Increment()

	if 1 == n || previous != int64(score) {
		s.log.Infof("score: %d  change: %+d", score, int64(score)-previous)
	}
}

// Snapshot - read all values
func (s *Statistics) Snapshot() Snapshot {
	return Snapshot{
		Challenges: s.challenges.Count(),
		Delivered:  s.delivered.Count(),
		Discarded:  s.discarded.Count(),
		Missed:     s.missed.Count(),
		Score:      s.score.Value(),
		Scores:     s.scores.Uint64(),
		Hashes:     s.hashes.Count(),
		HashRate:   s.hashes.Rate1(),
	}
}

// Report - write a snapshot to the log
func (s *Statistics) Report() {
	v := s.Snapshot()
	s.log.Infof("challenges: %d  delivered: %d  discarded: %d  missed: %d  score: %d",
		v.Challenges, v.Delivered, v.Discarded, v.Missed, v.Score)
	s.log.Infof("hashes: %d  rate: %.1f H/s", v.Hashes, v.HashRate)
}

// Reporter - background process that logs a report at intervals
type Reporter struct {
	statistics *Statistics
	interval   time.Duration
}

// NewReporter - interval must be positive
func NewReporter(statistics *Statistics, interval time.Duration) *Reporter {
	return &Reporter{
		statistics: statistics,
		interval:   interval,
	}
}

// Run - report until shutdown
func (r *Reporter) Run(args interface{}, shutdown <-chan struct{}) {
	log := r.statistics.log
	log.Info("starting…")

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-ticker.C:
			r.statistics.Report()
		}
	}

	r.statistics.Report()
	log.Info("stopped")
}
