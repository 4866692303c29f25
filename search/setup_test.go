// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package search

import (
	"os"
	"sync"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
)

const (
	dir      = "testing"
	category = "testing"
)

// nonces for seed 1 with a known count of leading zero bits
const (
	seedOne           = 1
	seedOneZeroBits0  = 0
	seedOneZeroBits1  = 5
	seedOneZeroBits2  = 13
	seedOneZeroBits2b = 23
	seedOneZeroBits2c = 31
	seedOneZeroBits2d = 32
	seedOneZeroBits3  = 7
)

func setupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

func teardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	_ = os.RemoveAll(dir)
}

func TestMain(m *testing.M) {
	setupTestLogger()
	rc := m.Run()
	teardownTestLogger()
	os.Exit(rc)
}

// repeats a fixed list of nonces and counts the draws
type sequence struct {
	sync.Mutex
	values []uint64
	next   int
	calls  int
}

func newSequence(values ...uint64) *sequence {
	return &sequence{
		values: values,
	}
}

func (s *sequence) Uint64() uint64 {
	s.Lock()
	defer s.Unlock()
	v := s.values[s.next%len(s.values)]
	s.next += 1
	s.calls += 1
	return v
}

func (s *sequence) count() int {
	s.Lock()
	defer s.Unlock()
	return s.calls
}

// every reading advances by step
type steppingClock struct {
	t    time.Time
	step time.Duration
}

func newSteppingClock(step time.Duration) *steppingClock {
	return &steppingClock{
		t:    time.Unix(1500000000, 0),
		step: step,
	}
}

func (c *steppingClock) now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}
