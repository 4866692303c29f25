// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package session

//go:generate mockgen -source=session.go -destination=mocks/session.go -package=mocks

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/replierd/cancellation"
	"github.com/bitmark-inc/replierd/challenge"
	"github.com/bitmark-inc/replierd/counter"
	"github.com/bitmark-inc/replierd/fault"
)

// Solver - searches for a nonce until found, cancelled or out of time
type Solver interface {
	Solve(challenge.Challenge, *cancellation.Handle) (uint64, bool)
}

// Writer - the outbound side of the connection
type Writer interface {
	WriteResponse(challenge.Response) error
}

// Recorder - receives session events for statistics
type Recorder interface {
	Challenge(challenge.Challenge)
	Delivered(challenge.Response)
	Discarded(generation uint64)
	Missed(generation uint64)
}

// State - session state
type State int

// possible states
const (
	Idle State = iota
	Searching
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Searching:
		return "searching"
	default:
		return "unknown"
	}
}

// Session - the current challenge and its cancellation handle
type Session struct {
	sync.RWMutex
	generation counter.Counter
	state      State
	active     *cancellation.Handle
	current    challenge.Challenge
	closed     bool

	solver   Solver
	sink     *ResponseSink
	recorder Recorder
	log      *logger.L
	running  sync.WaitGroup
}

// New - create an idle session writing responses to writer
func New(solver Solver, writer Writer, recorder Recorder, log *logger.L) *Session {
	return &Session{
		state:    Idle,
		solver:   solver,
		sink:     NewResponseSink(writer, log),
		recorder: recorder,
		log:      log,
	}
}

// Submit - supersede any search in progress and start searching for c
//
// the previous search is only flagged, it stops at its next check
func (s *Session) Submit(c challenge.Challenge) (uint64, error) {
	s.Lock()
	if s.closed {
		s.Unlock()
		return 0, fault.ErrSessionClosed
	}

	if nil != s.active && Searching == s.state {
		s.log.Debugf("generation: %d  superseded", s.active.Generation())
	}
	if nil != s.active {
		s.active.Cancel()
	}

	g := s.generation.Increment()
	h := cancellation.New(g)
	s.active = h
	s.current = c
	s.state = Searching
	s.running.Add(1)
	s.Unlock()

	s.log.Infof("generation: %d  %s", g, c)
	s.recorder.Challenge(c)

	go s.search(c, h)

	return g, nil
}

// background search for one generation
func (s *Session) search(c challenge.Challenge, h *cancellation.Handle) {
	defer s.running.Done()

	nonce, found := s.solver.Solve(c, h)
	s.complete(c, h, nonce, found)
}

func (s *Session) complete(c challenge.Challenge, h *cancellation.Handle, nonce uint64, found bool) {
	delivered := false
	if found {
		delivered = s.sink.Deliver(c.Seed, nonce, h, s)
	}

	// the outcome is classified under the lock so a Submit racing with
	// this completion cannot have its predecessor counted as missed
	s.Lock()
	active := s.isActive(h)
	if s.active == h {
		s.state = Idle
	}
	s.Unlock()

	switch {
	case delivered:
		s.recorder.Delivered(challenge.Response{Seed: c.Seed, Nonce: nonce})
	case !active:
		s.log.Debugf("generation: %d  stale result discarded", h.Generation())
		s.recorder.Discarded(h.Generation())
	case !found:
		s.log.Infof("generation: %d  no nonce found", h.Generation())
		s.recorder.Missed(h.Generation())
	default:
		// write failed on the active generation
		s.recorder.Discarded(h.Generation())
	}
}

// IsActive - true if h belongs to the current generation and has not
// been cancelled
func (s *Session) IsActive(h *cancellation.Handle) bool {
	s.RLock()
	defer s.RUnlock()
	return s.isActive(h)
}

// caller must hold a lock
func (s *Session) isActive(h *cancellation.Handle) bool {
	return !s.closed && s.active == h && !h.IsCancelled()
}

// State - current state
func (s *Session) State() State {
	s.RLock()
	defer s.RUnlock()
	return s.state
}

// Generation - number of challenges submitted
func (s *Session) Generation() uint64 {
	return s.generation.Uint64()
}

// Current - the latest challenge, false if none was received
func (s *Session) Current() (challenge.Challenge, bool) {
	s.RLock()
	defer s.RUnlock()
	return s.current, nil != s.active
}

// Wait - wait for every search started so far to finish
func (s *Session) Wait() {
	s.running.Wait()
}

// Close - cancel the active search and wait for all searches to exit,
// no further challenges are accepted
func (s *Session) Close() {
	s.Lock()
	s.closed = true
	if nil != s.active {
		s.active.Cancel()
	}
	s.state = Idle
	s.Unlock()

	s.Wait()
	s.log.Infof("closed after %d challenges", s.Generation())
}
