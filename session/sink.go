// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package session

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/replierd/cancellation"
	"github.com/bitmark-inc/replierd/challenge"
)

// ResponseSink - serialises responses onto the single outbound writer
type ResponseSink struct {
	sync.Mutex
	writer Writer
	log    *logger.L
}

// NewResponseSink - wrap a writer
func NewResponseSink(writer Writer, log *logger.L) *ResponseSink {
	return &ResponseSink{
		writer: writer,
		log:    log,
	}
}

// Deliver - write the response if h is still the session's active
// handle; the check is repeated under the session lock so a newer
// challenge cannot slip in between the check and the write
func (r *ResponseSink) Deliver(seed uint64, nonce uint64, h *cancellation.Handle, s *Session) bool {
	if !s.IsActive(h) {
		return false
	}

	r.Lock()
	defer r.Unlock()

	s.RLock()
	defer s.RUnlock()

	if !s.isActive(h) {
		r.log.Debugf("generation: %d  superseded while waiting to write", h.Generation())
		return false
	}

	response := challenge.Response{
		Seed:  seed,
		Nonce: nonce,
	}
	if err := r.writer.WriteResponse(response); nil != err {
		r.log.Errorf("generation: %d  write response error: %s", h.Generation(), err)
		return false
	}

	r.log.Infof("generation: %d  sent: %s", h.Generation(), response)
	return true
}
