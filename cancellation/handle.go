// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package cancellation - cooperative stop flag for one challenge generation
package cancellation

import (
	"sync/atomic"
)

// Handle - a write once flag shared by every search working on the
// same challenge; holders poll IsCancelled between hash attempts
type Handle struct {
	cancelled  uint32
	generation uint64
	parent     *Handle
}

// New - create a pending handle for a generation
func New(generation uint64) *Handle {
	return &Handle{
		generation: generation,
	}
}

// Child - a handle that is cancelled together with its parent,
// cancelling the child leaves the parent pending
func (h *Handle) Child() *Handle {
	return &Handle{
		generation: h.generation,
		parent:     h,
	}
}

// Cancel - set the flag, safe to call any number of times
func (h *Handle) Cancel() {
	atomic.StoreUint32(&h.cancelled, 1)
}

// IsCancelled - check this handle and all of its ancestors
func (h *Handle) IsCancelled() bool {
	for p := h; nil != p; p = p.parent {
		if 0 != atomic.LoadUint32(&p.cancelled) {
			return true
		}
	}
	return false
}

// Generation - challenge generation this handle was created for
func (h *Handle) Generation() uint64 {
	return h.generation
}
