// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package search

import (
	"sync/atomic"
)

// single slot that accepts only the first nonce offered
type completion struct {
	taken  uint32
	result chan uint64
}

func newCompletion() *completion {
	return &completion{
		result: make(chan uint64, 1),
	}
}

// offer never blocks; false means another worker got there first
func (c *completion) offer(nonce uint64) bool {
	if !atomic.CompareAndSwapUint32(&c.taken, 0, 1) {
		return false
	}
	c.result <- nonce
	return true
}
