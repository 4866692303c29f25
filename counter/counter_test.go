// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package counter_test

import (
	"sync"
	"testing"

	"github.com/bitmark-inc/replierd/counter"
)

// test incrementing a counter
func TestCounter(t *testing.T) {

	var c1 counter.Counter

	if !c1.IsZero() {
		t.Errorf("counter is not zero at start: %d", c1.Uint64())
	}

	for i := uint64(1); i <= 5; i += 1 {
		if n := c1.Increment(); i != n {
			t.Errorf("increment returned: %d  expected: %d", n, i)
		}
	}

	if 5 != c1.Uint64() {
		t.Errorf("counter is not 5 after incrementing: %d", c1.Uint64())
	}

	if n := c1.Add(10); 15 != n {
		t.Errorf("counter is not 15 after add: %d", n)
	}

	if n := c1.Reset(); 15 != n {
		t.Errorf("reset returned: %d  expected: 15", n)
	}

	if !c1.IsZero() {
		t.Errorf("counter is not zero after reset: %d", c1.Uint64())
	}
}

// test concurrent increments are not lost
func TestConcurrentIncrement(t *testing.T) {

	var c counter.Counter

	const goroutines = 16
	const increments = 1000

	wg := sync.WaitGroup{}
	wg.Add(goroutines)
	for i := 0; i < goroutines; i += 1 {
		go func() {
			defer wg.Done()
			for j := 0; j < increments; j += 1 {
				c.Increment()
			}
		}()
	}
	wg.Wait()

	if goroutines*increments != c.Uint64() {
		t.Errorf("counter: %d  expected: %d", c.Uint64(), goroutines*increments)
	}
}
