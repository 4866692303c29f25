// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"strings"
	"testing"

	"github.com/bitmark-inc/replierd/fault"
)

func TestPanicIfErrorNil(t *testing.T) {
	defer func() {
		if r := recover(); nil != r {
			t.Errorf("unexpected panic: %v", r)
		}
	}()
	fault.PanicIfError("nothing", nil)
}

func TestPanicIfError(t *testing.T) {
	defer func() {
		r := recover()
		if nil == r {
			t.Fatal("expected a panic")
		}
		message, ok := r.(string)
		if !ok {
			t.Fatalf("panic value: %T  expected a string", r)
		}
		if !strings.HasPrefix(message, "configuration failed with error: ") {
			t.Errorf("panic message: %q", message)
		}
		if !strings.HasSuffix(message, fault.ErrNotInitialised.Error()) {
			t.Errorf("panic message: %q  missing cause", message)
		}
	}()
	fault.PanicIfError("configuration", fault.ErrNotInitialised)
}

// without a log channel the message goes to standard output
func TestCriticalfUninitialised(t *testing.T) {
	fault.Criticalf("value: %d", 42)
	fault.Finalise()
}
