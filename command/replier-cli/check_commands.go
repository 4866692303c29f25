// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"strconv"

	"github.com/bitmark-inc/replierd/digest"
	"github.com/bitmark-inc/replierd/fault"
)

var (
	ErrInvalidDifficulty = fault.InvalidError("difficulty must be 0 to 255")
	ErrInvalidCount      = fault.InvalidError("count must be positive")
	ErrInvalidNumber     = fault.InvalidError("invalid number")
	ErrRequiredNonce     = fault.InvalidError("nonce is required")
	ErrRequiredSeed      = fault.InvalidError("seed is required")
)

// decimal, 0x hex, 0o octal or 0b binary 64 bit value
func checkNumber(s string, missing error) (uint64, error) {
	if "" == s {
		return 0, missing
	}
	n, err := strconv.ParseUint(s, 0, 64)
	if nil != err {
		return 0, ErrInvalidNumber
	}
	return n, nil
}

func checkDifficulty(d int) (uint8, error) {
	if d < 0 || d > digest.MaximumLeadingZeros-1 {
		return 0, ErrInvalidDifficulty
	}
	return uint8(d), nil
}

func checkCount(n int) (int, error) {
	if n <= 0 {
		return 0, ErrInvalidCount
	}
	return n, nil
}

// zero selects one worker per CPU
func checkWorkers(n int) (int, error) {
	if n < 0 {
		return 0, fault.ErrInvalidWorkerCount
	}
	return n, nil
}
