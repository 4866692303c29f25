// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package search

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"time"
)

// RandomSource - supplies candidate nonces, one source per worker
type RandomSource interface {
	Uint64() uint64
}

// NewRandomSource - a fast non-cryptographic generator with a random
// initial state; not safe for concurrent use
func NewRandomSource() RandomSource {
	var b [8]byte
	if _, err := cryptorand.Read(b[:]); nil != err {
		return rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return rand.New(rand.NewSource(int64(binary.LittleEndian.Uint64(b[:]))))
}
