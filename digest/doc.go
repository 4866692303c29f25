// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package digest - challenge nonce hashing
//
// a Keccak-256 digest over the little endian seed and nonce, and a
// count of its leading zero bits used to judge a proof
package digest
