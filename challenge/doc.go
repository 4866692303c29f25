// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package challenge - binary messages exchanged with the challenger
//
// challenge (inbound, 9 bytes):
//   [0:8]  seed, unsigned 64 bit little endian
//   [8]    required count of leading zero bits
//
// response (outbound, 16 bytes):
//   [0:8]  seed echoed, unsigned 64 bit little endian
//   [8:16] nonce, unsigned 64 bit little endian
//
// score (inbound, 4 bytes):
//   [0:4]  unsigned 32 bit big endian
package challenge
