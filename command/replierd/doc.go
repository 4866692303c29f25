// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Proof-of-work replier
//
// This program connects to a challenge server over a websocket,
// searches for a nonce whose Keccak-256 digest together with the
// challenge seed has the requested number of leading zero bits and
// sends it back before the server's time limit expires.  A new
// challenge always replaces the one being searched.
package main
