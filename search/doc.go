// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package search - nonce search for a challenge
//
// a Searcher samples random nonces until one gives a digest with
// exactly the required leading zero bits; Parallel races several
// Searchers on one challenge and keeps the first nonce found
package search
