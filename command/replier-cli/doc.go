// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Offline tools for the proof-of-work replier
//
// solve, verify and encode single challenges and measure search
// throughput without a challenge server
package main
