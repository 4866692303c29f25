// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package transport - websocket connection to a challenge server
//
// binary messages of 9 bytes are challenges and of 4 bytes are
// scores; every other message is logged and dropped
//
// responses are written as 16 byte binary messages, one writer at a
// time
package transport
