// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package session - challenge supersession for one connection
//
// every challenge cancels the search for the one before it and
// starts a new search bound to a fresh cancellation handle; only a
// search whose handle is still the active one may send a response
package session
