// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised     = ExistsError("already initialised")
	ErrConnectionClosed       = ProcessError("connection closed")
	ErrConnectionLost         = ProcessError("connection lost")
	ErrInvalidChallengeLength = LengthError("invalid challenge length")
	ErrInvalidDigestLength    = LengthError("invalid digest length")
	ErrInvalidLoggerChannel   = InvalidError("invalid logger channel")
	ErrInvalidResponseLength  = LengthError("invalid response length")
	ErrInvalidScoreLength     = LengthError("invalid score length")
	ErrInvalidStructPointer   = InvalidError("invalid struct pointer")
	ErrInvalidTimeLimit       = InvalidError("invalid time limit")
	ErrInvalidURL             = InvalidError("invalid url")
	ErrInvalidWorkerCount     = InvalidError("invalid worker count")
	ErrMissingURL             = NotFoundError("connect url is required")
	ErrNotInitialised         = NotFoundError("not initialised")
	ErrSessionClosed          = ProcessError("session closed")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrLength(e error) bool   { _, ok := e.(LengthError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
