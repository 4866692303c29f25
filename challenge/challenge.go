// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package challenge

import (
	"encoding/binary"
	"fmt"

	"github.com/bitmark-inc/replierd/fault"
)

// byte sizes for various fields
const (
	SeedSize       = 8 // random value chosen by the challenger
	DifficultySize = 1 // exact number of leading zero bits
	NonceSize      = 8 // 64-bit value found by searching
	ScoreSize      = 4 // running score kept by the challenger
)

// offsets of the fields
const (
	seedOffset       = 0
	difficultyOffset = seedOffset + SeedSize

	responseSeedOffset  = 0
	responseNonceOffset = responseSeedOffset + SeedSize

	// to set size of the arrays
	ChallengeSize = difficultyOffset + DifficultySize
	ResponseSize  = responseNonceOffset + NonceSize
)

// PackedChallenge - use fix size array to simplify validation
type PackedChallenge [ChallengeSize]byte

// PackedResponse - fixed size outbound message
type PackedResponse [ResponseSize]byte

// Challenge - the unpacked challenge
type Challenge struct {
	Seed       uint64 `json:"seed,string"`
	Difficulty uint8  `json:"difficulty"`
}

// Response - seed echoed back with the nonce that satisfies it
type Response struct {
	Seed  uint64 `json:"seed,string"`
	Nonce uint64 `json:"nonce,string"`
}

// Score - informational value sent by the challenger
type Score uint32

// Unpack - validate and decode a challenge message
func Unpack(buffer []byte) (Challenge, error) {
	if ChallengeSize != len(buffer) {
		return Challenge{}, fault.ErrInvalidChallengeLength
	}
	packed := PackedChallenge{}
	copy(packed[:], buffer)
	return packed.Unpack(), nil
}

// Unpack - turn a byte array into a record
func (record PackedChallenge) Unpack() Challenge {
	return Challenge{
		Seed:       binary.LittleEndian.Uint64(record[seedOffset:]),
		Difficulty: record[difficultyOffset],
	}
}

// Pack - turn a record into an array of bytes
func (c Challenge) Pack() PackedChallenge {
	buffer := PackedChallenge{}
	binary.LittleEndian.PutUint64(buffer[seedOffset:], c.Seed)
	buffer[difficultyOffset] = c.Difficulty
	return buffer
}

// String - for logging
func (c Challenge) String() string {
	return fmt.Sprintf("seed: 0x%016x  difficulty: %d", c.Seed, c.Difficulty)
}

// UnpackResponse - validate and decode a response message
func UnpackResponse(buffer []byte) (Response, error) {
	if ResponseSize != len(buffer) {
		return Response{}, fault.ErrInvalidResponseLength
	}
	return Response{
		Seed:  binary.LittleEndian.Uint64(buffer[responseSeedOffset:]),
		Nonce: binary.LittleEndian.Uint64(buffer[responseNonceOffset:]),
	}, nil
}

// Pack - turn a response into an array of bytes
func (r Response) Pack() PackedResponse {
	buffer := PackedResponse{}
	binary.LittleEndian.PutUint64(buffer[responseSeedOffset:], r.Seed)
	binary.LittleEndian.PutUint64(buffer[responseNonceOffset:], r.Nonce)
	return buffer
}

// String - for logging
func (r Response) String() string {
	return fmt.Sprintf("seed: 0x%016x  nonce: 0x%016x", r.Seed, r.Nonce)
}

// UnpackScore - decode a score message
func UnpackScore(buffer []byte) (Score, error) {
	if ScoreSize != len(buffer) {
		return 0, fault.ErrInvalidScoreLength
	}
	return Score(binary.BigEndian.Uint32(buffer)), nil
}

// Pack - turn a score into bytes, used by test challengers
func (s Score) Pack() []byte {
	buffer := make([]byte, ScoreSize)
	binary.BigEndian.PutUint32(buffer, uint32(s))
	return buffer
}
