// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package digest

import (
	"encoding/binary"
	"encoding/hex"
	"math/bits"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/replierd/fault"
)

// Length - number of bytes in the digest
const Length = 32

// MaximumLeadingZeros - leading zero bits of an all zero digest
const MaximumLeadingZeros = Length * 8

// size of the hashed record: seed followed by nonce
const inputLength = 16

// Digest - type for a digest
// stored in hash output order, the first byte is the most significant
type Digest [Length]byte

// New - create a digest from a seed and nonce
func New(seed uint64, nonce uint64) Digest {
	var input [inputLength]byte
	binary.LittleEndian.PutUint64(input[:8], seed)
	binary.LittleEndian.PutUint64(input[8:], nonce)

	h := sha3.NewLegacyKeccak256()
	h.Write(input[:])

	var digest Digest
	h.Sum(digest[:0])
	return digest
}

// LeadingZeroBits - count the zero bits before the first one bit,
// scanning from the most significant bit of the first byte
func (digest Digest) LeadingZeroBits() int {
	for i, b := range digest {
		if 0 != b {
			return i*8 + bits.LeadingZeros8(b)
		}
	}
	return MaximumLeadingZeros
}

// String - convert a binary digest to hex string for use by the fmt package (for %s)
func (digest Digest) String() string {
	return hex.EncodeToString(digest[:])
}

// GoString - convert a binary digest to hex string for use by the fmt package (for %#v)
func (digest Digest) GoString() string {
	return "<Keccak256:" + hex.EncodeToString(digest[:]) + ">"
}

// MarshalText - convert digest to hex text
func (digest Digest) MarshalText() ([]byte, error) {
	buffer := make([]byte, hex.EncodedLen(len(digest)))
	hex.Encode(buffer, digest[:])
	return buffer, nil
}

// UnmarshalText - convert hex text into a digest
func (digest *Digest) UnmarshalText(s []byte) error {
	if hex.EncodedLen(Length) != len(s) {
		return fault.ErrInvalidDigestLength
	}
	_, err := hex.Decode(digest[:], s)
	return err
}
