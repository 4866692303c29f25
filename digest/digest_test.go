// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package digest_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/replierd/digest"
	"github.com/bitmark-inc/replierd/fault"
)

func TestNewDigest(t *testing.T) {
	tests := []struct {
		seed     uint64
		nonce    uint64
		expected string
		zeros    int
	}{
		{0, 0, "f490de2920c8a35fabeb13208852aa28c76f9be9b03a4dd2b3c075f7a26923b4", 0},
		{1, 2, "abda1ef4cdc7997fcd2ecabdf87c62fdb254dcd81579f0827b34f1f4f93d8f3a", 0},
		{0x1122334455667788, 99, "069e0758317b25ad49227b61e2c95b10e736007c58592e3cde1ef9bdd4ce32d9", 5},
	}

	for i, item := range tests {
		d := digest.New(item.seed, item.nonce)
		assert.Equal(t, item.expected, d.String(), "%d: digest", i)
		assert.Equal(t, item.zeros, d.LeadingZeroBits(), "%d: leading zeros", i)
	}
}

func TestDigestIsDeterministic(t *testing.T) {
	d1 := digest.New(1234, 5678)
	d2 := digest.New(1234, 5678)
	assert.Equal(t, d1, d2, "same input gives different digests")

	assert.NotEqual(t, d1, digest.New(1235, 5678), "seed change did not change digest")
	assert.NotEqual(t, d1, digest.New(1234, 5679), "nonce change did not change digest")
	assert.NotEqual(t, d1, digest.New(5678, 1234), "seed and nonce are not order sensitive")
}

func TestLeadingZeroBits(t *testing.T) {
	tests := []struct {
		first    []byte
		expected int
	}{
		{[]byte{}, 256},
		{[]byte{0x0f}, 4},
		{[]byte{0x80}, 0},
		{[]byte{0x01}, 7},
		{[]byte{0x00, 0x40}, 9},
		{[]byte{0x00, 0x00, 0x00, 0x20}, 26},
		{[]byte{0xff, 0x00}, 0},
	}

	for i, item := range tests {
		d := digest.Digest{}
		copy(d[:], item.first)
		assert.Equal(t, item.expected, d.LeadingZeroBits(), "%d: digest: %x", i, d)
	}

	last := digest.Digest{}
	last[digest.Length-1] = 0x01
	assert.Equal(t, digest.MaximumLeadingZeros-1, last.LeadingZeroBits(), "only last bit set")
}

func TestDigestText(t *testing.T) {
	d := digest.New(0, 0)
	expected := "f490de2920c8a35fabeb13208852aa28c76f9be9b03a4dd2b3c075f7a26923b4"

	assert.Equal(t, "<Keccak256:"+expected+">", fmt.Sprintf("%#v", d), "go string")

	text, err := d.MarshalText()
	assert.Nil(t, err, "marshal error")
	assert.Equal(t, expected, string(text), "marshal text")

	var d2 digest.Digest
	err = d2.UnmarshalText(text)
	assert.Nil(t, err, "unmarshal error")
	assert.Equal(t, d, d2, "unmarshal text")

	err = d2.UnmarshalText([]byte("0123"))
	assert.Equal(t, fault.ErrInvalidDigestLength, err, "short text")
}
