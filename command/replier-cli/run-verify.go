// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/replierd/digest"
)

type verifyResult struct {
	Seed         uint64        `json:"seed"`
	Nonce        uint64        `json:"nonce"`
	Digest       digest.Digest `json:"digest"`
	LeadingZeros int           `json:"leading_zeros"`
	Difficulty   uint8         `json:"difficulty"`
	Valid        bool          `json:"valid"`
}

func runVerify(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	seed, err := checkNumber(c.String("seed"), ErrRequiredSeed)
	if nil != err {
		return err
	}
	nonce, err := checkNumber(c.String("nonce"), ErrRequiredNonce)
	if nil != err {
		return err
	}
	difficulty, err := checkDifficulty(c.Int("difficulty"))
	if nil != err {
		return err
	}

	result := verify(seed, nonce, difficulty)

	if m.verbose {
		fmt.Fprintf(m.e, "digest: %s  zeros: %d\n", result.Digest, result.LeadingZeros)
	}
	return printJson(m.w, result)
}

// valid only for an exact match of the leading zero count
func verify(seed uint64, nonce uint64, difficulty uint8) verifyResult {
	d := digest.New(seed, nonce)
	zeros := d.LeadingZeroBits()
	return verifyResult{
		Seed:         seed,
		Nonce:        nonce,
		Digest:       d,
		LeadingZeros: zeros,
		Difficulty:   difficulty,
		Valid:        zeros == int(difficulty),
	}
}
