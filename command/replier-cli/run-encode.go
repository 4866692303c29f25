// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/replierd/challenge"
)

type encodeResult struct {
	Challenge string `json:"challenge"`
	Response  string `json:"response,omitempty"`
}

func runEncode(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	seed, err := checkNumber(c.String("seed"), ErrRequiredSeed)
	if nil != err {
		return err
	}
	difficulty, err := checkDifficulty(c.Int("difficulty"))
	if nil != err {
		return err
	}

	var nonce *uint64
	if "" != c.String("nonce") {
		n, err := checkNumber(c.String("nonce"), ErrRequiredNonce)
		if nil != err {
			return err
		}
		nonce = &n
	}

	return printJson(m.w, encode(challenge.Challenge{Seed: seed, Difficulty: difficulty}, nonce))
}

func encode(ch challenge.Challenge, nonce *uint64) encodeResult {
	packed := ch.Pack()
	result := encodeResult{
		Challenge: hex.EncodeToString(packed[:]),
	}
	if nil != nonce {
		response := challenge.Response{Seed: ch.Seed, Nonce: *nonce}.Pack()
		result.Response = hex.EncodeToString(response[:])
	}
	return result
}
