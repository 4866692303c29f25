// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/rcrowley/go-metrics"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/replierd/cancellation"
	"github.com/bitmark-inc/replierd/challenge"
	"github.com/bitmark-inc/replierd/digest"
	"github.com/bitmark-inc/replierd/fault"
	"github.com/bitmark-inc/replierd/search"
	"github.com/bitmark-inc/replierd/session"
)

type solveResult struct {
	Seed       uint64        `json:"seed"`
	Difficulty uint8         `json:"difficulty"`
	Found      bool          `json:"found"`
	Nonce      uint64        `json:"nonce"`
	Digest     digest.Digest `json:"digest"`
	Hashes     int64         `json:"hashes"`
	Elapsed    string        `json:"elapsed"`
}

func runSolve(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	seed, err := checkNumber(c.String("seed"), ErrRequiredSeed)
	if nil != err {
		return err
	}
	difficulty, err := checkDifficulty(c.Int("difficulty"))
	if nil != err {
		return err
	}

	workers, err := checkWorkers(c.Int("workers"))
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "seed: %d  difficulty: %d\n", seed, difficulty)
	}

	result, err := solve(challenge.Challenge{Seed: seed, Difficulty: difficulty}, workers, c.Duration("time-limit"))
	if nil != err {
		return err
	}
	return printJson(m.w, result)
}

// one search with a fresh handle, workers == 1 uses a single searcher
func solve(ch challenge.Challenge, workers int, limit time.Duration) (*solveResult, error) {
	if limit <= 0 {
		return nil, fault.ErrInvalidTimeLimit
	}

	hashes := metrics.NewMeter()
	defer hashes.Stop()

	var solver session.Solver
	if 1 == workers {
		solver = search.NewSingle(limit, hashes)
	} else {
		solver = search.NewParallel(workers, limit, hashes, logger.New("search"))
	}

	start := time.Now()
	nonce, found := solver.Solve(ch, cancellation.New(1))
	elapsed := time.Since(start)

	result := &solveResult{
		Seed:       ch.Seed,
		Difficulty: ch.Difficulty,
		Found:      found,
		Hashes:     hashes.Count(),
		Elapsed:    elapsed.String(),
	}
	if found {
		result.Nonce = nonce
		result.Digest = digest.New(ch.Seed, nonce)
	}
	return result, nil
}
