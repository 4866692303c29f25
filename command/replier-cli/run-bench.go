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
	"github.com/bitmark-inc/replierd/search"
	"github.com/bitmark-inc/replierd/session"
)

type benchResult struct {
	Searcher string  `json:"searcher"`
	Workers  int     `json:"workers"`
	Count    int     `json:"count"`
	Found    int     `json:"found"`
	Hashes   int64   `json:"hashes"`
	Elapsed  string  `json:"elapsed"`
	Average  string  `json:"average"`
	Rate     float64 `json:"hashes_per_second"`
}

func runBench(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	count, err := checkCount(c.Int("count"))
	if nil != err {
		return err
	}
	maxDifficulty, err := checkDifficulty(c.Int("max-difficulty"))
	if nil != err {
		return err
	}
	if 0 == maxDifficulty {
		return ErrInvalidDifficulty
	}
	workers, err := checkWorkers(c.Int("workers"))
	if nil != err {
		return err
	}

	challenges := randomChallenges(count, maxDifficulty)

	single := bench("single", 1, challenges, func(hashes metrics.Meter) session.Solver {
		return search.NewSingle(search.TimeLimit, hashes)
	})
	if m.verbose {
		fmt.Fprintf(m.e, "single: %.0f H/s\n", single.Rate)
	}

	parallel := search.NewParallel(workers, search.TimeLimit, nil, logger.New("search"))
	multiple := bench("parallel", parallel.Workers(), challenges, func(hashes metrics.Meter) session.Solver {
		return search.NewParallel(parallel.Workers(), search.TimeLimit, hashes, logger.New("search"))
	})
	if m.verbose {
		fmt.Fprintf(m.e, "parallel: %.0f H/s\n", multiple.Rate)
	}

	return printJson(m.w, []benchResult{single, multiple})
}

// difficulties are uniform in [0, maxDifficulty)
func randomChallenges(count int, maxDifficulty uint8) []challenge.Challenge {
	source := search.NewRandomSource()
	challenges := make([]challenge.Challenge, count)
	for i := range challenges {
		challenges[i] = challenge.Challenge{
			Seed:       source.Uint64(),
			Difficulty: uint8(source.Uint64() % uint64(maxDifficulty)),
		}
	}
	return challenges
}

func bench(name string, workers int, challenges []challenge.Challenge, create func(metrics.Meter) session.Solver) benchResult {
	hashes := metrics.NewMeter()
	defer hashes.Stop()

	solver := create(hashes)

	found := 0
	start := time.Now()
	for i, ch := range challenges {
		if _, ok := solver.Solve(ch, cancellation.New(uint64(i+1))); ok {
			found += 1
		}
	}
	elapsed := time.Since(start)

	result := benchResult{
		Searcher: name,
		Workers:  workers,
		Count:    len(challenges),
		Found:    found,
		Hashes:   hashes.Count(),
		Elapsed:  elapsed.String(),
	}
	if len(challenges) > 0 {
		result.Average = (elapsed / time.Duration(len(challenges))).String()
	}
	if seconds := elapsed.Seconds(); seconds > 0 {
		result.Rate = float64(result.Hashes) / seconds
	}
	return result
}
