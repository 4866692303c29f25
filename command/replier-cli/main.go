// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/replierd/search"
)

type metadata struct {
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	app := newApp(os.Stdout, os.Stderr)

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func newApp(w io.Writer, e io.Writer) *cli.App {

	app := cli.NewApp()
	app.Name = "replier-cli"
	app.Usage = "offline proof-of-work tools"
	app.Version = version
	app.HideVersion = true

	app.Writer = w
	app.ErrWriter = e

	seedFlag := cli.StringFlag{
		Name:  "seed, s",
		Value: "",
		Usage: "*challenge seed `NUMBER` (decimal or 0x hex)",
	}
	difficultyFlag := cli.IntFlag{
		Name:  "difficulty, d",
		Value: 0,
		Usage: " leading zero bits `COUNT`",
	}
	nonceFlag := cli.StringFlag{
		Name:  "nonce, n",
		Value: "",
		Usage: "*nonce `NUMBER` (decimal or 0x hex)",
	}
	workersFlag := cli.IntFlag{
		Name:  "workers, w",
		Value: 0,
		Usage: " parallel workers `COUNT` (0 = one per CPU)",
	}

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "solve",
			Usage:     "search for a nonce for one challenge",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				seedFlag,
				difficultyFlag,
				workersFlag,
				cli.DurationFlag{
					Name:  "time-limit, t",
					Value: search.TimeLimit,
					Usage: " give up after `DURATION`",
				},
			},
			Action: runSolve,
		},
		{
			Name:      "verify",
			Usage:     "show the digest of a seed and nonce",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				seedFlag,
				nonceFlag,
				difficultyFlag,
			},
			Action: runVerify,
		},
		{
			Name:      "encode",
			Usage:     "show the binary messages for a challenge and response",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				seedFlag,
				difficultyFlag,
				cli.StringFlag{
					Name:  "nonce, n",
					Value: "",
					Usage: " nonce `NUMBER` for a response message",
				},
			},
			Action: runEncode,
		},
		{
			Name:      "bench",
			Usage:     "measure single and parallel search throughput",
			ArgsUsage: " ",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "count, c",
					Value: 20,
					Usage: " challenges per searcher `COUNT`",
				},
				cli.IntFlag{
					Name:  "max-difficulty, m",
					Value: 16,
					Usage: " difficulty is random below `BITS`",
				},
				workersFlag,
			},
			Action: runBench,
		},
	}

	// set up the logger and shared data
	app.Before = func(c *cli.Context) error {
		verbose := c.GlobalBool("verbose")

		dir, err := ioutil.TempDir("", app.Name)
		if nil != err {
			return err
		}
		c.App.Metadata["log-directory"] = dir

		level := "critical"
		if verbose {
			level = "info"
		}
		err = logger.Initialise(logger.Configuration{
			Directory: dir,
			File:      app.Name + ".log",
			Size:      1048576,
			Count:     1,
			Console:   verbose,
			Levels: map[string]string{
				logger.DefaultTag: level,
			},
		})
		if nil != err {
			return err
		}

		c.App.Metadata["config"] = &metadata{
			verbose: verbose,
			e:       c.App.ErrWriter,
			w:       c.App.Writer,
		}
		return nil
	}

	app.After = func(c *cli.Context) error {
		if _, ok := c.App.Metadata["config"]; ok {
			logger.Finalise()
		}
		if dir, ok := c.App.Metadata["log-directory"].(string); ok {
			return os.RemoveAll(dir)
		}
		return nil
	}

	return app
}
