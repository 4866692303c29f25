// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/replierd/background"
	"github.com/bitmark-inc/replierd/fault"
	"github.com/bitmark-inc/replierd/search"
	"github.com/bitmark-inc/replierd/session"
	"github.com/bitmark-inc/replierd/statistics"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		exitwithstatus.Message("%s: version: %s", program, version)
	}

	if len(options["help"]) > 0 {
		exitwithstatus.Message(usage, program)
	}

	// these commands don't require the configuration
	if len(arguments) > 0 {
		if processSetupCommand(program, arguments) {
			return
		}
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]

	watcherChannel := newWatcherChannel()
	reader := newConfigReader(configurationFile, watcherChannel)

	err = reader.FirstRefresh()
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// a successful first refresh always leaves a configuration behind
	masterConfiguration, err := reader.GetConfig()
	fault.PanicIfError("configuration after first refresh", err)

	// start logging
	if err = logger.Initialise(masterConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	if err = fault.Initialise(); nil != err {
		exitwithstatus.Message("%s: fault setup failed with error: %s", program, err)
	}
	defer fault.Finalise()

	err = reader.SetLog(logger.New(ReaderLoggerPrefix))
	if nil != err {
		exitwithstatus.Message("%s: new logger '%s' failed with error: %s", program, ReaderLoggerPrefix, err)
	}

	watcher, err := newFileWatcher(configurationFile, logger.New(FileWatcherLoggerPrefix), watcherChannel)
	if nil != err {
		fault.Criticalf("file watcher setup failed with error: %s", err)
		exitwithstatus.Message("%s: file watcher setup failed with error: %s", program, err)
	}

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("shutting down…")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("masterConfiguration: %v", masterConfiguration)

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != masterConfiguration.PidFile {
		lockFile, err := os.OpenFile(masterConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			fault.Criticalf("PID file: %q creation failed, error: %s", masterConfiguration.PidFile, err)
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, masterConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(masterConfiguration.PidFile)
	}

	stats := statistics.New(logger.New("statistics"))

	// select the nonce search
	var solver session.Solver
	if masterConfiguration.Proofing.Parallel {
		parallel := search.NewParallel(reader.OptimalThreadCount(), masterConfiguration.timeLimit(), stats.Hashes(), logger.New("search"))
		reader.SetWorkerPool(parallel)
		solver = parallel
		log.Infof("parallel search  workers: %d", parallel.Workers())
	} else {
		solver = search.NewSingle(masterConfiguration.timeLimit(), stats.Hashes())
		log.Info("single search")
	}
	log.Infof("time limit: %s", masterConfiguration.timeLimit())

	// start background processes
	processes := background.Processes{
		watcher,
		reader,
		statistics.NewReporter(stats, masterConfiguration.reportInterval()),
		newClient(masterConfiguration, solver, stats, logger.New(clientLoggerPrefix)),
	}
	bg := background.Start(processes, nil)
	defer bg.Stop()

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down...\n")
	}
}
