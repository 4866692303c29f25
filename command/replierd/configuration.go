// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/replierd/configuration"
	"github.com/bitmark-inc/replierd/fault"
	"github.com/bitmark-inc/replierd/search"
	"github.com/bitmark-inc/replierd/transport"
	"github.com/bitmark-inc/replierd/util"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultHandshakeTimeout = 10 // seconds
	defaultWriteTimeout     = 5  // seconds
	defaultReconnectDelay   = 5  // seconds
	defaultReconnectBurst   = 3
	defaultMaxCPUUsage      = 100 // percent
	defaultReportInterval   = 60  // seconds

	defaultLogDirectory = "log"
	defaultLogFile      = "replierd.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// LoglevelMap - to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		logger.DefaultTag: "critical",
	}
)

// ConnectType - challenge server and connection pacing
type ConnectType struct {
	URL              string `gluamapper:"url" json:"url"`
	HandshakeTimeout int    `gluamapper:"handshake_timeout" json:"handshake_timeout"`
	WriteTimeout     int    `gluamapper:"write_timeout" json:"write_timeout"`
	ReconnectDelay   int    `gluamapper:"reconnect_delay" json:"reconnect_delay"`
	ReconnectBurst   int    `gluamapper:"reconnect_burst" json:"reconnect_burst"`
}

// ProofingType - nonce search settings
type ProofingType struct {
	Parallel    bool `gluamapper:"parallel" json:"parallel"`
	MaxCPUUsage int  `gluamapper:"max_cpu_usage" json:"max_cpu_usage"`
	TimeLimit   int  `gluamapper:"time_limit" json:"time_limit"` // milliseconds
}

// StatisticsType - periodic report
type StatisticsType struct {
	Interval int `gluamapper:"interval" json:"interval"` // seconds
}

// Configuration - the whole configuration file
type Configuration struct {
	DataDirectory string               `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string               `gluamapper:"pidfile" json:"pidfile"`
	Connect       ConnectType          `gluamapper:"connect" json:"connect"`
	Proofing      ProofingType         `gluamapper:"proofing" json:"proofing"`
	Statistics    StatisticsType       `gluamapper:"statistics" json:"statistics"`
	Logging       logger.Configuration `gluamapper:"logging" json:"logging"`
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default

		Connect: ConnectType{
			HandshakeTimeout: defaultHandshakeTimeout,
			WriteTimeout:     defaultWriteTimeout,
			ReconnectDelay:   defaultReconnectDelay,
			ReconnectBurst:   defaultReconnectBurst,
		},

		Proofing: ProofingType{
			Parallel:    true,
			MaxCPUUsage: defaultMaxCPUUsage,
			TimeLimit:   int(search.TimeLimit / time.Millisecond),
		},

		Statistics: StatisticsType{
			Interval: defaultReportInterval,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options); err != nil {
		return nil, err
	}

	if err := transport.ValidateURL(options.Connect.URL); nil != err {
		return nil, err
	}

	if options.Proofing.TimeLimit <= 0 {
		return nil, fmt.Errorf("%w: %d ms", fault.ErrInvalidTimeLimit, options.Proofing.TimeLimit)
	}

	if options.Proofing.MaxCPUUsage <= 0 || options.Proofing.MaxCPUUsage > 100 {
		options.Proofing.MaxCPUUsage = defaultMaxCPUUsage
	}

	if options.Connect.HandshakeTimeout <= 0 {
		options.Connect.HandshakeTimeout = defaultHandshakeTimeout
	}
	if options.Connect.WriteTimeout <= 0 {
		options.Connect.WriteTimeout = defaultWriteTimeout
	}
	if options.Connect.ReconnectDelay <= 0 {
		options.Connect.ReconnectDelay = defaultReconnectDelay
	}
	if options.Connect.ReconnectBurst <= 0 {
		options.Connect.ReconnectBurst = defaultReconnectBurst
	}
	if options.Statistics.Interval <= 0 {
		options.Statistics.Interval = defaultReportInterval
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("Path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	}
	options.DataDirectory = filepath.Clean(options.DataDirectory)

	// this directory must exist - i.e. must be created prior to running
	if !util.EnsureDirectory(options.DataDirectory) {
		return nil, fmt.Errorf("Path: %q is not a directory", options.DataDirectory)
	}

	// optional absolute paths i.e. blank or an absolute path
	if "" != options.PidFile {
		options.PidFile = util.EnsureAbsolute(options.DataDirectory, options.PidFile)
	}

	// log file must be a plain name inside the log directory
	if !util.IsPlainName(options.Logging.File) {
		return nil, fmt.Errorf("Files: %q is not plain name", options.Logging.File)
	}

	// make absolute and create directories if they do not already exist
	options.Logging.Directory = util.EnsureAbsolute(options.DataDirectory, options.Logging.Directory)
	if err := os.MkdirAll(options.Logging.Directory, 0700); nil != err {
		return nil, err
	}

	// done
	return options, nil
}

func (c *Configuration) maxCPUUsage() int {
	return c.Proofing.MaxCPUUsage
}

func (c *Configuration) timeLimit() time.Duration {
	return time.Duration(c.Proofing.TimeLimit) * time.Millisecond
}

func (c *Configuration) handshakeTimeout() time.Duration {
	return time.Duration(c.Connect.HandshakeTimeout) * time.Second
}

func (c *Configuration) writeTimeout() time.Duration {
	return time.Duration(c.Connect.WriteTimeout) * time.Second
}

func (c *Configuration) reconnectDelay() time.Duration {
	return time.Duration(c.Connect.ReconnectDelay) * time.Second
}

func (c *Configuration) reportInterval() time.Duration {
	return time.Duration(c.Statistics.Interval) * time.Second
}
