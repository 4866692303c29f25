// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"runtime"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/replierd/fault"
)

// WorkerPool - anything whose worker count follows the configuration
type WorkerPool interface {
	SetWorkers(int)
	Workers() int
}

const (
	defaultRefreshDelay = 2 * time.Second
	minThreadCount      = 1
	ReaderLoggerPrefix  = "config-reader"
)

var (
	totalCPUCount = runtime.NumCPU()
)

// ConfigReaderData - current configuration, re-read when the file changes
type ConfigReaderData struct {
	sync.RWMutex
	fileName             string
	refreshDelay         time.Duration
	log                  *logger.L
	currentConfiguration *Configuration
	pool                 WorkerPool
	watcherChannel       WatcherChannel
}

func newConfigReader(fileName string, ch WatcherChannel) *ConfigReaderData {
	return &ConfigReaderData{
		fileName:       fileName,
		refreshDelay:   defaultRefreshDelay,
		watcherChannel: ch,
	}
}

// FirstRefresh - read the file before the logger exists
func (c *ConfigReaderData) FirstRefresh() error {
	return c.Refresh()
}

// SetLog - required before Run
func (c *ConfigReaderData) SetLog(log *logger.L) error {
	if nil == log {
		return fault.ErrInvalidLoggerChannel
	}
	c.Lock()
	c.log = log
	c.Unlock()
	return nil
}

// SetWorkerPool - pool to resize after each refresh
func (c *ConfigReaderData) SetWorkerPool(pool WorkerPool) {
	c.Lock()
	c.pool = pool
	c.Unlock()
	c.notify()
}

// Run - apply configuration file changes until shutdown
func (c *ConfigReaderData) Run(args interface{}, shutdown <-chan struct{}) {
	c.log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case <-c.watcherChannel.change:
			c.log.Debugf("receive file change event, wait %s to adapt", c.refreshDelay)
			select {
			case <-shutdown:
				break loop
			case <-time.After(c.refreshDelay):
			}
			if err := c.Refresh(); nil != err {
				c.log.Errorf("failed to read configuration from: %s  error: %s", c.fileName, err)
				continue loop
			}
			c.notify()

		case <-c.watcherChannel.remove:
			c.log.Warn("config file removed, keep current configuration")
		}
	}

	c.log.Info("stopped")
}

// Refresh - parse the file and replace the current configuration
func (c *ConfigReaderData) Refresh() error {
	configuration, err := getConfiguration(c.fileName)
	if nil != err {
		return err
	}
	c.update(configuration)
	return nil
}

// GetConfig - latest successfully read configuration
func (c *ConfigReaderData) GetConfig() (*Configuration, error) {
	c.RLock()
	defer c.RUnlock()
	if nil == c.currentConfiguration {
		return nil, fault.ErrNotInitialised
	}
	return c.currentConfiguration, nil
}

func (c *ConfigReaderData) update(newConfiguration *Configuration) {
	c.Lock()
	c.currentConfiguration = newConfiguration
	log := c.log
	c.Unlock()

	if nil != log {
		log.Debugf("updating configuration, target thread count: %d", c.OptimalThreadCount())
	}
}

func (c *ConfigReaderData) notify() {
	c.RLock()
	pool := c.pool
	c.RUnlock()

	if nil == pool {
		return
	}
	n := c.OptimalThreadCount()
	if pool.Workers() != n {
		pool.SetWorkers(n)
	}
}

func (c *ConfigReaderData) updateCPUCount(count int) {
	if count > 0 {
		totalCPUCount = count
	}
}

// OptimalThreadCount - max_cpu_usage percent of the CPUs, at least one
func (c *ConfigReaderData) OptimalThreadCount() int {
	c.RLock()
	defer c.RUnlock()

	if nil == c.currentConfiguration {
		return minThreadCount
	}
	percentage := float32(c.currentConfiguration.maxCPUUsage()) / 100
	threadCount := int(float32(totalCPUCount) * percentage)

	if threadCount <= minThreadCount {
		return minThreadCount
	}

	if threadCount > totalCPUCount {
		return totalCPUCount
	}

	return threadCount
}
