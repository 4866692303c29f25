// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/fsnotify/fsnotify"

	"github.com/bitmark-inc/replierd/fault"
)

const (
	FileWatcherLoggerPrefix = "file-watcher"

	// editors that save by rename briefly remove the file
	reattachDelay = 200 * time.Millisecond
)

// WatcherChannel - events delivered to the configuration reader
type WatcherChannel struct {
	change chan struct{}
	remove chan struct{}
}

func newWatcherChannel() WatcherChannel {
	return WatcherChannel{
		change: make(chan struct{}, 1),
		remove: make(chan struct{}, 1),
	}
}

// FileWatcherData - watches the configuration file
type FileWatcherData struct {
	log      *logger.L
	channel  WatcherChannel
	watcher  *fsnotify.Watcher
	filePath string
}

func newFileWatcher(targetFile string, log *logger.L, channel WatcherChannel) (*FileWatcherData, error) {
	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}

	filePath, err := filepath.Abs(filepath.Clean(targetFile))
	if nil != err {
		log.Errorf("parse file %s error: %s", targetFile, err)
		return nil, err
	}

	if _, err := os.Stat(filePath); nil != err {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		log.Errorf("new watcher with error: %s", err)
		return nil, err
	}

	if err := watcher.Add(filePath); nil != err {
		watcher.Close()
		log.Errorf("watcher add error: %s, abort", err)
		return nil, err
	}

	return &FileWatcherData{
		log:      log,
		watcher:  watcher,
		channel:  channel,
		filePath: filePath,
	}, nil
}

// Run - forward file events until shutdown
func (w *FileWatcherData) Run(args interface{}, shutdown <-chan struct{}) {
	defer w.watcher.Close()

	w.log.Infof("watching: %s", w.filePath)

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case err := <-w.watcher.Errors:
			w.log.Errorf("watcher error: %v", err)

		case event := <-w.watcher.Events:
			w.log.Debugf("file event: %v", event)

			if filepath.Base(event.Name) != filepath.Base(w.filePath) {
				w.log.Debugf("event for: %s not match, discard event", event.Name)
				continue loop
			}

			if watcherEventFileRemove(event) {
				if w.reattach() {
					w.sendEvent(w.channel.change, "change")
					continue loop
				}
				w.log.Errorf("file %s removed", w.filePath)
				w.sendEvent(w.channel.remove, "remove")
				continue loop
			}

			if watcherEventFileChange(event) {
				w.log.Info("sending config change event…")
				w.sendEvent(w.channel.change, "change")
			}
		}
	}

	w.log.Info("stopped")
}

// re-add the watch if the file came back after a rename
func (w *FileWatcherData) reattach() bool {
	time.Sleep(reattachDelay)
	if _, err := os.Stat(w.filePath); nil != err {
		return false
	}
	if err := w.watcher.Add(w.filePath); nil != err {
		w.log.Warnf("re-watch error: %s", err)
		return false
	}
	w.log.Infof("file %s replaced", w.filePath)
	return true
}

func (w *FileWatcherData) isChannelFull(ch chan<- struct{}) bool {
	return len(ch) == cap(ch)
}

func (w *FileWatcherData) sendEvent(ch chan<- struct{}, name string) {
	if !w.isChannelFull(ch) {
		ch <- struct{}{}
	} else {
		w.log.Infof("event channel %s full, discard event", name)
	}
}

func watcherEventFileRemove(event fsnotify.Event) bool {
	return event.Op&fsnotify.Remove == fsnotify.Remove ||
		event.Op&fsnotify.Rename == fsnotify.Rename
}

func watcherEventFileChange(event fsnotify.Event) bool {
	return event.Op&fsnotify.Write == fsnotify.Write ||
		event.Op&fsnotify.Create == fsnotify.Create ||
		event.Op&fsnotify.Chmod == fsnotify.Chmod
}
