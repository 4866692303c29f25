// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/replierd/background"
	"github.com/bitmark-inc/replierd/fault"
)

func setupTestFileWatcher(t *testing.T) (*FileWatcherData, func()) {
	name, cleanup := writeConfigurationFile(t, "return {}")

	w, err := newFileWatcher(name, logger.New("test"), newWatcherChannel())
	if nil != err {
		cleanup()
		t.Fatalf("new file watcher error: %s", err)
	}
	return w, cleanup
}

func waitFor(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	case <-time.After(5 * time.Second):
		return false
	}
}

func TestNewFileWatcherErrors(t *testing.T) {
	_, err := newFileWatcher("no-such-file", logger.New("test"), newWatcherChannel())
	assert.True(t, os.IsNotExist(err), "missing file: %v", err)

	_, err = newFileWatcher("no-such-file", nil, newWatcherChannel())
	assert.Equal(t, fault.ErrInvalidLoggerChannel, err, "nil logger")
}

func TestWatcherChange(t *testing.T) {
	w, cleanup := setupTestFileWatcher(t)
	defer cleanup()

	p := background.Start(background.Processes{w}, nil)
	defer p.Stop()

	err := ioutil.WriteFile(w.filePath, []byte("return { a = 1 }"), 0600)
	assert.Nil(t, err, "write file")

	assert.True(t, waitFor(w.channel.change), "change event")
}

func TestWatcherRemove(t *testing.T) {
	w, cleanup := setupTestFileWatcher(t)
	defer cleanup()

	p := background.Start(background.Processes{w}, nil)
	defer p.Stop()

	err := os.Remove(w.filePath)
	assert.Nil(t, err, "remove file")

	assert.True(t, waitFor(w.channel.remove), "remove event")
}

func TestWatcherReplaced(t *testing.T) {
	w, cleanup := setupTestFileWatcher(t)
	defer cleanup()

	p := background.Start(background.Processes{w}, nil)
	defer p.Stop()

	temporary := filepath.Join(filepath.Dir(w.filePath), "replierd.conf.new")
	_ = ioutil.WriteFile(temporary, []byte("return { b = 2 }"), 0600)
	err := os.Rename(temporary, w.filePath)
	assert.Nil(t, err, "rename over file")

	assert.True(t, waitFor(w.channel.change), "change event")
	assert.Equal(t, 0, len(w.channel.remove), "no remove event")
}

func TestIsChannelFull(t *testing.T) {
	w, cleanup := setupTestFileWatcher(t)
	defer cleanup()
	defer w.watcher.Close()

	ch := make(chan struct{}, 1)
	assert.False(t, w.isChannelFull(ch), "empty channel")

	ch <- struct{}{}
	assert.True(t, w.isChannelFull(ch), "full channel")
}

func TestSendEvent(t *testing.T) {
	w, cleanup := setupTestFileWatcher(t)
	defer cleanup()
	defer w.watcher.Close()

	ch := make(chan struct{}, 1)
	w.sendEvent(ch, "test")
	w.sendEvent(ch, "test")
	assert.Equal(t, 1, len(ch), "second event discarded")
}

func TestEventClassification(t *testing.T) {
	assert.True(t, watcherEventFileRemove(fsnotify.Event{Name: "a", Op: fsnotify.Remove}), "remove")
	assert.True(t, watcherEventFileRemove(fsnotify.Event{Name: "a", Op: fsnotify.Rename}), "rename")
	assert.False(t, watcherEventFileRemove(fsnotify.Event{Name: "a", Op: fsnotify.Write}), "write")

	assert.True(t, watcherEventFileChange(fsnotify.Event{Name: "a", Op: fsnotify.Write}), "write")
	assert.True(t, watcherEventFileChange(fsnotify.Event{Name: "a", Op: fsnotify.Chmod}), "chmod")
	assert.True(t, watcherEventFileChange(fsnotify.Event{Name: "a", Op: fsnotify.Create}), "create")
	assert.False(t, watcherEventFileChange(fsnotify.Event{Name: "a", Op: fsnotify.Remove}), "remove")
}
