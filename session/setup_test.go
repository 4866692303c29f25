// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package session_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/golang/mock/gomock"

	"github.com/bitmark-inc/replierd/session/mocks"
)

const (
	dir      = "testing"
	category = "testing"
)

func setupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

func teardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	_ = os.RemoveAll(dir)
}

func TestMain(m *testing.M) {
	setupTestLogger()
	rc := m.Run()
	teardownTestLogger()
	os.Exit(rc)
}

// recorder for tests that do not check statistics
func quietRecorder(ctl *gomock.Controller) *mocks.MockRecorder {
	r := mocks.NewMockRecorder(ctl)
	r.EXPECT().Challenge(gomock.Any()).AnyTimes()
	r.EXPECT().Delivered(gomock.Any()).AnyTimes()
	r.EXPECT().Discarded(gomock.Any()).AnyTimes()
	r.EXPECT().Missed(gomock.Any()).AnyTimes()
	return r
}
