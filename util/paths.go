// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package util - path helpers for configuration
package util

import (
	"os"
	"path/filepath"
)

// EnsureAbsolute - ensure the path is absolute
// if not, prepend the directory to make absolute path
func EnsureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}

// EnsureDirectory - check that a path exists and is a directory
func EnsureDirectory(name string) bool {
	info, err := os.Stat(name)
	return nil == err && info.IsDir()
}

// IsPlainName - true if the name has no directory component
func IsPlainName(name string) bool {
	switch filepath.Dir(name) {
	case "", ".":
		return "" != name
	default:
		return false
	}
}
