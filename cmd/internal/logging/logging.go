// Copyright 2026 xgfone
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package logging initializes the logging of the commands.
package logging

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/xgfone/go-tools/v7/lifecycle"
	"github.com/xgfone/klog/v3"
)

// FileSize and FileNum are the size of a log file and the number
// of the rotated log files to keep.
const (
	FileSize = 100 * 1024 * 1024
	FileNum  = 100
)

var levels = []string{"debug", "info", "warn", "error"}

// ParseLevel normalizes the level name, which must be one of
// "debug", "info", "warn" and "error".
func ParseLevel(name string) (string, error) {
	level := strings.ToLower(strings.TrimSpace(name))
	for _, l := range levels {
		if l == level {
			return level, nil
		}
	}
	return "", errors.Errorf("invalid log level '%s'", name)
}

// Init initializes the logging, which writes the logs into the sized
// rotating file at filepath, or to stderr if filepath is empty.
//
// The log file is closed by lifecycle.Stop.
func Init(level, filepath string) error {
	level, err := ParseLevel(level)
	if err != nil {
		return err
	}

	if filepath != "" {
		file, err := klog.NewSizedRotatingFile(filepath, FileSize, FileNum)
		if err != nil {
			return errors.Wrap(err, "failed to open the log file")
		}
		lifecycle.Register(func() { file.Close() })
		klog.Std = klog.Std.WithWriter(klog.StreamWriter(file))
	}

	klog.Std = klog.Std.WithLevel(klog.NameToLevel(level)).WithKv("caller", klog.Caller())
	klog.AppendCleaner(lifecycle.Stop)
	return nil
}
