// Copyright (C) 2026 the i5700 Recovery Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

// Package log is a flexible logging mechanism allowing multiple log
// sinks: the console, a file, memory.
//
// By default, events are retained in memory so they can be re-played
// into new log sinks if/when those are added later on. In recovery this
// matters because the session log file lives on a ramdisk that is not
// available until early setup is done, yet everything logged from
// process start must reach it.
package log

import (
	"fmt"
	"os"
	"sync"

	"github.com/chibucks/i5700-leshak-recovery2/pkg/log/flags"
)

// Mutex protecting the log stack. Must be held while changing the stack
// or adding entries.
var stackMtx sync.Mutex

var logPrefix string

// Sets the log prefix, used in file names and as the program name in
// diagnostics. Must be set before calling AddFileLog().
func SetPrefix(pfx string) {
	logPrefix = pfx
}

// Gets the log prefix
func GetPrefix() string { return logPrefix }

// Msgf is for messages suitable for display to the user. Short,
// non-technical.
func Msgf(f string, va ...interface{}) { FlaggedLogf(flags.EndUser, f, va...) }

// See Msgf
func Msgln(va ...interface{}) { Msgf(fmt.Sprintln(va...)) }

// See Msgf
func Msg(message string) { Msgf(message) }

// Logf is for more technical, or more trivial, messages.
func Logf(f string, va ...interface{}) { FlaggedLogf(flags.NA, f, va...) }

// See Logf
func Logln(va ...interface{}) { Logf(fmt.Sprintln(va...)) }

// See Logf
func Log(message string) { Logf(message) }

// If the stack includes a memLog, writes all of its content to stderr.
// No-op otherwise.
func DumpStderr() {
	for _, e := range StoredEntries() {
		fmt.Fprintln(os.Stderr, e.String())
	}
}
