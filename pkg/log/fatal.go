// Copyright (C) 2026 the i5700 Recovery Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package log

import (
	"os"
	"strings"

	"github.com/chibucks/i5700-leshak-recovery2/pkg/log/flags"
)

// Type of function called after a fatal event has been logged - pause,
// power off, reboot, etc.
type FatalFunc func()
type PreFunc func(f string, va ...interface{})

// Actions taken when log.Fatalf() is called. Logging the event itself
// is automatic.
type FailAction struct {
	// Prefix to add to message
	MsgPfx string
	// Pre runs before log.Finalize() - i.e. the log is still writable.
	Pre PreFunc
	// Action to take to exit - reboot, shutdown, exit process. Logs are
	// no longer writable when this is called.
	Terminator FatalFunc
}

var fatalAction = DefaultFatal

// Sets up action to take when a fatal event has been logged.
func SetFatalAction(act FailAction) { fatalAction = act }

//Default fatal action is to call os.Exit(1)
var DefaultFatal = FailAction{Terminator: DefaultFatalAction}

func DefaultFatalAction() {
	if strings.HasSuffix(os.Args[0], "test") {
		panic("generic fatal called from test")
	}
	os.Exit(1)
}

// Like Msgf or Logf, but does not return - the process terminates.
// Behavior modified by SetFatalAction().
func Fatalf(f string, va ...interface{}) {
	if !InStack(ConsoleLogIdent) && !InStack(FileLogIdent) {
		//save some headscratching if no sink is configured
		AddConsoleLog(0)
		Log("Fatalf: logging unconfigured")
	}
	FlaggedLogf(flags.Fatal, fatalAction.MsgPfx+f, va...)
	if fatalAction.Pre != nil {
		fatalAction.Pre(fatalAction.MsgPfx+f, va...)
	}
	Finalize()
	fatalAction.Terminator()
}
