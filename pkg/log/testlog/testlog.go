// Copyright (C) 2026 the i5700 Recovery Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

// Package testlog hijacks the output of pkg/log, and can hijack
// log.Cmd(). By default output prints through testing functions but it
// can be stored in a buffer as well - for example, for analysis as part
// of the test.
//
// Cmd() hijacking can be used to test code whose external commands
// (mkfs, updater) cannot feasibly run in a test environment.
package testlog

import (
	"bytes"
	"fmt"
	"os/exec"
	"testing"

	"github.com/chibucks/i5700-leshak-recovery2/pkg/log"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/log/flags"
)

//Conforms to log.StackableLogger. Constructed via NewTestLog().
type TstLog struct {
	t             *testing.T    //log here if Buf is nil
	Buf           *bytes.Buffer //if non-nil, output goes here
	MsgCount      int           //number of flags.EndUser entries
	LogCount      int           //number of flags.NA entries
	FatalCount    int           //number of flags.Fatal entries
	FatalIsNotErr bool          //if true, do not call t.Errorf() for a fatal entry
}

// Returns a new TstLog installed as the entire log stack. If bufferLog
// is true, logging goes to a buffer rather than t.Log(). Do not share
// one TstLog between tests - create a new one each time.
func NewTestLog(t *testing.T, bufferLog bool) (tlog *TstLog) {
	tlog = &TstLog{t: t}
	if bufferLog {
		tlog.Buf = new(bytes.Buffer)
	}
	log.NewLogStack(tlog)
	log.SetFatalAction(log.FailAction{Terminator: func() {}})
	t.Cleanup(func() {
		log.DefaultLogStack()
		log.SetFatalAction(log.DefaultFatal)
	})
	return
}

var _ log.StackableLogger = (*TstLog)(nil)

func (tlog *TstLog) AddEntry(e log.LogEntry) {
	switch {
	case e.Flags&flags.EndUser != 0:
		tlog.MsgCount++
		e.Msg = "MSG:" + e.Msg
	case e.Flags&flags.Fatal != 0:
		tlog.FatalCount++
		e.Msg = ">>FATAL()<< " + e.Msg
		if !tlog.FatalIsNotErr {
			tlog.t.Errorf("unexpected fatal: "+e.Msg, e.Args...)
		}
	default:
		tlog.LogCount++
		e.Msg = "LOG:" + e.Msg
	}
	if tlog.Buf != nil {
		tlog.Buf.WriteString(fmt.Sprintf(e.Msg, e.Args...) + "\n")
	} else {
		tlog.t.Logf(e.Msg, e.Args...)
	}
}

func (tlog *TstLog) ForwardTo(log.StackableLogger) {}

const TestLogIdent = "testLog"

func (tlog *TstLog) Ident() string             { return TestLogIdent }
func (tlog *TstLog) Next() log.StackableLogger { return nil }
func (tlog *TstLog) Finalize()                 {}

// FakeCmd replaces log.Cmd for the duration of the test, recording the
// argv of every command it is asked to run. Fn, if set, decides the
// result per command; otherwise every command "succeeds" with empty
// output.
type FakeCmd struct {
	Argv [][]string
	Fn   func(cmd *exec.Cmd) (string, bool)
}

func HijackCmd(t *testing.T) *FakeCmd {
	fc := &FakeCmd{}
	prev := log.Cmd
	log.Cmd = func(cmd *exec.Cmd) (string, bool) {
		fc.Argv = append(fc.Argv, cmd.Args)
		if fc.Fn != nil {
			return fc.Fn(cmd)
		}
		return "", true
	}
	t.Cleanup(func() { log.Cmd = prev })
	return fc
}
