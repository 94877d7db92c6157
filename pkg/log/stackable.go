// Copyright (C) 2026 the i5700 Recovery Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package log

import (
	"fmt"
	"time"

	"github.com/chibucks/i5700-leshak-recovery2/pkg/log/flags"
)

// A logger which can be chained to others, each link adding a different
// sink - console, file, memory. Normal logging goes through the package
// functions Logf, Msgf, Fatalf; end users do not touch this interface.
type StackableLogger interface {
	//Add an entry. Must pass the entry on to Next() if that is not nil.
	AddEntry(e LogEntry)
	//Chain this logger to another. Error to call twice with non-nil arg.
	ForwardTo(StackableLogger)
	//Identifies the sink type, to prevent duplicates in a stack.
	Ident() string
	Next() StackableLogger
	//Flush and release resources. Must chain to Next() if not nil.
	Finalize()
}

//Top of the stack. Access must honor stackMtx.
var logStack StackableLogger = &memLog{}

// LogEntry is the record type passed through the stack.
type LogEntry struct {
	Time  time.Time `json:"t"`
	Msg   string
	Args  []interface{} `json:",omitempty"`
	Flags flags.Flag    `json:",omitempty"`
}

func (le *LogEntry) String() string {
	var div string
	switch {
	case le.Flags&flags.EndUser != 0:
		div = "-- "
	case le.Flags&flags.Fatal != 0:
		div = "!! "
	case le.Flags == 0:
		div = "*- "
	default:
		div = "?? "
	}
	f := div + le.Time.Format(TimestampLayout) + " " + div + le.Msg
	return fmt.Sprintf(f, le.Args...)
}

// Backend of Logf(), Msgf(), Fatalf(). Wraps args in a LogEntry and
// inserts it at the top of the stack.
func FlaggedLogf(opts flags.Flag, f string, va ...interface{}) {
	stackMtx.Lock()
	defer stackMtx.Unlock()
	logStack.AddEntry(LogEntry{
		Time:  time.Now(),
		Flags: opts,
		Msg:   f,
		Args:  va,
	})
}

type stackErr struct {
	Id string
}

func (se *stackErr) Error() string {
	return fmt.Sprintf("duplicate logger %s in stack", se.Id)
}

//Flushes data, closes files, etc.
func Finalize() {
	stackMtx.Lock()
	defer stackMtx.Unlock()
	logStack.Finalize()
}

// Restores the stack to its initial state: Finalize()s existing sinks,
// then replaces them with a lone memLog.
func DefaultLogStack() { NewLogStack(&memLog{}) }

//Finalizes existing sinks, then installs newLog as the entire stack.
func NewLogStack(newLog StackableLogger) {
	stackMtx.Lock()
	defer stackMtx.Unlock()
	if logStack != nil {
		logStack.Finalize()
	}
	logStack = newLog
}

// Add a sink to the stack. If addPrevious is true, events retained by a
// memLog already in the stack are replayed into the new sink first.
// Returns an error if a sink of the same type is already present.
func AddLogger(sl StackableLogger, addPrevious bool) error {
	stackMtx.Lock()
	defer stackMtx.Unlock()
	if addPrevious {
		replayStored(sl)
	}
	err := checkDuplicate(sl, logStack)
	if err == nil {
		sl.ForwardTo(logStack)
		logStack = sl
	}
	return err
}

//Recursive; fails if newLogger duplicates any sink at or below sl.
func checkDuplicate(newLogger, sl StackableLogger) error {
	if newLogger.Ident() == sl.Ident() {
		return &stackErr{Id: sl.Ident()}
	}
	next := sl.Next()
	if next != nil {
		return checkDuplicate(newLogger, next)
	}
	return nil
}

//Remove the sink with the given id from the stack, finalizing it.
func RemoveLogger(id string) {
	stackMtx.Lock()
	defer stackMtx.Unlock()
	removeLocked(id)
}

func removeLocked(id string) {
	l := logStack
	var prev StackableLogger
	for l != nil {
		next := l.Next()
		if l.Ident() == id {
			l.ForwardTo(nil)
			l.Finalize()
			if prev != nil {
				prev.ForwardTo(next)
			} else if next != nil {
				logStack = next
			} else {
				logStack = &memLog{}
			}
			return
		}
		prev = l
		l = next
	}
}

//Replays memLog content into a new sink, if a memLog is in the stack.
func replayStored(newlog StackableLogger) {
	if _, isMem := newlog.(*memLog); isMem {
		return
	}
	ml, ok := findLocked(MemLogIdent).(*memLog)
	if !ok {
		return
	}
	for _, e := range ml.Entries() {
		newlog.AddEntry(e)
	}
}

//Return true if a sink in the stack matches the given id.
func InStack(id string) bool {
	return FindInStack(id) != nil
}

//Return the sink matching id, or nil.
func FindInStack(id string) StackableLogger {
	stackMtx.Lock()
	defer stackMtx.Unlock()
	return findLocked(id)
}

func findLocked(id string) StackableLogger {
	l := logStack
	for l != nil {
		if l.Ident() == id {
			return l
		}
		l = l.Next()
	}
	return nil
}
