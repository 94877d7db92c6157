// Copyright (C) 2026 the i5700 Recovery Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package log

// memLog retains entries in memory so they can be replayed into sinks
// added later - events logged before the session log file exists still
// end up in it. The default stack is a lone memLog.
type memLog struct {
	entries []LogEntry
	next    StackableLogger
}

var _ StackableLogger = (*memLog)(nil)

const MemLogIdent = "memLog"

func (ml *memLog) AddEntry(e LogEntry) {
	ml.entries = append(ml.entries, e)
	if ml.next != nil {
		ml.next.AddEntry(e)
	}
}

func (ml *memLog) ForwardTo(sl StackableLogger) {
	if ml.next == nil || sl == nil {
		ml.next = sl
	} else {
		panic("next already set")
	}
}

func (ml *memLog) Ident() string         { return MemLogIdent }
func (ml *memLog) Next() StackableLogger { return ml.next }

func (ml *memLog) Finalize() {
	if ml.next != nil {
		ml.next.Finalize()
	}
}

func (ml *memLog) Entries() []LogEntry { return ml.entries }

//StoredEntries returns the entries retained by the memLog, if any.
func StoredEntries() []LogEntry {
	ml, ok := FindInStack(MemLogIdent).(*memLog)
	if !ok {
		return nil
	}
	return ml.Entries()
}

// FlushMemLog drops the memLog from the stack, once other sinks exist
// and replay is no longer wanted. Frees memory on long runs; no-op if
// no memLog is present.
func FlushMemLog() {
	RemoveLogger(MemLogIdent)
}
