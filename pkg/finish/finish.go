// Copyright (C) 2026 the i5700 Recovery Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

// Package finish retires a completed operation and prepares the device
// to boot the main system again. This is the only code that clears the
// re-entry sentinel; until Finish runs, every reboot re-enters recovery
// and retries the pending operation.
package finish

import (
	"io"
	"os"

	"github.com/chibucks/i5700-leshak-recovery2/pkg/bcb"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/log"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/strs"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/vpath"

	"golang.org/x/sys/unix"
)

// Finalizer owns per-process finalization state: the watermark into the
// session log marking how much has already been copied to the durable
// log. A fresh process starts at zero, so a process that died without
// finishing may re-append content on the next boot - acceptable, the
// log is diagnostic, not protocol-critical.
type Finalizer struct {
	Roots *vpath.Table
	Store *bcb.Store
	//SessionLog is the transient log path; defaults to strs.TemporaryLog().
	SessionLog string

	watermark int64
}

func New(roots *vpath.Table, store *bcb.Store) *Finalizer {
	return &Finalizer{
		Roots:      roots,
		Store:      store,
		SessionLog: strs.TemporaryLog(),
	}
}

// Finish clears the pending operation and hands control back to normal
// boot. Idempotent - call it as many times as you like. Each step is
// best-effort and failures don't stop later steps: stale durable state
// is worse than a missing log line.
//
// Steps: persist the intent echo (if any), append the session log delta
// to the durable log, zero the boot control block, remove the command
// file, sync.
func (f *Finalizer) Finish(sendIntent string) {
	if sendIntent != "" {
		f.writeIntent(sendIntent)
	}
	f.copyLogDelta()

	// Reset the control block: a subsequent normal boot stays normal.
	if err := f.Store.Clear(); err != nil {
		log.Logf("can't clear boot control block: %s", err)
	}

	// Remove the command file, so recovery won't repeat indefinitely.
	if err := f.Roots.Remove(strs.CommandFile()); err != nil && !os.IsNotExist(err) {
		log.Logf("can't unlink %s: %s", strs.CommandFile(), err)
	}

	unix.Sync()
}

func (f *Finalizer) writeIntent(intent string) {
	w, err := f.Roots.Open(strs.IntentFile(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		log.Logf("can't open %s: %s", strs.IntentFile(), err)
		return
	}
	defer w.Close()
	if _, err := w.WriteString(intent); err != nil {
		log.Logf("writing %s: %s", strs.IntentFile(), err)
	}
}

// Copies everything the session log gained since the last call into the
// durable log, then advances the watermark. The durable log is where
// the main system finds out what happened after it reboots.
func (f *Finalizer) copyLogDelta() {
	durable, err := f.Roots.Open(strs.LogFile(), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		log.Logf("can't open %s: %s", strs.LogFile(), err)
		return
	}
	defer durable.Close()
	session, err := os.Open(f.SessionLog)
	if err != nil {
		log.Logf("can't open %s: %s", f.SessionLog, err)
		return
	}
	defer session.Close()
	if _, err := session.Seek(f.watermark, io.SeekStart); err != nil {
		log.Logf("seeking %s: %s", f.SessionLog, err)
		return
	}
	n, err := io.Copy(durable, session)
	if err != nil {
		log.Logf("copying log delta: %s", err)
	}
	//advance past whatever made it over; a partial copy duplicates
	//nothing on the next call
	f.watermark += n
}
