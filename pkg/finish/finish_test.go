// Copyright (C) 2026 the i5700 Recovery Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package finish_test

import (
	"os"
	fp "path/filepath"
	"testing"

	"github.com/chibucks/i5700-leshak-recovery2/pkg/bcb"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/finish"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/log/testlog"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/vpath"
)

type fixture struct {
	fin     *finish.Finalizer
	store   *bcb.Store
	dir     string
	session string
}

func setup(t *testing.T) *fixture {
	testlog.NewTestLog(t, true)
	dir := t.TempDir()
	tbl := vpath.TestTable(dir)
	store := bcb.NewStore(fp.Join(dir, "misc.img"))
	fin := finish.New(tbl, store)
	fin.SessionLog = fp.Join(dir, "recovery.log")
	//state a crashed-on-next-boot predecessor would leave behind
	err := store.Write(&bcb.Record{Command: "boot-recovery", Recovery: "recovery\n--wipe_data\n"})
	if err != nil {
		t.Fatal(err)
	}
	cmdf := fp.Join(dir, "cache", "recovery", "command")
	if err := os.MkdirAll(fp.Dir(cmdf), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cmdf, []byte("--wipe_data\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(fin.SessionLog, []byte("line one\n"), 0644); err != nil {
		t.Fatal(err)
	}
	return &fixture{fin: fin, store: store, dir: dir, session: fin.SessionLog}
}

func (fx *fixture) durableLog(t *testing.T) string {
	buf, err := os.ReadFile(fp.Join(fx.dir, "cache", "recovery", "log"))
	if err != nil {
		t.Fatal(err)
	}
	return string(buf)
}

func TestFinish(t *testing.T) {
	fx := setup(t)
	fx.fin.Finish("all done")

	//record cleared
	rec, err := fx.store.Read()
	if err != nil {
		t.Fatal(err)
	}
	if !rec.Empty() {
		t.Errorf("record not cleared: %+v", rec)
	}
	//command file gone
	if _, err := os.Stat(fp.Join(fx.dir, "cache", "recovery", "command")); !os.IsNotExist(err) {
		t.Error("command file still present")
	}
	//intent echoed
	intent, err := os.ReadFile(fp.Join(fx.dir, "cache", "recovery", "intent"))
	if err != nil {
		t.Fatal(err)
	}
	if string(intent) != "all done" {
		t.Errorf("intent %q", intent)
	}
	//session log copied
	if fx.durableLog(t) != "line one\n" {
		t.Errorf("durable log %q", fx.durableLog(t))
	}
}

func TestFinishTwiceIsFinishOnce(t *testing.T) {
	fx := setup(t)
	fx.fin.Finish("")
	fx.fin.Finish("")

	rec, err := fx.store.Read()
	if err != nil {
		t.Fatal(err)
	}
	if !rec.Empty() {
		t.Errorf("record not cleared: %+v", rec)
	}
	if _, err := os.Stat(fp.Join(fx.dir, "cache", "recovery", "command")); !os.IsNotExist(err) {
		t.Error("command file still present")
	}
	//no duplicate bytes appended on the second call
	if fx.durableLog(t) != "line one\n" {
		t.Errorf("durable log %q", fx.durableLog(t))
	}
}

func TestWatermarkAppendsOnlyDelta(t *testing.T) {
	fx := setup(t)
	fx.fin.Finish("")
	//more activity after the first finish, as when the user runs
	//another operation from the menu
	f, err := os.OpenFile(fx.session, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString("line two\n"); err != nil {
		t.Fatal(err)
	}
	f.Close()
	fx.fin.Finish("")
	if fx.durableLog(t) != "line one\nline two\n" {
		t.Errorf("durable log %q", fx.durableLog(t))
	}
}

func TestFinishSurvivesMissingPieces(t *testing.T) {
	fx := setup(t)
	//no session log at all; everything else must still happen
	if err := os.Remove(fx.session); err != nil {
		t.Fatal(err)
	}
	fx.fin.Finish("")
	rec, err := fx.store.Read()
	if err != nil {
		t.Fatal(err)
	}
	if !rec.Empty() {
		t.Errorf("record not cleared: %+v", rec)
	}
	if _, err := os.Stat(fp.Join(fx.dir, "cache", "recovery", "command")); !os.IsNotExist(err) {
		t.Error("command file still present")
	}
}
