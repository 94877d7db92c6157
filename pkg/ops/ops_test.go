// Copyright (C) 2026 the i5700 Recovery Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package ops_test

import (
	"os/exec"
	"strings"
	"testing"

	"github.com/chibucks/i5700-leshak-recovery2/pkg/log/testlog"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/ops"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/vpath"
)

//table with formattable DATA: and CACHE: roots; devices are fake, the
//format commands never run (log.Cmd is hijacked)
func wipeTable(t *testing.T) *vpath.Table {
	tbl, err := vpath.ParseTable([]byte(`[
		{"Name": "DATA:", "Device": "/dev/fake-data", "FsType": "ext4"},
		{"Name": "CACHE:", "Device": "/dev/fake-cache", "FsType": "ext4"}
	]`))
	if err != nil {
		t.Fatal(err)
	}
	return tbl
}

func TestWipeDataOrder(t *testing.T) {
	testlog.NewTestLog(t, true)
	fc := testlog.HijackCmd(t)
	x := ops.New(wipeTable(t))
	if err := x.WipeData(); err != nil {
		t.Fatal(err)
	}
	if len(fc.Argv) != 2 {
		t.Fatalf("want 2 format commands, got %d: %q", len(fc.Argv), fc.Argv)
	}
	//data before cache; a crash in between leaves cache (and the
	//command file on it) naming the wipe that still must finish
	if fc.Argv[0][len(fc.Argv[0])-1] != "/dev/fake-data" {
		t.Errorf("first format %q", fc.Argv[0])
	}
	if fc.Argv[1][len(fc.Argv[1])-1] != "/dev/fake-cache" {
		t.Errorf("second format %q", fc.Argv[1])
	}
}

func TestWipeStopsOnFirstFailure(t *testing.T) {
	testlog.NewTestLog(t, true)
	fc := testlog.HijackCmd(t)
	fc.Fn = func(*exec.Cmd) (string, bool) { return "", false }
	x := ops.New(wipeTable(t))
	err := x.WipeData()
	if err == nil {
		t.Fatal("wipe failure not reported")
	}
	if !strings.Contains(err.Error(), "DATA:") {
		t.Errorf("error must name the failed target: %s", err)
	}
	if len(fc.Argv) != 1 {
		t.Errorf("cache format attempted after data failure: %q", fc.Argv)
	}
}

func TestWipeCacheOnly(t *testing.T) {
	testlog.NewTestLog(t, true)
	fc := testlog.HijackCmd(t)
	x := ops.New(wipeTable(t))
	if err := x.WipeCache(); err != nil {
		t.Fatal(err)
	}
	if len(fc.Argv) != 1 || fc.Argv[0][len(fc.Argv[0])-1] != "/dev/fake-cache" {
		t.Errorf("argv %q", fc.Argv)
	}
}

func TestEraseUnknownRoot(t *testing.T) {
	testlog.NewTestLog(t, true)
	testlog.HijackCmd(t)
	x := ops.New(wipeTable(t))
	if err := x.Erase("NOPE:"); err == nil {
		t.Error("unknown root erased")
	}
}

func TestInstallOutcome(t *testing.T) {
	testlog.NewTestLog(t, true)
	dir := t.TempDir()
	tbl := vpath.TestTable(dir)
	var got string
	x := &ops.Executor{
		Roots: tbl,
		Installer: func(pkgPath string) ops.Outcome {
			got = pkgPath
			return ops.CorruptPackage
		},
	}
	outcome := x.Install("CACHE:update.zip")
	if outcome != ops.CorruptPackage {
		t.Errorf("outcome %v", outcome)
	}
	if got != dir+"/cache/update.zip" {
		t.Errorf("installer got %q", got)
	}
}

func TestInstallUnresolvable(t *testing.T) {
	testlog.NewTestLog(t, true)
	x := ops.New(vpath.TestTable(t.TempDir()))
	if outcome := x.Install("NOPE:update.zip"); outcome != ops.Error {
		t.Errorf("outcome %v", outcome)
	}
}
