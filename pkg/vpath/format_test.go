// Copyright (C) 2026 the i5700 Recovery Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package vpath_test

import (
	"errors"
	"os/exec"
	"reflect"
	"testing"

	"github.com/chibucks/i5700-leshak-recovery2/pkg/log/testlog"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/vpath"
)

func TestFormatDefaultCommand(t *testing.T) {
	testlog.NewTestLog(t, true)
	fc := testlog.HijackCmd(t)
	r := &vpath.Root{Name: "DATA:", Device: "/dev/block/stl7", FsType: "ext4"}
	if err := r.Format(); err != nil {
		t.Fatal(err)
	}
	want := []string{"mke2fs", "-t", "ext4", "-L", "DATA", "-m", "1", "/dev/block/stl7"}
	if len(fc.Argv) != 1 || !reflect.DeepEqual(fc.Argv[0], want) {
		t.Errorf("argv %q, want %q", fc.Argv, want)
	}
}

func TestFormatCustomTemplate(t *testing.T) {
	testlog.NewTestLog(t, true)
	fc := testlog.HijackCmd(t)
	r := &vpath.Root{
		Name:      "SDCARD:",
		Device:    "/dev/block/mmcblk0p1",
		FsType:    "vfat",
		FormatCmd: "mkdosfs -n {{.Label}} {{.Device}}",
	}
	if err := r.Format(); err != nil {
		t.Fatal(err)
	}
	want := []string{"mkdosfs", "-n", "SDCARD", "/dev/block/mmcblk0p1"}
	if len(fc.Argv) != 1 || !reflect.DeepEqual(fc.Argv[0], want) {
		t.Errorf("argv %q, want %q", fc.Argv, want)
	}
}

func TestFormatRefusals(t *testing.T) {
	testlog.NewTestLog(t, true)
	testlog.HijackCmd(t)
	for _, r := range []*vpath.Root{
		{Name: "MISC:", Device: "/dev/block/bml4", Raw: true},
		{Name: "TMP:", MountPoint: "/tmp", Premounted: true},
		{Name: "ODD:", Device: "/dev/block/x", FsType: "squashfs"},
	} {
		if err := r.Format(); !errors.Is(err, vpath.ECantFormat) {
			t.Errorf("%s: want ECantFormat, got %v", r.Name, err)
		}
	}
}

func TestFormatFailureReported(t *testing.T) {
	testlog.NewTestLog(t, true)
	fc := testlog.HijackCmd(t)
	fc.Fn = func(*exec.Cmd) (string, bool) { return "", false }
	r := &vpath.Root{Name: "DATA:", Device: "/dev/block/stl7", FsType: "ext4"}
	if err := r.Format(); err == nil {
		t.Error("mkfs failure not reported")
	}
}
