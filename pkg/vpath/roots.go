// Copyright (C) 2026 the i5700 Recovery Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package vpath

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

var (
	ENoRoot  = errors.New("unknown root")
	ERawRoot = errors.New("root has no filesystem")
	EBadPath = errors.New("not a ROOT:path")
)

// Root maps one ROOT: prefix onto a physical partition. The set of
// roots is closed per boot; the underlying mount state is not - the
// user can mount/unmount removable media at any time, so nothing about
// a Root is cached across accesses.
type Root struct {
	Name       string //prefix including the colon, e.g. "CACHE:"
	Device     string `json:",omitempty"` //absolute path, such as /dev/block/stl8
	FsType     string `json:",omitempty"`
	MountOpts  string `json:",omitempty"`
	MountPoint string `json:",omitempty"`
	//Raw roots (MISC:, BOOT:) are bare partitions read/written as block
	//devices; resolving a path on one is an error.
	Raw bool `json:",omitempty"`
	//Command run to reformat, templated with {{.Device}} and {{.Label}}.
	//Empty selects a default per FsType.
	FormatCmd string `json:",omitempty"`
	//Premounted roots (the ramdisk) are never mounted or unmounted here.
	Premounted bool `json:",omitempty"`

	mounted bool
}

//Table holds the root set plus this process's mount bookkeeping.
type Table struct {
	roots []*Root
}

// DefaultTable returns the built-in root table for the target device.
// Devices follow the OneNAND layout: bml for raw partitions, stl for
// those carrying a filesystem.
func DefaultTable() *Table {
	return &Table{roots: []*Root{
		{Name: "TMP:", MountPoint: "/tmp", Premounted: true},
		{Name: "BOOT:", Device: "/dev/block/bml5", Raw: true},
		{Name: "MISC:", Device: "/dev/block/bml4", Raw: true},
		{Name: "SYSTEM:", Device: "/dev/block/stl6", FsType: "ext4", MountOpts: "relatime", MountPoint: "/system"},
		{Name: "DATA:", Device: "/dev/block/stl7", FsType: "ext4", MountOpts: "relatime", MountPoint: "/data"},
		{Name: "CACHE:", Device: "/dev/block/stl8", FsType: "ext4", MountOpts: "relatime", MountPoint: "/cache"},
		{Name: "SDCARD:", Device: "/dev/block/mmcblk0p1", FsType: "vfat", MountPoint: "/sdcard"},
	}}
}

// LoadTable reads a root table from a JSON file, replacing the built-in
// set entirely. Conforms to schemas/roots.json.
func LoadTable(fname string) (*Table, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	t, err := ParseTable(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return t, nil
}

//ParseTable decodes a root table from JSON.
func ParseTable(data []byte) (*Table, error) {
	var roots []*Root
	if err := json.Unmarshal(data, &roots); err != nil {
		return nil, err
	}
	for _, r := range roots {
		if !strings.HasSuffix(r.Name, ":") {
			return nil, fmt.Errorf("root %q: name must end in ':'", r.Name)
		}
	}
	return &Table{roots: roots}, nil
}

//Lookup returns the root with the given name ("CACHE:"), or ENoRoot.
func (t *Table) Lookup(name string) (*Root, error) {
	for _, r := range t.roots {
		if r.Name == name {
			return r, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ENoRoot, name)
}

// Split separates a ROOT:relative/path identifier into its root name
// and relative part.
func Split(vp string) (root, rel string, err error) {
	i := strings.Index(vp, ":")
	if i < 1 {
		return "", "", fmt.Errorf("%w: %q", EBadPath, vp)
	}
	return vp[:i+1], vp[i+1:], nil
}

// TestTable returns a table whose filesystem roots are subdirectories
// of dir, premounted, plus a raw MISC: root backed by dir/misc.img.
// Only suitable for tests.
func TestTable(dir string) *Table {
	t := &Table{}
	for _, name := range []string{"CACHE:", "DATA:", "SDCARD:"} {
		mp := dir + "/" + strings.ToLower(strings.TrimSuffix(name, ":"))
		_ = os.MkdirAll(mp, 0755)
		t.roots = append(t.roots, &Root{Name: name, MountPoint: mp, Premounted: true})
	}
	t.roots = append(t.roots, &Root{Name: "MISC:", Device: dir + "/misc.img", Raw: true})
	return t
}
