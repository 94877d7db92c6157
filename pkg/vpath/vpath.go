// Copyright (C) 2026 the i5700 Recovery Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

// Package vpath resolves virtual ROOT:relative/path identifiers onto
// concrete mount points, mounting the backing partition on demand.
//
// Every durable file access in the restart-safety protocol goes through
// this package. A resolution failure means "durable operation
// unavailable this boot" - callers log and degrade, they do not abort:
// surviving missing media is the point of the protocol.
package vpath

import (
	"os"
	"os/exec"
	fp "path/filepath"

	"github.com/chibucks/i5700-leshak-recovery2/pkg/log"
	"github.com/u-root/u-root/pkg/mount"
)

// Resolve maps a ROOT:relative/path identifier to a concrete path,
// ensuring the backing partition is mounted first.
func (t *Table) Resolve(vp string) (string, error) {
	name, rel, err := Split(vp)
	if err != nil {
		return "", err
	}
	r, err := t.Lookup(name)
	if err != nil {
		return "", err
	}
	if err := r.EnsureMounted(); err != nil {
		return "", err
	}
	return fp.Join(r.MountPoint, fp.FromSlash(rel)), nil
}

// Open opens the file named by a virtual path, mounting as necessary.
// When flag implies writing, the containing directory hierarchy is
// created with generous permissions - the main system resets them on
// next boot.
func (t *Table) Open(vp string, flag int, perm os.FileMode) (*os.File, error) {
	path, err := t.Resolve(vp)
	if err != nil {
		return nil, err
	}
	if flag&(os.O_WRONLY|os.O_RDWR) != 0 {
		if err := os.MkdirAll(fp.Dir(path), 0777); err != nil {
			return nil, err
		}
	}
	return os.OpenFile(path, flag, perm)
}

// Remove deletes the file named by a virtual path. Absence of the file
// is reported via os.IsNotExist on the returned error.
func (t *Table) Remove(vp string) error {
	path, err := t.Resolve(vp)
	if err != nil {
		return err
	}
	return os.Remove(path)
}

// EnsureMounted mounts the root if it is not mounted already. Raw roots
// cannot be mounted.
func (r *Root) EnsureMounted() error {
	if r.Raw {
		return ERawRoot
	}
	if r.mounted || r.Premounted {
		return nil
	}
	if err := os.MkdirAll(r.MountPoint, 0700); err != nil {
		log.Logln(err)
	}
	// Try u-root's Mount() first; FUSE-backed types need the mount
	// binary, so fall back to that on error.
	_, err := mount.Mount(r.Device, r.MountPoint, r.FsType, r.MountOpts, 0)
	if err == nil {
		log.Logf("mount %s on %s", r.Device, r.MountPoint)
		r.mounted = true
		return nil
	}
	log.Logf("u-root mount failed with %s, trying binary...", err)
	mnt := exec.Command("mount", r.Device, r.MountPoint, "-t", r.FsType)
	if r.MountOpts != "" {
		mnt.Args = append(mnt.Args, "-o", r.MountOpts)
	}
	if _, ok := log.Cmd(mnt); !ok {
		return &MountFailure{Root: r.Name, Err: err}
	}
	r.mounted = true
	return nil
}

// Unmount unmounts the root if this process mounted it. Premounted
// roots are left alone.
func (r *Root) Unmount() error {
	if !r.mounted || r.Premounted {
		return nil
	}
	if err := mount.Unmount(r.MountPoint, false, false); err != nil {
		return err
	}
	r.mounted = false
	return nil
}

func (r *Root) IsMounted() bool { return r.mounted || r.Premounted }

// UnmountAll unmounts every root this process mounted. Preboot task;
// the success arg is part of the task signature and ignored here.
func (t *Table) UnmountAll(success bool) {
	for _, r := range t.roots {
		if err := r.Unmount(); err != nil {
			log.Logf("unmount %s: %s", r.Name, err)
		}
	}
}

//MountFailure wraps a mount error with the root that failed.
type MountFailure struct {
	Root string
	Err  error
}

func (m *MountFailure) Error() string { return "can't mount " + m.Root + ": " + m.Err.Error() }
func (m *MountFailure) Unwrap() error { return m.Err }
