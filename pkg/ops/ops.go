// Copyright (C) 2026 the i5700 Recovery Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

// Package ops performs the operations a resolved command maps onto:
// partition wipes and package installs. Each primitive is independently
// safe to retry - retry happens by reboot, never in-process, because
// the boot control block still names the same operation until finish
// clears it.
package ops

import (
	"fmt"
	"os/exec"

	"github.com/chibucks/i5700-leshak-recovery2/pkg/log"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/strs"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/vpath"
)

//Executor runs operations against a root table. Installer defaults to
//the external updater; tests substitute their own.
type Executor struct {
	Roots     *vpath.Table
	Installer InstallFunc
}

func New(roots *vpath.Table) *Executor {
	return &Executor{Roots: roots}
}

// Erase reformats the named logical partition (e.g. "DATA:").
// Idempotent: erasing an already-erased partition just reformats it
// again.
func (x *Executor) Erase(root string) error {
	r, err := x.Roots.Lookup(root)
	if err != nil {
		return err
	}
	log.Msgf("Formatting %s...", root)
	return r.Format()
}

// WipeData erases the data partition and then the cache partition,
// stopping at the first failure. The order matters: if cache were
// erased first and data failed, the command file naming this wipe would
// already be gone while user data remained.
func (x *Executor) WipeData() error {
	if err := x.Erase("DATA:"); err != nil {
		return fmt.Errorf("wiping DATA:: %w", err)
	}
	return x.WipeCache()
}

//WipeCache erases the cache partition only.
func (x *Executor) WipeCache() error {
	if err := x.Erase("CACHE:"); err != nil {
		return fmt.Errorf("wiping CACHE:: %w", err)
	}
	return nil
}

// Install hands the package at the given virtual path to the install
// collaborator. No retry logic here: the control block still names this
// package until finish runs, so a reboot retries for free.
func (x *Executor) Install(locator string) Outcome {
	path, err := x.Roots.Resolve(locator)
	if err != nil {
		log.Logf("can't resolve %s: %s", locator, err)
		return Error
	}
	installer := x.Installer
	if installer == nil {
		installer = DefaultInstall
	}
	log.Msgf("Installing %s...", locator)
	return installer(path)
}

//InstallFunc is the contract with the package-install pipeline. The
//pipeline owns verification and extraction; recovery owns sequencing.
type InstallFunc func(pkgPath string) Outcome

// DefaultInstall runs the external updater. Exit codes per the updater
// contract: 0 success, 2 corrupt package, 3 version mismatch, anything
// else a generic error.
func DefaultInstall(pkgPath string) Outcome {
	cmd := exec.Command(strs.InstallerCmd(), pkgPath)
	_, ok := log.Cmd(cmd)
	if ok {
		return Success
	}
	if cmd.ProcessState != nil {
		switch cmd.ProcessState.ExitCode() {
		case 2:
			return CorruptPackage
		case 3:
			return VersionMismatch
		}
	}
	return Error
}
