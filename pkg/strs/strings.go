// Copyright (C) 2026 the i5700 Recovery Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

//Abstraction for strings that porters will likely wish to change.
//Several of these are wire format shared with the boot firmware and the
//main system - see the comments on each before changing anything.
package strs

//Abstraction for strings that porters will likely wish to change.
type Stringer interface {
	//Value of the control block command field that re-enters recovery.
	//Read by the boot firmware; must match it.
	BootCommand() string
	//First line of the control block recovery field. Shared with the
	//boot firmware and the main system; must match both.
	RecoveryMarker() string
	//Program name used as argv[0] of every resolved vector.
	ProgName() string
	//Virtual path of the command file written by the main system.
	CommandFile() string
	//Virtual path of the intent file echoed back to the main system.
	IntentFile() string
	//Virtual path of the durable log consumed by the main system.
	LogFile() string
	//Path of the transient session log (ramdisk).
	TemporaryLog() string
	//Path of the optional root table override, JSON.
	RootsConfig() string
	//External updater invoked for package installs.
	InstallerCmd() string
}

var stringImpl Stringer

//Override defaults.
func SetStringer(b Stringer) {
	stringImpl = b
}

//Value of the control block command field that re-enters recovery.
func BootCommand() string {
	if stringImpl != nil {
		return stringImpl.BootCommand()
	}
	return "boot-recovery"
}

//First line of the control block recovery field.
func RecoveryMarker() string {
	if stringImpl != nil {
		return stringImpl.RecoveryMarker()
	}
	return "recovery"
}

//Program name used as argv[0] of every resolved vector.
func ProgName() string {
	if stringImpl != nil {
		return stringImpl.ProgName()
	}
	return "recovery"
}

//Virtual path of the command file written by the main system.
func CommandFile() string {
	if stringImpl != nil {
		return stringImpl.CommandFile()
	}
	return "CACHE:recovery/command"
}

//Virtual path of the intent file echoed back to the main system.
func IntentFile() string {
	if stringImpl != nil {
		return stringImpl.IntentFile()
	}
	return "CACHE:recovery/intent"
}

//Virtual path of the durable log consumed by the main system.
func LogFile() string {
	if stringImpl != nil {
		return stringImpl.LogFile()
	}
	return "CACHE:recovery/log"
}

//Path of the transient session log (ramdisk).
func TemporaryLog() string {
	if stringImpl != nil {
		return stringImpl.TemporaryLog()
	}
	return "/tmp/recovery.log"
}

//Path of the optional root table override, JSON.
func RootsConfig() string {
	if stringImpl != nil {
		return stringImpl.RootsConfig()
	}
	return "/etc/recovery/roots.json"
}

//External updater invoked for package installs.
func InstallerCmd() string {
	if stringImpl != nil {
		return stringImpl.InstallerCmd()
	}
	return "/sbin/updater"
}
