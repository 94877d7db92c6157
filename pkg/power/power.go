// Copyright (C) 2026 the i5700 Recovery Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

//Package power reboots or powers off the device.
package power

import (
	"github.com/chibucks/i5700-leshak-recovery2/pkg/log"

	"golang.org/x/sys/unix"
)

// Reboot into the main system. Syncs first; does not return except on
// error.
func Reboot() {
	unix.Sync()
	if err := unix.Reboot(unix.LINUX_REBOOT_CMD_RESTART); err != nil {
		log.Logf("reboot: %s", err)
	}
}

//Poweroff shuts the device down. Syncs first.
func Poweroff() {
	unix.Sync()
	if err := unix.Reboot(unix.LINUX_REBOOT_CMD_POWER_OFF); err != nil {
		log.Logf("poweroff: %s", err)
	}
}
