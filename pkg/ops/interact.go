// Copyright (C) 2026 the i5700 Recovery Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package ops

import (
	"github.com/chibucks/i5700-leshak-recovery2/pkg/log"
)

//InteractFunc is the contract with the interactive menu collaborator.
//It receives the outcome of the last operation (Success when none was
//requested) and returns when the user is done.
type InteractFunc func(last Outcome)

// Interact hands control to the interactive menu when no operation was
// requested or the requested one failed. This build carries no menu;
// the default logs and returns, and the pipeline goes on to finalize
// and reboot. A build that links a menu in swaps the var, same as
// log.Cmd.
var Interact InteractFunc = DefaultInteract

func DefaultInteract(last Outcome) {
	log.Logf("No interactive menu in this build (last outcome: %s)", last)
}
