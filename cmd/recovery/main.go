// Copyright (C) 2026 the i5700 Recovery Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

// Command recovery runs the restart-safe recovery pipeline: resolve the
// pending operation, durably record it, perform it, finalize, reboot.
//
// Arguments (from the command line, the boot control block, or the
// command file - see pkg/bootargs):
//
//	--send_intent=anystring  write the text out to the intent file
//	--update_package=ROOT:path  install the named package
//	--wipe_data   erase user data (and cache), then reboot
//	--wipe_cache  wipe cache (but not user data), then reboot
//	--no_reboot   stay in the process after finalizing (bench use)
package main

import (
	"os"
	"strings"

	"github.com/chibucks/i5700-leshak-recovery2/pkg/bcb"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/bootargs"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/finish"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/log"
	logflags "github.com/chibucks/i5700-leshak-recovery2/pkg/log/flags"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/ops"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/power"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/preboot"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/strs"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/vpath"

	"github.com/google/uuid"
	"github.com/spf13/pflag"
)

func main() {
	log.SetPrefix(strs.ProgName())
	if _, err := log.AddSessionLog(strs.TemporaryLog()); err != nil {
		//not really anywhere to complain; the memLog keeps events for
		//any sink added later
		log.Logf("no session log: %s", err)
	}
	log.AddConsoleLog(logflags.NA)
	log.AdaptStdlog(nil, logflags.NA)
	log.Logf("Starting recovery, session %s", uuid.New())

	roots := loadRoots()
	store := controlBlock(roots)
	preboot.AddDefaults(roots.UnmountAll)

	vec, src, boot := bootargs.Resolve(os.Args, store, roots)
	//Always boot into recovery after this, until finish clears it: a
	//crash anywhere below resumes with this same vector.
	_ = bootargs.Persist(vec, boot.Status, store)
	log.Logf("Command (from %s): %s", src, quoted(vec))

	var sendIntent, updatePackage string
	var wipeData, wipeCache, noReboot bool
	fs := pflag.NewFlagSet(strs.ProgName(), pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.StringVar(&sendIntent, "send_intent", "", "text to echo into the intent file")
	fs.StringVar(&updatePackage, "update_package", "", "ROOT:path of package to install")
	fs.BoolVar(&wipeData, "wipe_data", false, "erase user data (and cache)")
	fs.BoolVar(&wipeCache, "wipe_cache", false, "wipe cache (but not user data)")
	fs.BoolVar(&noReboot, "no_reboot", false, "stay in the process after finalizing")
	if err := fs.Parse(vec[1:]); err != nil {
		log.Logf("Invalid command argument: %s", err)
	}

	x := ops.New(roots)
	outcome := performOp(x, updatePackage, wipeData, wipeCache)
	success := outcome == ops.Success

	fin := finish.New(roots, store)
	fin.Finish(sendIntent)

	if !noReboot {
		log.Msg("Rebooting...")
	}
	preboot.Preboots.Perform(success)
	if noReboot {
		return
	}
	power.Reboot()
}

// performOp runs the requested operation, if any, and hands off to the
// interactive menu hook when nothing was requested or the operation
// failed. Returns the operation outcome; Success when idle.
func performOp(x *ops.Executor, updatePackage string, wipeData, wipeCache bool) ops.Outcome {
	outcome := ops.Success
	requested := true
	switch {
	case updatePackage != "":
		outcome = x.Install(updatePackage)
		if outcome != ops.Success {
			log.Msgf("Installation aborted: %s", outcome)
		}
	case wipeData:
		if err := x.WipeData(); err != nil {
			outcome = ops.Error
			log.Msgf("Data wipe failed: %s", err)
		}
	case wipeCache:
		if err := x.WipeCache(); err != nil {
			outcome = ops.Error
			log.Msgf("Cache wipe failed: %s", err)
		}
	default:
		requested = false
		log.Msg("No command specified.")
	}
	if !requested || outcome != ops.Success {
		ops.Interact(outcome)
	}
	return outcome
}

//Use the root table override when present, else built-in defaults.
func loadRoots() *vpath.Table {
	cfg := strs.RootsConfig()
	if _, err := os.Stat(cfg); err != nil {
		return vpath.DefaultTable()
	}
	t, err := vpath.LoadTable(cfg)
	if err != nil {
		log.Logf("bad root table %s: %s", cfg, err)
		return vpath.DefaultTable()
	}
	log.Logf("root table from %s", cfg)
	return t
}

func controlBlock(roots *vpath.Table) *bcb.Store {
	misc, err := roots.Lookup("MISC:")
	if err != nil {
		//reads/writes will fail and be logged; recovery still runs,
		//without restart safety for this boot
		log.Logf("no MISC: root: %s", err)
		return bcb.NewStore("")
	}
	return bcb.NewStore(misc.Device)
}

func quoted(vec []string) string {
	var b strings.Builder
	for i, a := range vec {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(`"` + a + `"`)
	}
	return b.String()
}
