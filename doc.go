// Copyright (C) 2026 the i5700 Recovery Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

// Recovery is the restart-safety core of a device recovery environment.
//
// The main system hands work to recovery through a handful of durable
// artifacts:
//
//   - the boot control block, a fixed-layout record on the raw MISC:
//     partition, read by both recovery and the boot firmware
//   - CACHE:recovery/command, one argument per line - INPUT
//   - CACHE:recovery/log, combined log of recovery runs - OUTPUT
//   - CACHE:recovery/intent, intent echoed back to the caller - OUTPUT
//
// On every boot the pipeline is: resolve the pending operation from
// invocation arguments, the boot control block, or the command file (in
// that precedence); re-persist the result into the control block so a
// crash re-enters recovery with the same arguments; perform the
// operation; then finalize - clear the control block, flush logs, remove
// the command file, sync. Finalization is idempotent and is the only
// step that retires a pending operation. Everything in between is safe
// to interrupt at any point and will be retried on the next boot.
//
// Subpackages:
//
//	pkg/vpath    virtual ROOT:path resolution, mount on demand
//	pkg/bcb      boot control block encode/decode and raw-device store
//	pkg/bootargs per-boot command resolution and re-persistence
//	pkg/ops      wipe and install operations
//	pkg/finish   idempotent finalization
//	pkg/log      stackable logging (memory, console, file sinks)
package recovery
