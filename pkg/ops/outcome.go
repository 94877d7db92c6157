// Copyright (C) 2026 the i5700 Recovery Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package ops

//Outcome of an operation. The core only distinguishes Success from the
//rest; the finer codes come from the install collaborator and are
//surfaced to the user as-is.
type Outcome int

const (
	Success Outcome = iota
	Error
	CorruptPackage
	VersionMismatch
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Error:
		return "error"
	case CorruptPackage:
		return "corrupt package"
	case VersionMismatch:
		return "version mismatch"
	}
	return "unknown"
}
