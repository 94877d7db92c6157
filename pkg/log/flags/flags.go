// Copyright (C) 2026 the i5700 Recovery Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

//Package flags holds bit flags attached to log entries, determining how
//each sink treats an entry. Separate package to avoid import cycles.
package flags

import (
	"fmt"
	"strings"
)

type Flag uint32

//NA: no flags; every sink accepts the entry.
const NA Flag = 0

const (
	//EndUser marks short, non-technical messages meant for the user.
	EndUser Flag = 1 << iota
	//Fatal marks the final entry before the process terminates.
	Fatal
	//NotFile excludes an entry from file sinks.
	NotFile
)

func (f Flag) String() string {
	if f == NA {
		return "na"
	}
	var parts []string
	if f&EndUser != 0 {
		parts = append(parts, "user")
		f &^= EndUser
	}
	if f&Fatal != 0 {
		parts = append(parts, "fatal")
		f &^= Fatal
	}
	if f&NotFile != 0 {
		parts = append(parts, "nofile")
		f &^= NotFile
	}
	if f != 0 {
		parts = append(parts, fmt.Sprintf("%#x", uint32(f)))
	}
	return strings.Join(parts, "|")
}

func (f Flag) MarshalJSON() ([]byte, error) {
	return []byte(`"` + f.String() + `"`), nil
}
