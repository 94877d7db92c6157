// Copyright (C) 2026 the i5700 Recovery Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package bcb

import (
	"strings"

	"github.com/chibucks/i5700-leshak-recovery2/pkg/strs"
)

// BuildRecovery assembles the recovery field from a resolved argument
// vector: the marker line, then one line per argument after argv[0].
// Overflow of the field capacity is an error; see MarshalBinary for why
// truncation is not an option. Arguments must not contain newlines -
// one that does corrupts line framing for the next boot, which the
// resolver there reports as a bad boot message and ignores.
func BuildRecovery(args []string) (string, error) {
	var b strings.Builder
	b.WriteString(strs.RecoveryMarker())
	b.WriteString("\n")
	if len(args) > 1 {
		for _, a := range args[1:] {
			b.WriteString(a)
			b.WriteString("\n")
		}
	}
	if b.Len() >= RecoverySize {
		return "", EOverflow
	}
	return b.String(), nil
}

// ParseRecovery decodes the recovery field back into argument lines.
// Returns ok=false when the marker line is absent - the caller treats
// that as "no command found". Iteration stops at the first empty line,
// and empty args past the block's end never appear.
func ParseRecovery(block string) (args []string, ok bool) {
	lines := strings.Split(block, "\n")
	if len(lines) == 0 || lines[0] != strs.RecoveryMarker() {
		return nil, false
	}
	for _, l := range lines[1:] {
		if l == "" {
			break
		}
		args = append(args, l)
	}
	return args, true
}
