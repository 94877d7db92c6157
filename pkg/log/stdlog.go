// Copyright (C) 2026 the i5700 Recovery Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package log

import (
	"log"
	"strings"

	"github.com/chibucks/i5700-leshak-recovery2/pkg/log/flags"
)

// AdaptStdlog redirects output from the system pkg "log" into this
// stack, so third-party code logging through the stdlib still lands in
// the session log. Time flags are cleared from the std logger so
// timestamps aren't added twice. Use nil for the predefined "standard"
// logger.
func AdaptStdlog(logger *log.Logger, level flags.Flag) {
	sa := &stdAdapter{level: level, logger: logger}
	if logger == nil {
		log.SetOutput(sa)
		log.SetFlags(log.Flags() &^ (log.Ldate | log.Ltime | log.Lmicroseconds))
	} else {
		logger.SetOutput(sa)
		logger.SetFlags(logger.Flags() &^ (log.Ldate | log.Ltime | log.Lmicroseconds))
	}
}

type stdAdapter struct {
	level  flags.Flag
	logger *log.Logger
}

func (sa *stdAdapter) Write(b []byte) (int, error) {
	FlaggedLogf(sa.level, strings.TrimSuffix(string(b), "\n"))
	return len(b), nil
}
