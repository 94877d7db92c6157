// Copyright (C) 2026 the i5700 Recovery Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

// Package bcb reads and writes the boot control block, the fixed-layout
// record on the raw MISC: partition through which recovery and the boot
// firmware hand a pending operation across power cycles.
//
// Layout (wire format shared with the firmware - do not change):
//
//	command  32 bytes   firmware boots to recovery while this holds
//	                    the boot-recovery sentinel; zeroed when done
//	status   32 bytes   written by the firmware; diagnostic only here
//	recovery 1024 bytes "recovery\n" marker line, then one argument
//	                    per line
//
// Fields are NUL-padded text. The record is always read and written
// whole; there are no partial-field updates. A field of 0xff bytes
// (erased flash) is treated the same as zeroes.
package bcb

import (
	"bytes"
	"errors"
	"fmt"
)

const (
	CommandSize  = 32
	StatusSize   = 32
	RecoverySize = 1024
	RecordSize   = CommandSize + StatusSize + RecoverySize
)

var EOverflow = errors.New("field exceeds control block capacity")

// Record is the decoded control block. Fields hold text without the
// NUL padding of the wire form.
type Record struct {
	Command  string
	Status   string
	Recovery string
}

// MarshalBinary encodes the record into its fixed wire layout. A field
// longer than its capacity (less one byte, fields stay NUL-terminated
// on the wire) is an error - never silently truncated, since a
// truncated argument block could direct the next boot to do the wrong
// thing.
func (r *Record) MarshalBinary() ([]byte, error) {
	out := make([]byte, RecordSize)
	for _, f := range []struct {
		name string
		val  string
		off  int
		size int
	}{
		{"command", r.Command, 0, CommandSize},
		{"status", r.Status, CommandSize, StatusSize},
		{"recovery", r.Recovery, CommandSize + StatusSize, RecoverySize},
	} {
		if len(f.val) >= f.size {
			return nil, fmt.Errorf("%w: %s is %d bytes, max %d", EOverflow, f.name, len(f.val), f.size-1)
		}
		copy(out[f.off:], f.val)
	}
	return out, nil
}

// UnmarshalBinary decodes a wire-form record. Each field is terminated
// at its first NUL; a field starting with 0xff reads as empty.
func (r *Record) UnmarshalBinary(b []byte) error {
	if len(b) != RecordSize {
		return fmt.Errorf("control block is %d bytes, want %d", len(b), RecordSize)
	}
	r.Command = field(b[:CommandSize])
	r.Status = field(b[CommandSize : CommandSize+StatusSize])
	r.Recovery = field(b[CommandSize+StatusSize:])
	return nil
}

func field(b []byte) string {
	if len(b) == 0 || b[0] == 0xff {
		return ""
	}
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

//Empty is true when no field holds anything.
func (r *Record) Empty() bool {
	return r.Command == "" && r.Status == "" && r.Recovery == ""
}
