// Copyright (C) 2026 the i5700 Recovery Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

// Package bootargs determines the operation recovery performs on this
// boot.
//
// Arguments come from, in decreasing precedence:
//   - the actual command line
//   - the boot control block (one per line, after the marker)
//   - the contents of the command file (one per line)
//
// Sources are never merged: the first that yields anything wins.
// Deciding (Resolve) and persisting (Persist) are separate on purpose -
// Persist must run before any operation starts, so that a crash
// mid-operation re-enters recovery with the same vector, and keeping it
// separate keeps both halves testable.
package bootargs

import (
	"bufio"
	"os"
	"strings"

	"github.com/chibucks/i5700-leshak-recovery2/pkg/bcb"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/log"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/strs"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/vpath"
)

const (
	//MaxArgs bounds the resolved vector, argv[0] included.
	MaxArgs = 100
	//MaxArgLength bounds a single argument line.
	MaxArgLength = 4096
)

//Source tags where the resolved vector came from.
type Source int

const (
	None Source = iota
	FromInvocation
	FromBootRecord
	FromCommandFile
)

func (s Source) String() string {
	switch s {
	case FromInvocation:
		return "command line"
	case FromBootRecord:
		return "boot message"
	case FromCommandFile:
		return "command file"
	}
	return "nothing"
}

// Resolve produces the argument vector for this boot. The returned
// vector always has the program name at index 0 and is immutable for
// the rest of the process; len(vector)==1 means no operation was
// requested. Pure decision - call Persist with the result before
// acting on it.
//
// The control block is read and its command/status fields logged even
// when the invocation wins: the returned record carries the
// firmware-owned status field, which Persist must write back unchanged.
func Resolve(invocation []string, store *bcb.Store, roots *vpath.Table) ([]string, Source, *bcb.Record) {
	boot := readRecord(store)
	if boot.Command != "" {
		log.Logf("Boot command: %s", boot.Command)
	}
	if boot.Status != "" {
		log.Logf("Boot status: %s", boot.Status)
	}

	if len(invocation) > 1 {
		vec := append([]string{}, invocation[:min(len(invocation), MaxArgs)]...)
		log.Logf("Got arguments from command line")
		return vec, FromInvocation, boot
	}

	if args, ok := bcb.ParseRecovery(boot.Recovery); ok {
		vec := []string{strs.ProgName()}
		for _, a := range args {
			if len(vec) >= MaxArgs {
				break
			}
			vec = append(vec, a)
		}
		log.Logf("Got arguments from boot message")
		return vec, FromBootRecord, boot
	} else if boot.Recovery != "" {
		//non-empty garbage; diagnose and fall through
		log.Logf("Bad boot message\n%q", head(boot.Recovery, 20))
	}

	if vec, ok := readCommandFile(roots); ok {
		log.Logf("Got arguments from %s", strs.CommandFile())
		return vec, FromCommandFile, boot
	}

	return []string{strs.ProgName()}, None, boot
}

// Persist writes the vector back into the boot control block, with the
// command field set to the re-entry sentinel: from here until finish
// clears the record, every boot lands back in recovery with this same
// vector. The status field belongs to the firmware; callers pass the
// value Resolve read so the rewrite carries it through untouched.
// Failure is logged, not fatal - recovery still runs, just without
// restart safety for this boot.
func Persist(vec []string, status string, store *bcb.Store) error {
	block, err := bcb.BuildRecovery(vec)
	if err != nil {
		//an oversize block is not written at all - a truncated argument
		//list is worse than a lost one
		log.Logf("can't persist boot arguments: %s", err)
		return err
	}
	rec := &bcb.Record{
		Command:  strs.BootCommand(),
		Status:   status,
		Recovery: block,
	}
	if err := store.Write(rec); err != nil {
		log.Logf("can't write boot control block: %s", err)
		return err
	}
	return nil
}

//Read failure yields a zeroed record, per the protocol.
func readRecord(store *bcb.Store) *bcb.Record {
	rec, err := store.Read()
	if err != nil {
		log.Logf("can't read boot control block: %s", err)
		return &bcb.Record{}
	}
	return rec
}

func readCommandFile(roots *vpath.Table) ([]string, bool) {
	f, err := roots.Open(strs.CommandFile(), os.O_RDONLY, 0)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Logf("can't open %s: %s", strs.CommandFile(), err)
		}
		return nil, false
	}
	defer f.Close()
	vec := []string{strs.ProgName()}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 4096), MaxArgLength)
	for sc.Scan() {
		if len(vec) >= MaxArgs {
			break
		}
		//strip trailing CR; the main system may write CRLF
		arg := strings.TrimRight(sc.Text(), "\r")
		if arg == "" {
			continue
		}
		vec = append(vec, arg)
	}
	if err := sc.Err(); err != nil {
		log.Logf("reading %s: %s", strs.CommandFile(), err)
	}
	return vec, true
}

func head(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
