// Copyright (C) 2026 the i5700 Recovery Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package bcb

import (
	"fmt"
	"io"
	"os"
)

// Store reads and writes whole control block records at a fixed offset
// on a raw block device. In tests the device is a plain file.
type Store struct {
	dev    string
	offset int64
}

//NewStore returns a store for the control block at offset 0 of dev.
func NewStore(dev string) *Store { return &Store{dev: dev} }

//NewStoreAt is NewStore with a nonzero record offset within the device.
func NewStoreAt(dev string, offset int64) *Store {
	return &Store{dev: dev, offset: offset}
}

// Read returns the current record. Errors leave the caller with no
// record; per the protocol that means "no command found", never a
// crash.
func (s *Store) Read() (*Record, error) {
	f, err := os.Open(s.dev)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	buf := make([]byte, RecordSize)
	if _, err := f.ReadAt(buf, s.offset); err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading control block: %w", err)
	}
	r := &Record{}
	if err := r.UnmarshalBinary(buf); err != nil {
		return nil, err
	}
	return r, nil
}

// Write persists the record and forces it to media. The write is the
// durable checkpoint of the whole protocol; without the sync a crash
// could lose the re-entry sentinel while the operation proceeds.
func (s *Store) Write(r *Record) error {
	buf, err := r.MarshalBinary()
	if err != nil {
		return err
	}
	f, err := os.OpenFile(s.dev, os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteAt(buf, s.offset); err != nil {
		return fmt.Errorf("writing control block: %w", err)
	}
	return f.Sync()
}

//Clear overwrites the record with zeroes - the firmware then performs
//a normal boot.
func (s *Store) Clear() error {
	return s.Write(&Record{})
}
