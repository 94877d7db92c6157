// Copyright (C) 2026 the i5700 Recovery Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

//Package preboot works with a list of tasks to run just before the
//process hands control back to the firmware. Like defer, it is last-in
//first-out. The bool passed to Perform indicates success/failure of the
//overall run; most tasks ignore it.
package preboot

import (
	"fmt"
	"time"

	"github.com/chibucks/i5700-leshak-recovery2/pkg/log"

	"golang.org/x/sys/unix"
)

type Fun func(success bool)
type Task struct {
	Name string
	Func Fun
}
type List struct{ tasks []*Task }

type Filter func(t *Task) bool

//return subset of given list where filter matches (only positives)
func (l *List) Filter(filter Filter) List {
	var out List
	for _, entry := range l.tasks {
		if filter(entry) {
			out.tasks = append(out.tasks, entry)
		}
	}
	return out
}

//return subset of given list where filter does not match
func (l *List) FilterOut(filter Filter) List {
	return l.Filter(func(t *Task) bool { return !filter(t) })
}

func (l *List) Perform(success bool) {
	//go through list, last first, removing tasks as they are done
	for {
		n := len(l.tasks)
		if n == 0 {
			return
		}
		l.tasks[n-1].Func(success)
		l.tasks = l.tasks[:n-1]
	}
}

func (l *List) Clear() { l.tasks = nil }

func (l *List) Add(t *Task) {
	l.tasks = append(l.tasks, t)
}
func (l *List) AddFirst(t *Task) {
	l.tasks = append([]*Task{t}, l.tasks...)
}

// Adds tasks to finish the log, unmount filesystems, and sync disks.
// These must be the _last_ things run, so they are inserted at the
// beginning of the list, in reverse order. The unmount function is
// passed in to avoid an import cycle.
func AddDefaults(unmountFunc func(bool)) {
	RemoveDefaults()
	Preboots.AddFirst(&Task{Name: "log.Finalize", Func: func(_ bool) { log.Finalize() }})
	Preboots.AddFirst(&Task{Name: "umount", Func: func(success bool) {
		if unmountFunc != nil {
			unmountFunc(success)
		}
	}})
	Preboots.AddFirst(&Task{Name: "sync", Func: func(_ bool) {
		fmt.Println("Flushing disk cache...")
		ss := time.Now()
		unix.Sync()
		fmt.Printf("sync: %s\n", time.Since(ss))
	}})
}

func RemoveDefaults() {
	Preboots = Preboots.FilterOut(func(t *Task) bool {
		switch t.Name {
		case "umount", "sync", "log.Finalize":
			return true
		}
		return false
	})
}

var Preboots List
