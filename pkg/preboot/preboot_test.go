// Copyright (C) 2026 the i5700 Recovery Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package preboot

import (
	"testing"
)

func TestPerformIsLIFO(t *testing.T) {
	var l List
	var order []string
	for _, name := range []string{"a", "b", "c"} {
		n := name
		l.Add(&Task{Name: n, Func: func(bool) { order = append(order, n) }})
	}
	l.Perform(true)
	if len(order) != 3 || order[0] != "c" || order[2] != "a" {
		t.Errorf("order %v", order)
	}
	//tasks are consumed; a second Perform is a no-op
	l.Perform(true)
	if len(order) != 3 {
		t.Errorf("tasks ran twice: %v", order)
	}
}

func TestFilterOut(t *testing.T) {
	var l List
	l.Add(&Task{Name: "keep", Func: func(bool) {}})
	l.Add(&Task{Name: "drop", Func: func(bool) {}})
	l = l.FilterOut(func(task *Task) bool { return task.Name == "drop" })
	if len(l.tasks) != 1 || l.tasks[0].Name != "keep" {
		t.Errorf("filter result %v", l.tasks)
	}
}

func TestSuccessFlagReachesTasks(t *testing.T) {
	var l List
	var got bool
	l.Add(&Task{Name: "record", Func: func(success bool) { got = success }})
	l.Perform(true)
	if !got {
		t.Error("success flag lost")
	}
}
