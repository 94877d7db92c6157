// Copyright (C) 2026 the i5700 Recovery Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package vpath

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"text/template"

	"github.com/chibucks/i5700-leshak-recovery2/pkg/log"
	"github.com/google/shlex"
)

var ECantFormat = errors.New("root cannot be formatted")

//Template context for FormatCmd.
type formatEnv struct {
	Device string
	Label  string
}

// Format reformats the root by running its (templated) external format
// command. Formatting is delegated entirely to that command; recovery
// only sequences it. The root must be unmounted first.
func (r *Root) Format() error {
	if r.Raw || r.Premounted || r.Device == "" {
		return fmt.Errorf("%w: %s", ECantFormat, r.Name)
	}
	if r.mounted {
		if err := r.Unmount(); err != nil {
			return err
		}
	}
	cmdline := r.FormatCmd
	if cmdline == "" {
		cmdline = defaultFormatCmd(r.FsType)
		if cmdline == "" {
			return fmt.Errorf("%w: no format command for fstype %q", ECantFormat, r.FsType)
		}
	}
	tmpl, err := template.New("format").Parse(cmdline)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	env := formatEnv{Device: r.Device, Label: strings.TrimSuffix(r.Name, ":")}
	if err := tmpl.Execute(&buf, env); err != nil {
		return err
	}
	argv, err := shlex.Split(buf.String())
	if err != nil || len(argv) == 0 {
		return fmt.Errorf("%w: bad format command %q", ECantFormat, buf.String())
	}
	log.Logf("formatting %s (%s)", r.Name, r.Device)
	if _, ok := log.Cmd(exec.Command(argv[0], argv[1:]...)); !ok {
		return fmt.Errorf("format %s failed", r.Name)
	}
	return nil
}

func defaultFormatCmd(fstype string) string {
	switch fstype {
	case "ext4", "ext3", "ext2":
		return "mke2fs -t " + fstype + " -L {{.Label}} -m 1 {{.Device}}"
	case "vfat":
		return "mkdosfs -n {{.Label}} {{.Device}}"
	}
	return ""
}
