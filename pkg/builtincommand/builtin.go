// Copyright (c) 2021-2026 OUXT Polaris and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package builtincommand

import (
	"github.com/samber/lo"
)

type BuiltinCommand string

const (
	Describe BuiltinCommand = "describe"
	Run      BuiltinCommand = "run"
	Check    BuiltinCommand = "check"
	Packages BuiltinCommand = "packages"
)

var BuiltinCommands = []BuiltinCommand{Describe, Run, Check, Packages}

// NeedsConfig reports whether the invoked command loads configuration.
// Help and completion requests don't.
func NeedsConfig(args []string) bool {
	if len(args) > 1 {
		return lo.Contains(BuiltinCommands, BuiltinCommand(args[1]))
	}
	return false
}
