// Copyright (c) 2021-2026 OUXT Polaris and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package navilaunch

import (
	"io"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"ouxt.dev/x/navilaunch/pkg/composer"
	"ouxt.dev/x/navilaunch/pkg/launchconfig"
	"ouxt.dev/x/navilaunch/pkg/launchdesc"
)

type NaviLaunch struct {
	Stderr, Stdout io.Writer
	Stdin          io.Reader
	// must contain at least one argument, namely the binary name, similar to os.Args
	OsArgs []string
}

func (nl *NaviLaunch) SetOutputStreams(cmd *cobra.Command) {
	cmd.SetOut(nl.Stdout)
	cmd.SetErr(nl.Stderr)
	cmd.SetIn(nl.Stdin)

	lo.ForEach(cmd.Commands(), func(sub *cobra.Command, _ int) {
		nl.SetOutputStreams(sub)
	})
}

// Compose builds the simulator launch description against the configured registry
func Compose(config *launchconfig.Config) (*launchdesc.Description, error) {
	return composer.Compose(config.Registry())
}
