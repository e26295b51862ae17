// Copyright (c) 2021-2026 OUXT Polaris and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"ouxt.dev/x/navilaunch/cmd/navilaunch/cmd/check"
	"ouxt.dev/x/navilaunch/cmd/navilaunch/cmd/describe"
	"ouxt.dev/x/navilaunch/cmd/navilaunch/cmd/packages"
	"ouxt.dev/x/navilaunch/cmd/navilaunch/cmd/run"
	"ouxt.dev/x/navilaunch/pkg/builtincommand"
	"ouxt.dev/x/navilaunch/pkg/launchconfig"
	"ouxt.dev/x/navilaunch/pkg/launchversion"
	"ouxt.dev/x/navilaunch/pkg/logging"
	"ouxt.dev/x/navilaunch/pkg/navilaunch"
)

const Name = launchconfig.AppName

func RootCmd(ctx context.Context, nl *navilaunch.NaviLaunch) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:   Name,
		Short: "compose and run the navigation simulator launch",
	}

	defer nl.SetOutputStreams(cmd)

	if len(nl.OsArgs) == 0 {
		return nil, fmt.Errorf("NaviLaunch.OsArgs must contain at least one entry similar to os.Args")
	}
	cmd.SetArgs(nl.OsArgs[1:])

	if err := logging.InitLoggingTo(nl.Stderr); err != nil {
		return nil, err
	}

	// help, completion and --version shouldn't fail on a broken config file
	config := &launchconfig.Config{Ros2Command: launchconfig.DefaultRos2Command}
	if builtincommand.NeedsConfig(nl.OsArgs) {
		var err error
		config, err = launchconfig.Get()
		if err != nil {
			return nil, err
		}
		if err := config.EnsureDirs(); err != nil {
			return nil, err
		}
	}

	cmd.AddCommand(
		describe.Cmd(config),
		run.Cmd(config),
		check.Cmd(config),
		packages.Cmd(config),
	)

	version, err := yaml.Marshal(launchversion.Get())
	if err != nil {
		return nil, err
	}
	cmd.Version = string(version)
	cmd.SetVersionTemplate("{{.Version}}")

	return cmd, nil
}
