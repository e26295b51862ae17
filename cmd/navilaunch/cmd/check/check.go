// Copyright (c) 2021-2026 OUXT Polaris and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package check

import (
	"fmt"

	"github.com/spf13/cobra"
	"ouxt.dev/x/navilaunch/pkg/builtincommand"
	"ouxt.dev/x/navilaunch/pkg/launchconfig"
	"ouxt.dev/x/navilaunch/pkg/navilaunch"
	"ouxt.dev/x/navilaunch/pkg/preflight"
)

func Cmd(config *launchconfig.Config) *cobra.Command {
	return &cobra.Command{
		Use:   string(builtincommand.Check),
		Short: "check that every file the launch references exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			d, err := navilaunch.Compose(config)
			if err != nil {
				return err
			}

			findings, err := preflight.Check(d)
			if err != nil {
				return err
			}
			preflight.Report(cmd, findings)

			if missing := preflight.Missing(findings); len(missing) > 0 {
				return fmt.Errorf("%w: %d of %d", preflight.ErrMissingFiles, len(missing), len(findings))
			}
			return nil
		},
	}
}
