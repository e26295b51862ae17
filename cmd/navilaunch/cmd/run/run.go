// Copyright (c) 2021-2026 OUXT Polaris and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package run

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"ouxt.dev/x/navilaunch/pkg/builtincommand"
	"ouxt.dev/x/navilaunch/pkg/launchconfig"
	"ouxt.dev/x/navilaunch/pkg/launchdesc"
	"ouxt.dev/x/navilaunch/pkg/launcher"
	"ouxt.dev/x/navilaunch/pkg/navilaunch"
	"ouxt.dev/x/navilaunch/pkg/preflight"
	"ouxt.dev/x/navilaunch/pkg/utils"
)

func Cmd(config *launchconfig.Config) *cobra.Command {
	var dryRun bool
	var descriptionFile string

	cmd := &cobra.Command{
		Use:   string(builtincommand.Run),
		Short: "launch the visualizer, simulators and vehicle description",
		Long: fmt.Sprintf(`launch the visualizer, simulators and vehicle description.
All processes run until one of them fails or the launch is interrupted.
Only one launch may run per $%s at a time.`, launchconfig.HomeEnvVar),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			var d *launchdesc.Description
			var err error
			if descriptionFile != "" {
				d, err = launchdesc.ReadDescription(descriptionFile)
			} else {
				d, err = navilaunch.Compose(config)
			}
			if err != nil {
				return err
			}

			if config.PreflightEnabled() {
				if err := preflight.Verify(d); err != nil {
					return fmt.Errorf("%w. Set %s=false to launch anyway", err, launchconfig.PreflightEnvVar)
				}
			}

			l := launcher.New(config, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if dryRun {
				procs, err := l.Plan(d)
				if err != nil {
					return err
				}
				for _, p := range procs {
					cmd.Println(p.String())
				}
				return nil
			}

			return utils.WithLaunchLock(cmd.Context(), config.LockFilePath, func() error {
				slog.Info("launching", "directives", len(d.Directives))
				return l.Run(cmd.Context(), d)
			})
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the commands instead of running them")
	cmd.Flags().StringVarP(&descriptionFile, "file", "f", "", "run a description written by 'describe' instead of composing one")
	return cmd
}
