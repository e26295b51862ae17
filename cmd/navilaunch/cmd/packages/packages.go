// Copyright (c) 2021-2026 OUXT Polaris and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package packages

import (
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"ouxt.dev/x/navilaunch/pkg/builtincommand"
	"ouxt.dev/x/navilaunch/pkg/composer"
	"ouxt.dev/x/navilaunch/pkg/launchconfig"
	"ouxt.dev/x/navilaunch/pkg/packagestatus"
	"ouxt.dev/x/navilaunch/pkg/resolutionerrors"
)

func Cmd(config *launchconfig.Config) *cobra.Command {
	var all bool
	var output string

	cmd := &cobra.Command{
		Use:   string(builtincommand.Packages),
		Short: "show where the packages the launch needs are installed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			names := composer.RequiredPackages
			if all {
				indexed, err := config.AmentIndex().Packages()
				if err != nil {
					return err
				}
				names = lo.Uniq(append(config.Overridden(), indexed...))
			}

			statuses := packagestatus.Lookup(config.Registry(), names)

			switch output {
			case "table":
				cmd.Println(statuses.Table())
			case "json":
				data, err := json.MarshalIndent(statuses, "", "    ")
				if err != nil {
					return err
				}
				cmd.Println(string(data))
			case "yaml":
				data, err := yaml.Marshal(statuses)
				if err != nil {
					return err
				}
				cmd.Print(string(data))
			default:
				return fmt.Errorf("output format not supported: %s", output)
			}

			if missing := statuses.Missing(); len(missing) > 0 && !all {
				return fmt.Errorf("%w: %q", resolutionerrors.ErrPackageNotFound, missing)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "A", false, "list every package in the ament index")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format: json, table, yaml")
	return cmd
}
