// Copyright (c) 2021-2026 OUXT Polaris and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package describe

import (
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"ouxt.dev/x/navilaunch/pkg/builtincommand"
	"ouxt.dev/x/navilaunch/pkg/launchconfig"
	"ouxt.dev/x/navilaunch/pkg/navilaunch"
	"ouxt.dev/x/navilaunch/pkg/pkgindex"
)

func Cmd(config *launchconfig.Config) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   string(builtincommand.Describe),
		Short: "print the composed launch description",
		Long: fmt.Sprintf(`print the composed launch description.
Packages are resolved through $%s and %s`, pkgindex.AmentPrefixPathEnvVar, launchconfig.ConfigFileName),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			d, err := navilaunch.Compose(config)
			if err != nil {
				return err
			}

			var data []byte
			switch output {
			case "yaml":
				data, err = yaml.Marshal(d)
			case "json":
				data, err = json.MarshalIndent(d, "", "    ")
			default:
				return fmt.Errorf("output format not supported: %s", output)
			}
			if err != nil {
				return err
			}

			cmd.Println(string(data))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "output format: yaml, json")
	return cmd
}
