// Copyright (c) 2021-2026 OUXT Polaris and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
	navicmd "ouxt.dev/x/navilaunch/cmd/navilaunch/cmd"
	"ouxt.dev/x/navilaunch/pkg/navilaunch"
	"ouxt.dev/x/navilaunch/pkg/utils"
)

func main() {
	ctx, cancelFn := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancelFn()

	if err := getDocsCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func getDocsCmd() *cobra.Command {
	var format string

	docsCmd := &cobra.Command{
		Use:   "docs <output dir>",
		Short: "generate navilaunch CLI commands reference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]

			var gen func(*cobra.Command, string) error
			switch format {
			case "md":
				gen = func(root *cobra.Command, dir string) error {
					return doc.GenMarkdownTreeCustom(root, dir, prependFrontMatter, func(s string) string { return s })
				}
			case "man":
				gen = func(root *cobra.Command, dir string) error {
					return doc.GenManTree(root, &doc.GenManHeader{Title: "NAVILAUNCH", Section: "1"}, dir)
				}
			default:
				return fmt.Errorf("only --format md or --format man are supported")
			}

			if err := genDocs(cmd.Context(), dir, gen); err != nil {
				cmd.SilenceUsage = true
				return err
			}

			fmt.Printf("successfully generated at %s\n", dir)
			return nil
		},
	}

	docsCmd.Flags().StringVar(&format, "format", "", "(required) md or man")
	_ = docsCmd.MarkFlagRequired("format")

	return docsCmd
}

func genDocs(ctx context.Context, dir string, gen func(*cobra.Command, string) error) error {
	nl := &navilaunch.NaviLaunch{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		OsArgs: []string{os.Args[0]},
	}
	root, err := navicmd.RootCmd(ctx, nl)
	if err != nil {
		return err
	}
	root.DisableAutoGenTag = true

	if err := utils.EnsureDirs(dir); err != nil {
		return err
	}
	return gen(root, dir)
}

// add a Jekyll/Just-the-Docs front-matter block
func prependFrontMatter(filename string) string {
	base := filepath.Base(filename)
	cmdKey := strings.TrimSuffix(base, ".md")
	title := strings.ReplaceAll(cmdKey, "_", " ")
	return fmt.Sprintf(`---
layout: default
title: %s
parent: CLI reference
---

`, title)
}
