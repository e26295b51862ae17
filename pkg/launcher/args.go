// Copyright (c) 2021-2026 OUXT Polaris and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package launcher

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/samber/lo"
	"ouxt.dev/x/navilaunch/pkg/launchdesc"
)

const (
	RosArgsFlag   = "--ros-args"
	NodeNameRemap = "__node"
)

// NodeArgs returns the node's own arguments followed by the ROS arguments
// for its name and parameters. Parameter sets keep declaration order; keys
// within a set are sorted.
func NodeArgs(n *launchdesc.Node) ([]string, error) {
	args := slices.Clone(n.Arguments)

	var rosArgs []string
	if n.Name != "" {
		rosArgs = append(rosArgs, "-r", NodeNameRemap+":="+n.Name)
	}
	for _, params := range n.Parameters {
		keys := lo.Keys(params)
		slices.Sort(keys)
		for _, k := range keys {
			v, err := FormatParameter(params[k])
			if err != nil {
				return nil, fmt.Errorf("parameter %q of %q: %w", k, n.DirectiveName(), err)
			}
			rosArgs = append(rosArgs, "-p", k+":="+v)
		}
	}

	if len(rosArgs) > 0 {
		args = append(args, RosArgsFlag)
		args = append(args, rosArgs...)
	}
	return args, nil
}

// FormatParameter renders a parameter value the way `-p name:=value` expects it,
// as flow style yaml. Strings go verbatim unless yaml would read them back as
// something else ("true", "10", ""), in which case they're double quoted.
func FormatParameter(v any) (string, error) {
	if s, ok := v.(string); ok {
		var decoded any
		if err := yaml.Unmarshal([]byte(s), &decoded); err == nil && decoded == s {
			return s, nil
		}
		return strconv.Quote(s), nil
	}
	bytes, err := yaml.MarshalWithOptions(v, yaml.Flow(true))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(bytes)), nil
}

// IncludeArgs returns `launch <path> key:=value...` with keys sorted
func IncludeArgs(i *launchdesc.Include) []string {
	args := []string{"launch", i.Path}
	keys := lo.Keys(i.Arguments)
	slices.Sort(keys)
	for _, k := range keys {
		args = append(args, k+":="+i.Arguments[k])
	}
	return args
}
