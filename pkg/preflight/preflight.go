// Copyright (c) 2021-2026 OUXT Polaris and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package preflight

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/fatih/color"
	"github.com/samber/lo"
	"ouxt.dev/x/navilaunch/pkg/launchdesc"
	"ouxt.dev/x/navilaunch/pkg/utils"
)

var ErrMissingFiles = fmt.Errorf("launch description references missing files")

// Reference is a file path a directive hands to its process
type Reference struct {
	Directive string
	Path      string
}

type Finding struct {
	Reference
	Exists bool
}

// References collects absolute paths from node arguments, string node
// parameters and include paths. Relative paths are left to the process.
func References(d *launchdesc.Description) []Reference {
	var refs []Reference
	for _, dir := range d.Directives {
		switch v := dir.(type) {
		case *launchdesc.Node:
			for _, a := range v.Arguments {
				if filepath.IsAbs(a) {
					refs = append(refs, Reference{Directive: v.DirectiveName(), Path: a})
				}
			}
			for _, params := range v.Parameters {
				keys := lo.Keys(params)
				slices.Sort(keys)
				for _, k := range keys {
					if s, ok := params[k].(string); ok && filepath.IsAbs(s) {
						refs = append(refs, Reference{Directive: v.DirectiveName(), Path: s})
					}
				}
			}
		case *launchdesc.Include:
			refs = append(refs, Reference{Directive: v.DirectiveName(), Path: v.Path})
		}
	}
	return refs
}

// Check stats every referenced path
func Check(d *launchdesc.Description) ([]Finding, error) {
	refs := References(d)
	findings := make([]Finding, 0, len(refs))
	for _, r := range refs {
		exists, err := utils.FileExists(r.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to check %q for %q: %w", r.Path, r.Directive, err)
		}
		findings = append(findings, Finding{Reference: r, Exists: exists})
	}
	return findings, nil
}

func Missing(findings []Finding) []Finding {
	return lo.Reject(findings, func(f Finding, _ int) bool {
		return f.Exists
	})
}

// Verify returns ErrMissingFiles naming every missing path
func Verify(d *launchdesc.Description) error {
	findings, err := Check(d)
	if err != nil {
		return err
	}
	missing := Missing(findings)
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %q", ErrMissingFiles, lo.Map(missing, func(f Finding, _ int) string {
		return f.Path
	}))
}

func Report(p utils.RawPrinter, findings []Finding) {
	for _, f := range findings {
		status := color.GreenString("ok")
		if !f.Exists {
			status = color.RedString("missing")
		}
		p.Printf("%-8s %s %s\n", status, color.CyanString(f.Directive), f.Path)
	}
}
