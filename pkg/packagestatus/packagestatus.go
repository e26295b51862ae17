// Copyright (c) 2021-2026 OUXT Polaris and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package packagestatus

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/Masterminds/semver/v3"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/samber/lo"
	"ouxt.dev/x/navilaunch/pkg/pkgindex"
	"ouxt.dev/x/navilaunch/pkg/resolutionerrors"
	"ouxt.dev/x/navilaunch/pkg/utils"
)

type Status struct {
	Name        string          `json:"name" yaml:"name"`
	ShareDir    string          `json:"shareDir,omitempty" yaml:"shareDir,omitempty"`
	Version     *semver.Version `json:"version,omitempty" yaml:"version,omitempty"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
	Found       bool            `json:"found" yaml:"found"`
	// Problem describes an unreadable package.xml; it doesn't make the package unusable
	Problem string `json:"problem,omitempty" yaml:"problem,omitempty"`
	// Error is set when the package couldn't be resolved
	Error *resolutionerrors.ResolutionError `json:"error,omitempty" yaml:"error,omitempty"`
}

type Statuses []*Status

// Lookup resolves each package and reads its manifest. A failed lookup is
// recorded on the package's status rather than returned.
func Lookup(registry pkgindex.Registry, names []string) Statuses {
	return lo.Map(names, func(name string, _ int) *Status {
		return lookup(registry, name)
	})
}

func lookup(registry pkgindex.Registry, name string) *Status {
	s := &Status{Name: name}

	dir, err := registry.ShareDirectory(name)
	if err != nil {
		if !resolutionerrors.IsPackageNotFound(err) {
			slog.Warn("package lookup failed", "package", name, "err", err)
		}
		s.Error = resolutionerrors.Standardize(name, err)
		return s
	}
	s.Found = true
	s.ShareDir = dir

	ok, err := utils.DirExists(dir)
	if err != nil || !ok {
		s.Problem = "share directory does not exist"
		return s
	}

	m, err := pkgindex.ReadPackageManifest(dir)
	switch {
	case err == nil:
		s.Version = m.Version
		s.Description = m.Description
		if m.Name != name {
			s.Problem = fmt.Sprintf("%s declares package %q", m.Path, m.Name)
		}
	case errors.Is(err, fs.ErrNotExist):
		s.Problem = "no " + pkgindex.PackageManifestFilename
	default:
		slog.Debug("unreadable package manifest", "package", name, "err", err)
		s.Problem = err.Error()
	}
	return s
}

func (s Statuses) Missing() []string {
	return lo.FilterMap(s, func(st *Status, _ int) (string, bool) {
		return st.Name, !st.Found
	})
}

func (s Statuses) Table() string {
	return table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		Rows(lo.Map(s, func(row *Status, _ int) []string {
			if !row.Found {
				msg := "not found"
				if row.Error != nil && row.Error.Code != resolutionerrors.PackageNotFound {
					msg = row.Error.Error()
				}
				return []string{
					row.Name,
					lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true).Render(msg),
					"",
					"",
				}
			}

			version := lo.TernaryF(row.Version != nil,
				func() string { return row.Version.String() },
				func() string {
					return lipgloss.NewStyle().Faint(true).Italic(true).Render(row.Problem)
				})
			return []string{
				lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true).Render(row.Name),
				row.ShareDir,
				version,
				lipgloss.NewStyle().Faint(true).Render(row.Description),
			}
		})...).
		String()
}
