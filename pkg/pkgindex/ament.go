// Copyright (c) 2021-2026 OUXT Polaris and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package pkgindex

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/samber/lo"
	"ouxt.dev/x/navilaunch/pkg/resolutionerrors"
	"ouxt.dev/x/navilaunch/pkg/utils"
)

const (
	AmentPrefixPathEnvVar = "AMENT_PREFIX_PATH"

	// ResourceIndexDir is relative to an install prefix
	ResourceIndexDir     = "share/ament_index/resource_index"
	PackagesResourceType = "packages"
)

// AmentIndex looks packages up in the ament resource index of one or more
// install prefixes. Earlier prefixes shadow later ones.
type AmentIndex struct {
	Prefixes []string
}

func NewAmentIndex(prefixes ...string) *AmentIndex {
	return &AmentIndex{
		Prefixes: lo.Uniq(lo.FilterMap(prefixes, func(p string, _ int) (string, bool) {
			p = strings.TrimSpace(p)
			if p == "" {
				return "", false
			}
			return filepath.Clean(p), true
		})),
	}
}

// SplitPrefixPath splits an AMENT_PREFIX_PATH style value
func SplitPrefixPath(value string) []string {
	return filepath.SplitList(value)
}

// Prefix returns the install prefix holding the package's marker file
func (a *AmentIndex) Prefix(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", resolutionerrors.NewPackageNotFoundError(name, nil)
	}

	for _, prefix := range a.Prefixes {
		marker := filepath.Join(prefix, ResourceIndexDir, PackagesResourceType, name)
		ok, err := utils.FileExists(marker)
		if err != nil {
			return "", err
		}
		if ok {
			slog.Debug("resolved package", "package", name, "prefix", prefix)
			return prefix, nil
		}
	}
	return "", resolutionerrors.NewPackageNotFoundError(name, a.Prefixes)
}

func (a *AmentIndex) ShareDirectory(name string) (string, error) {
	prefix, err := a.Prefix(name)
	if err != nil {
		return "", err
	}
	return filepath.Join(prefix, "share", name), nil
}

// Executable returns the path of an executable installed by a package,
// i.e. <prefix>/lib/<package>/<executable>
func (a *AmentIndex) Executable(pkg, executable string) (string, error) {
	prefix, err := a.Prefix(pkg)
	if err != nil {
		return "", err
	}
	p := filepath.Join(prefix, "lib", pkg, executable)
	ok, err := utils.FileExists(p)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("executable %q not found in package %q: %w", executable, pkg, os.ErrNotExist)
	}
	return p, nil
}

// Packages lists every package registered in any prefix, sorted
func (a *AmentIndex) Packages() ([]string, error) {
	var names []string
	for _, prefix := range a.Prefixes {
		dir := filepath.Join(prefix, ResourceIndexDir, PackagesResourceType)
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		names = append(names, lo.FilterMap(entries, func(e os.DirEntry, _ int) (string, bool) {
			return e.Name(), !e.IsDir() && !strings.HasPrefix(e.Name(), ".")
		})...)
	}
	names = lo.Uniq(names)
	slices.Sort(names)
	return names, nil
}
