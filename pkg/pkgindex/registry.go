// Copyright (c) 2021-2026 OUXT Polaris and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package pkgindex

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"ouxt.dev/x/navilaunch/pkg/resolutionerrors"
	"ouxt.dev/x/navilaunch/pkg/utils"
)

// Registry resolves an installed package name to its share directory.
// Implementations return a *resolutionerrors.ResolutionError wrapping
// resolutionerrors.ErrPackageNotFound when the package isn't installed.
type Registry interface {
	ShareDirectory(name string) (string, error)
}

// Static is a fixed name -> share directory mapping
type Static map[string]string

func (s Static) ShareDirectory(name string) (string, error) {
	dir, ok := s[name]
	if !ok || dir == "" {
		return "", resolutionerrors.NewPackageNotFoundError(name, nil)
	}
	return dir, nil
}

// Executable treats the share directory as <prefix>/share/<package> and
// looks for <prefix>/lib/<package>/<executable>
func (s Static) Executable(pkg, executable string) (string, error) {
	dir, err := s.ShareDirectory(pkg)
	if err != nil {
		return "", err
	}
	p := filepath.Join(filepath.Dir(filepath.Dir(dir)), "lib", pkg, executable)
	ok, err := utils.FileExists(p)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("executable %q not found in package %q at %q: %w", executable, pkg, p, fs.ErrNotExist)
	}
	return p, nil
}

// Chain asks each registry in order and returns the first hit.
// Errors other than not-found stop the search.
type Chain []Registry

func (c Chain) ShareDirectory(name string) (string, error) {
	var lastErr error = resolutionerrors.NewPackageNotFoundError(name, nil)
	for _, r := range c {
		dir, err := r.ShareDirectory(name)
		if err == nil {
			return dir, nil
		}
		if !resolutionerrors.IsPackageNotFound(err) {
			return "", err
		}
		lastErr = err
	}
	slog.Debug("package not found in any registry", "package", name)
	return "", lastErr
}

// Executable asks each link that can resolve executables, in order. A link
// that doesn't know the package or lacks the executable passes to the next;
// the first such error is returned when every link misses.
func (c Chain) Executable(pkg, executable string) (string, error) {
	var firstErr error
	for _, r := range c {
		er, ok := r.(interface {
			Executable(pkg, executable string) (string, error)
		})
		if !ok {
			continue
		}
		p, err := er.Executable(pkg, executable)
		if err == nil {
			return p, nil
		}
		if !resolutionerrors.IsPackageNotFound(err) && !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		slog.Debug("executable not in registry", "package", pkg, "executable", executable, "err", err)
		// a package found without the executable explains more than a miss
		if firstErr == nil || (resolutionerrors.IsPackageNotFound(firstErr) && !resolutionerrors.IsPackageNotFound(err)) {
			firstErr = err
		}
	}
	if firstErr == nil {
		firstErr = resolutionerrors.NewPackageNotFoundError(pkg, nil)
	}
	return "", firstErr
}

var _ Registry = (Static)(nil)
var _ Registry = (Chain)(nil)
var _ Registry = (*AmentIndex)(nil)
