// Copyright (c) 2021-2026 OUXT Polaris and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"ouxt.dev/x/navilaunch/pkg/launchconfig"
	"ouxt.dev/x/navilaunch/pkg/pkgindex"
	"ouxt.dev/x/navilaunch/pkg/utils"
)

// AmentPrefix is a throwaway install prefix laid out like a colcon install space
type AmentPrefix struct {
	t    *testing.T
	Root string
}

func NewAmentPrefix(t *testing.T) *AmentPrefix {
	return &AmentPrefix{t: t, Root: t.TempDir()}
}

// AddPackage registers a package in the resource index, writes its package.xml
// and returns its share directory.
func (p *AmentPrefix) AddPackage(name, version string) string {
	marker := filepath.Join(p.Root, pkgindex.ResourceIndexDir, pkgindex.PackagesResourceType, name)
	p.write(marker, "", 0o644)

	share := filepath.Join(p.Root, "share", name)
	manifest := fmt.Sprintf(`<?xml version="1.0"?>
<package format="3">
  <name>%s</name>
  <version>%s</version>
  <description>%s test package</description>
</package>
`, name, version, name)
	p.write(filepath.Join(share, pkgindex.PackageManifestFilename), manifest, 0o644)
	return share
}

// AddFile writes a file relative to a package's share directory
func (p *AmentPrefix) AddFile(pkg string, rel ...string) string {
	f := filepath.Join(append([]string{p.Root, "share", pkg}, rel...)...)
	p.write(f, "", 0o644)
	return f
}

// AddExecutable installs a shell script as <prefix>/lib/<pkg>/<name>
func (p *AmentPrefix) AddExecutable(pkg, name, script string) string {
	f := filepath.Join(p.Root, "lib", pkg, name)
	p.write(f, "#!/bin/sh\n"+script+"\n", 0o755)
	return f
}

func (p *AmentPrefix) Index() *pkgindex.AmentIndex {
	return pkgindex.NewAmentIndex(p.Root)
}

func (p *AmentPrefix) write(path, contents string, mode os.FileMode) {
	require.NoError(p.t, utils.EnsureDirs(filepath.Dir(path)))
	require.NoError(p.t, os.WriteFile(path, []byte(contents), mode))
}

// SkipOnWindows skips tests that rely on shell scripts as fake executables
func SkipOnWindows(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires /bin/sh")
	}
}

type CommonSetupSuite struct {
	suite.Suite
}

func (suite *CommonSetupSuite) SetupTest() {
	// set NAVILAUNCH_HOME to a randomized temp dir before every test,
	// otherwise, every test would share the default ~/.navilaunch
	tmpHome, deleteFn, err := utils.MkdirTemp("", "")
	suite.Require().NoError(err)
	suite.T().Setenv(launchconfig.HomeEnvVar, tmpHome)
	suite.T().Setenv(pkgindex.AmentPrefixPathEnvVar, "")
	suite.T().Cleanup(func() {
		_ = deleteFn()
	})
}

func Context(t *testing.T) context.Context {
	ctx, stopFn := context.WithCancel(context.Background())
	t.Cleanup(stopFn)
	return ctx
}
