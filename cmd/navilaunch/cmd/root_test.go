// Copyright (c) 2021-2026 OUXT Polaris and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"ouxt.dev/x/navilaunch/pkg/composer"
	"ouxt.dev/x/navilaunch/pkg/launchconfig"
	"ouxt.dev/x/navilaunch/pkg/launchdesc"
	"ouxt.dev/x/navilaunch/pkg/navilaunch"
	"ouxt.dev/x/navilaunch/pkg/pkgindex"
	"ouxt.dev/x/navilaunch/pkg/preflight"
	"ouxt.dev/x/navilaunch/pkg/resolutionerrors"
	"ouxt.dev/x/navilaunch/pkg/testutil"
)

type MainSuite struct {
	testutil.CommonSetupSuite
	prefix *testutil.AmentPrefix
}

func TestSuite(t *testing.T) {
	suite.Run(t, &MainSuite{})
}

func (suite *MainSuite) SetupTest() {
	suite.CommonSetupSuite.SetupTest()
	t := suite.T()

	previous, noColor := slog.Default(), color.NoColor
	color.NoColor = true
	t.Cleanup(func() {
		slog.SetDefault(previous)
		color.NoColor = noColor
	})

	suite.prefix = testutil.NewAmentPrefix(t)
	suite.prefix.AddPackage(composer.SimulatorPackage, "0.1.0")
	suite.prefix.AddPackage(composer.DescriptionPackage, "0.2.0")
	suite.prefix.AddPackage(composer.VisualizerPackage, "11.2.0")
	suite.prefix.AddFile(composer.SimulatorPackage, "config", "navi_sim.rviz")
	suite.prefix.AddFile(composer.SimulatorPackage, "config", "objects.json")
	suite.prefix.AddFile(composer.DescriptionPackage, "launch", composer.DescriptionLaunchFilename)
	t.Setenv(pkgindex.AmentPrefixPathEnvVar, suite.prefix.Root)
}

func (suite *MainSuite) TestDescribe() {
	t := suite.T()

	cmd, stdout, _ := createTestRootCmd(t, "describe")
	require.NoError(t, cmd.Execute())

	d, err := launchdesc.ReadDescriptionContents(stdout.Bytes())
	require.NoError(t, err)
	require.Len(t, d.Directives, 4)
	assert.Equal(t, []string{"rviz2", "navi_sim_node", "lidar_sim_node"}, []string{
		d.Nodes()[0].Name, d.Nodes()[1].Name, d.Nodes()[2].Name,
	})
	v, ok := d.Nodes()[2].Parameter(composer.ObjectsPathParameter)
	assert.True(t, ok)
	assert.Equal(t, filepath.Join(suite.prefix.Root, "share", "navi_sim", "config", "objects.json"), v)
}

func (suite *MainSuite) TestDescribeJSON() {
	t := suite.T()

	cmd, stdout, _ := createTestRootCmd(t, "describe", "-o", "json")
	require.NoError(t, cmd.Execute())

	var out map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
	assert.Equal(t, launchdesc.DescriptionKind, out["kind"])
	assert.Len(t, out["directives"], 4)

	cmd, _, _ = createTestRootCmd(t, "describe", "-o", "xml")
	assert.ErrorContains(t, cmd.Execute(), "not supported")
}

func (suite *MainSuite) TestDescribeMissingPackage() {
	t := suite.T()
	t.Setenv(pkgindex.AmentPrefixPathEnvVar, t.TempDir())

	cmd, stdout, _ := createTestRootCmd(t, "describe")
	err := cmd.Execute()
	assert.ErrorIs(t, err, resolutionerrors.ErrPackageNotFound)
	assert.Empty(t, stdout.String())
}

func (suite *MainSuite) TestPackageOverrides() {
	t := suite.T()
	override := t.TempDir()
	writeConfig(t, "package-overrides:\n  wamv_description: "+override+"\n")

	cmd, stdout, _ := createTestRootCmd(t, "describe")
	require.NoError(t, cmd.Execute())

	d, err := launchdesc.ReadDescriptionContents(stdout.Bytes())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(override, "launch", composer.DescriptionLaunchFilename), d.Includes()[0].Path)
}

func (suite *MainSuite) TestRunDryRunWithOverride() {
	t := suite.T()
	workspace := testutil.NewAmentPrefix(t)
	workspace.AddFile(composer.SimulatorPackage, "config", "navi_sim.rviz")
	workspace.AddFile(composer.SimulatorPackage, "config", "objects.json")
	sim := workspace.AddExecutable(composer.SimulatorPackage, composer.SimulatorExecutable, "exit 0")
	lidar := workspace.AddExecutable(composer.SimulatorPackage, composer.LidarExecutable, "exit 0")
	suite.prefix.AddExecutable(composer.VisualizerPackage, composer.VisualizerExecutable, "exit 0")
	writeConfig(t, "package-overrides:\n  "+composer.SimulatorPackage+": "+
		filepath.Join(workspace.Root, "share", composer.SimulatorPackage)+"\n")

	cmd, stdout, _ := createTestRootCmd(t, "run", "--dry-run")
	require.NoError(t, cmd.Execute())

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], sim+" "))
	assert.True(t, strings.HasPrefix(lines[2], lidar+" "))
	assert.Contains(t, lines[2], filepath.Join(workspace.Root, "share", composer.SimulatorPackage, "config", "objects.json"))
}

func (suite *MainSuite) TestCheck() {
	t := suite.T()

	cmd, stdout, _ := createTestRootCmd(t, "check")
	require.NoError(t, cmd.Execute())
	assert.Equal(t, 3, strings.Count(stdout.String(), "ok "))

	require.NoError(t, os.Remove(filepath.Join(suite.prefix.Root, "share", "navi_sim", "config", "objects.json")))
	cmd, stdout, _ = createTestRootCmd(t, "check")
	assert.ErrorIs(t, cmd.Execute(), preflight.ErrMissingFiles)
	assert.Contains(t, stdout.String(), "missing")
	assert.Contains(t, stdout.String(), "objects.json")
}

func (suite *MainSuite) TestPackages() {
	t := suite.T()

	cmd, stdout, _ := createTestRootCmd(t, "packages")
	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), "11.2.0")
	assert.Contains(t, stdout.String(), filepath.Join(suite.prefix.Root, "share", "wamv_description"))

	cmd, stdout, _ = createTestRootCmd(t, "packages", "--all", "-o", "json")
	require.NoError(t, cmd.Execute())
	var out []map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
	assert.Len(t, out, 3)
}

func (suite *MainSuite) TestPackagesMissing() {
	t := suite.T()
	prefix := testutil.NewAmentPrefix(t)
	prefix.AddPackage(composer.SimulatorPackage, "0.1.0")
	t.Setenv(pkgindex.AmentPrefixPathEnvVar, prefix.Root)

	cmd, stdout, _ := createTestRootCmd(t, "packages")
	assert.ErrorIs(t, cmd.Execute(), resolutionerrors.ErrPackageNotFound)
	assert.Contains(t, stdout.String(), "not found")

	cmd, stdout, _ = createTestRootCmd(t, "packages", "-o", "yaml")
	assert.ErrorIs(t, cmd.Execute(), resolutionerrors.ErrPackageNotFound)
	var out []map[string]any
	require.NoError(t, yaml.Unmarshal(stdout.Bytes(), &out))
	require.Len(t, out, 3)
	assert.Equal(t, composer.SimulatorPackage, out[0]["name"])
	assert.NotContains(t, out[0], "error")
	assert.Equal(t, composer.DescriptionPackage, out[1]["name"])
	assert.Equal(t, false, out[1]["found"])
	errDoc, ok := out[1]["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, resolutionerrors.PackageNotFound, errDoc["code"])
	assert.Equal(t, composer.DescriptionPackage, errDoc["package"])
}

func (suite *MainSuite) TestRunDryRun() {
	t := suite.T()
	suite.addExecutables("exit 0")

	cmd, stdout, _ := createTestRootCmd(t, "run", "--dry-run")
	require.NoError(t, cmd.Execute())

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], filepath.Join(suite.prefix.Root, "lib", "rviz2", "rviz2")+" -d "))
	assert.Contains(t, lines[2], "objects_path:=")
	assert.True(t, strings.HasPrefix(lines[3], launchconfig.DefaultRos2Command+" launch "))
}

func (suite *MainSuite) TestRunFromFile() {
	t := suite.T()
	suite.addExecutables("exit 0")

	cmd, stdout, _ := createTestRootCmd(t, "describe")
	require.NoError(t, cmd.Execute())
	// keep only the simulator node
	d, err := launchdesc.ReadDescriptionContents(stdout.Bytes())
	require.NoError(t, err)
	d.Directives = d.Directives[1:2]
	data, err := json.Marshal(d)
	require.NoError(t, err)
	file := filepath.Join(t.TempDir(), "launch.yaml")
	require.NoError(t, os.WriteFile(file, data, 0o644))

	cmd, stdout, _ = createTestRootCmd(t, "run", "--dry-run", "-f", file)
	require.NoError(t, cmd.Execute())
	assert.Equal(t,
		filepath.Join(suite.prefix.Root, "lib", "navi_sim", "navi_sim_node")+" --ros-args -r __node:=navi_sim_node\n",
		stdout.String())

	cmd, _, _ = createTestRootCmd(t, "run", "-f", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, cmd.Execute())
}

func (suite *MainSuite) TestRunPreflightFailure() {
	t := suite.T()
	suite.addExecutables("exit 0")
	require.NoError(t, os.Remove(filepath.Join(suite.prefix.Root, "share", "navi_sim", "config", "navi_sim.rviz")))

	cmd, _, _ := createTestRootCmd(t, "run")
	err := cmd.Execute()
	assert.ErrorIs(t, err, preflight.ErrMissingFiles)
	assert.ErrorContains(t, err, launchconfig.PreflightEnvVar)
}

func (suite *MainSuite) TestRun() {
	t := suite.T()
	testutil.SkipOnWindows(t)
	suite.addExecutables(`echo "started $0"`)
	t.Setenv(launchconfig.Ros2CommandEnvVar, suite.prefix.AddExecutable("ros2cli", "ros2", `echo "included $2"`))

	cmd, stdout, _ := createTestRootCmd(t, "run")
	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), "[rviz2] started ")
	assert.Contains(t, stdout.String(), "[navi_sim_node] started ")
	assert.Contains(t, stdout.String(), "[lidar_sim_node] started ")
	assert.Contains(t, stdout.String(), "[wamv_description.launch.py] included ")
}

func (suite *MainSuite) TestVersion() {
	t := suite.T()

	cmd, stdout, _ := createTestRootCmd(t, "--version")
	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), "version: unknown")
}

func (suite *MainSuite) TestHelpIgnoresBrokenConfig() {
	t := suite.T()
	writeConfig(t, "not: [valid")

	cmd, stdout, _ := createTestRootCmd(t, "--help")
	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), "describe")

	nl := &navilaunch.NaviLaunch{OsArgs: []string{Name, "describe"}, Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	_, err := RootCmd(testutil.Context(t), nl)
	assert.Error(t, err)
}

func (suite *MainSuite) addExecutables(script string) {
	suite.prefix.AddExecutable(composer.VisualizerPackage, composer.VisualizerExecutable, script)
	suite.prefix.AddExecutable(composer.SimulatorPackage, composer.SimulatorExecutable, script)
	suite.prefix.AddExecutable(composer.SimulatorPackage, composer.LidarExecutable, script)
}

func writeConfig(t *testing.T, contents string) {
	home := os.Getenv(launchconfig.HomeEnvVar)
	require.NotEmpty(t, home)
	require.NoError(t, os.WriteFile(filepath.Join(home, launchconfig.ConfigFileName), []byte(contents), 0o644))
}

func createTestRootCmd(t *testing.T, args ...string) (rootCmd *cobra.Command, stdout, stderr *bytes.Buffer) {
	ctx := testutil.Context(t)
	stdout, stderr = &bytes.Buffer{}, &bytes.Buffer{}

	nl := navilaunch.NaviLaunch{
		Stdout: stdout,
		Stderr: stderr,
		OsArgs: append([]string{Name}, args...),
	}

	rootCmd, err := RootCmd(ctx, &nl)
	require.NoError(t, err)
	rootCmd.SetContext(ctx)
	return
}
