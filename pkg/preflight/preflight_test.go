// Copyright (c) 2021-2026 OUXT Polaris and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package preflight

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"ouxt.dev/x/navilaunch/pkg/composer"
	"ouxt.dev/x/navilaunch/pkg/launchdesc"
	"ouxt.dev/x/navilaunch/pkg/testutil"
	"ouxt.dev/x/navilaunch/pkg/utils"
)

func TestReferences(t *testing.T) {
	abs := func(p string) string { return filepath.Join(t.TempDir(), p) }
	rviz, objects, launch := abs("x.rviz"), abs("objects.json"), abs("a.launch.py")

	refs := References(launchdesc.New(
		&launchdesc.Node{Name: "rviz2", Arguments: []string{"-d", rviz, "relative.rviz"}},
		&launchdesc.Node{Executable: "lidar_sim_node", Parameters: []launchdesc.Parameters{{"objects_path": objects, "rate": 10, "name": "lidar"}}},
		&launchdesc.Include{Path: launch},
	))
	assert.Equal(t, []Reference{
		{Directive: "rviz2", Path: rviz},
		{Directive: "lidar_sim_node", Path: objects},
		{Directive: launch, Path: launch},
	}, refs)
}

func TestCheck(t *testing.T) {
	prefix := testutil.NewAmentPrefix(t)
	prefix.AddPackage(composer.SimulatorPackage, "0.1.0")
	prefix.AddPackage(composer.DescriptionPackage, "0.1.0")
	prefix.AddFile(composer.SimulatorPackage, "config", "navi_sim.rviz")
	prefix.AddFile(composer.DescriptionPackage, "launch", composer.DescriptionLaunchFilename)

	d, err := composer.Compose(prefix.Index())
	require.NoError(t, err)

	findings, err := Check(d)
	require.NoError(t, err)
	require.Len(t, findings, 3)

	missing := Missing(findings)
	require.Len(t, missing, 1)
	assert.Equal(t, composer.LidarExecutable, missing[0].Directive)
	assert.Equal(t, filepath.Join(prefix.Root, "share", "navi_sim", "config", "objects.json"), missing[0].Path)

	err = Verify(d)
	assert.ErrorIs(t, err, ErrMissingFiles)
	assert.ErrorContains(t, err, "objects.json")

	prefix.AddFile(composer.SimulatorPackage, "config", "objects.json")
	assert.NoError(t, Verify(d))
}

func TestReport(t *testing.T) {
	previous := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = previous })

	var buf bytes.Buffer
	Report(utils.WriterPrinter{Out: &buf}, []Finding{
		{Reference: Reference{Directive: "rviz2", Path: "/a.rviz"}, Exists: true},
		{Reference: Reference{Directive: "lidar_sim_node", Path: "/objects.json"}, Exists: false},
	})
	assert.Equal(t, "ok       rviz2 /a.rviz\nmissing  lidar_sim_node /objects.json\n", buf.String())
}
