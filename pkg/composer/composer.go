// Copyright (c) 2021-2026 OUXT Polaris and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package composer builds the navigation simulator launch description.
// It resolves resource paths against a package registry and performs no
// other I/O: nothing is opened and no process is started here.
package composer

import (
	"log/slog"
	"path/filepath"

	"ouxt.dev/x/navilaunch/pkg/launchdesc"
	"ouxt.dev/x/navilaunch/pkg/pkgindex"
)

const (
	SimulatorPackage   = "navi_sim"
	DescriptionPackage = "wamv_description"
	VisualizerPackage  = "rviz2"

	VisualizerExecutable = "rviz2"
	SimulatorExecutable  = "navi_sim_node"
	LidarExecutable      = "lidar_sim_node"

	ObjectsPathParameter      = "objects_path"
	DescriptionLaunchFilename = "wamv_description.launch.py"
)

// RequiredPackages lists every package the composed launch depends on
var RequiredPackages = []string{SimulatorPackage, DescriptionPackage, VisualizerPackage}

type Paths struct {
	RvizConfig     string
	ObjectConfig   string
	DescriptionDir string
}

// ResolvePaths looks up the simulator and vehicle description packages.
// The first failed lookup is returned unchanged.
func ResolvePaths(registry pkgindex.Registry) (*Paths, error) {
	simShare, err := registry.ShareDirectory(SimulatorPackage)
	if err != nil {
		return nil, err
	}
	rvizConfig := filepath.Join(simShare, "config", "navi_sim.rviz")
	objectConfig := filepath.Join(simShare, "config", "objects.json")

	descriptionShare, err := registry.ShareDirectory(DescriptionPackage)
	if err != nil {
		return nil, err
	}

	return &Paths{
		RvizConfig:     rvizConfig,
		ObjectConfig:   objectConfig,
		DescriptionDir: filepath.Join(descriptionShare, "launch"),
	}, nil
}

// Directives builds the launch directives in declaration order:
// visualizer, simulator, lidar simulator, vehicle description.
func Directives(p *Paths) []launchdesc.Directive {
	return []launchdesc.Directive{
		&launchdesc.Node{
			Package:    VisualizerPackage,
			Executable: VisualizerExecutable,
			Name:       VisualizerExecutable,
			Arguments:  []string{"-d", p.RvizConfig},
			Output:     launchdesc.OutputScreen,
		},
		&launchdesc.Node{
			Package:    SimulatorPackage,
			Executable: SimulatorExecutable,
			Name:       SimulatorExecutable,
			Output:     launchdesc.OutputScreen,
		},
		&launchdesc.Node{
			Package:    SimulatorPackage,
			Executable: LidarExecutable,
			Name:       LidarExecutable,
			Parameters: []launchdesc.Parameters{{ObjectsPathParameter: p.ObjectConfig}},
			Output:     launchdesc.OutputScreen,
		},
		&launchdesc.Include{
			Path: filepath.Join(p.DescriptionDir, DescriptionLaunchFilename),
		},
	}
}

// Compose resolves paths and builds the description. Either every directive
// is returned or none is.
func Compose(registry pkgindex.Registry) (*launchdesc.Description, error) {
	paths, err := ResolvePaths(registry)
	if err != nil {
		return nil, err
	}
	slog.Debug("resolved launch paths",
		"rviz-config", paths.RvizConfig,
		"objects", paths.ObjectConfig,
		"description-dir", paths.DescriptionDir)

	return launchdesc.New(Directives(paths)...), nil
}
