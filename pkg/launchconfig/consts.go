// Copyright (c) 2021-2026 OUXT Polaris and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package launchconfig

const (
	AppName = "navilaunch"

	ConfigFileName = "navilaunch-config.yaml"
	LockFileName   = "launch.lock"

	DefaultRos2Command = "ros2"
)
