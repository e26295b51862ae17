// Copyright (c) 2021-2026 OUXT Polaris and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package launchconfig

const envVarPrefix = "NAVILAUNCH_"

const (
	// HomeEnvVar
	// NAVILAUNCH_HOME is the absolute path to the navilaunch home directory,
	// holding the optional config file and the launch lock
	HomeEnvVar = envVarPrefix + "HOME"

	// LogLevelEnvVar
	// NAVILAUNCH_LOG_LEVEL sets the log level.
	// 	Default: info
	//  Possible values: debug info warn error
	LogLevelEnvVar = envVarPrefix + "LOG_LEVEL"

	// Ros2CommandEnvVar
	// NAVILAUNCH_ROS2_COMMAND is the command used to expand included launch files.
	// 	Default: ros2
	Ros2CommandEnvVar = envVarPrefix + "ROS2_COMMAND"

	// OutputEnvVar
	// NAVILAUNCH_OUTPUT overrides where every node's output goes.
	//  Possible values: screen log
	OutputEnvVar = envVarPrefix + "OUTPUT"

	// PreflightEnvVar
	// NAVILAUNCH_PREFLIGHT disables checking referenced files before `run` when set to false.
	// 	Default: true
	PreflightEnvVar = envVarPrefix + "PREFLIGHT"
)
