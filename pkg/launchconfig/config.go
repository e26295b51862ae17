// Copyright (c) 2021-2026 OUXT Polaris and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package launchconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"

	"github.com/goccy/go-yaml"
	"github.com/samber/lo"
	"ouxt.dev/x/navilaunch/pkg/launchdesc"
	"ouxt.dev/x/navilaunch/pkg/pkgindex"
	"ouxt.dev/x/navilaunch/pkg/utils"
)

type Config struct {
	HomePath     string `yaml:"-"`
	LockFilePath string `yaml:"-"`

	// install prefixes searched after AMENT_PREFIX_PATH
	AmentPrefixPath []string `yaml:"ament-prefix-path,omitempty"`

	// package name -> share directory, consulted before the ament index
	PackageOverrides map[string]string `yaml:"package-overrides,omitempty"`

	Ros2Command string `yaml:"ros2-command,omitempty"`

	// OutputOverride is empty unless every node's output is forced
	OutputOverride launchdesc.Output `yaml:"output,omitempty"`

	Preflight *bool `yaml:"preflight,omitempty"`
}

func (c *Config) EnsureDirs() error {
	return utils.EnsureDirs(c.HomePath)
}

// AmentIndex searches AMENT_PREFIX_PATH first, then the configured prefixes
func (c *Config) AmentIndex() *pkgindex.AmentIndex {
	prefixes := pkgindex.SplitPrefixPath(os.Getenv(pkgindex.AmentPrefixPathEnvVar))
	return pkgindex.NewAmentIndex(append(prefixes, c.AmentPrefixPath...)...)
}

// Registry layers package overrides over the ament index. It resolves
// executables the same way, so an overridden package also runs from its override.
func (c *Config) Registry() pkgindex.Chain {
	return pkgindex.Chain{
		pkgindex.Static(c.PackageOverrides),
		c.AmentIndex(),
	}
}

// Overridden lists the packages with a configured share directory, sorted
func (c *Config) Overridden() []string {
	names := lo.Keys(c.PackageOverrides)
	slices.Sort(names)
	return names
}

func (c *Config) PreflightEnabled() bool {
	return c.Preflight == nil || *c.Preflight
}

func Get() (*Config, error) {
	homePath, err := getHomePath()
	if err != nil {
		return nil, err
	}
	return GetWithCustomHome(homePath)
}

func GetWithCustomHome(homePath string) (*Config, error) {
	config := Config{}

	// navilaunch-config.yaml is optional
	configFilePath := filepath.Join(homePath, ConfigFileName)
	fileInfo, err := os.Stat(configFilePath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else {
		if fileInfo.IsDir() {
			return nil, fmt.Errorf("%q is directory and not a file", configFilePath)
		}

		bytes, err := os.ReadFile(configFilePath)
		if err != nil {
			return nil, err
		}

		if err := yaml.UnmarshalWithOptions(bytes, &config, yaml.Strict()); err != nil {
			return nil, fmt.Errorf("failed to parse %q: %w", configFilePath, err)
		}
	}

	if v, ok := os.LookupEnv(Ros2CommandEnvVar); ok {
		config.Ros2Command = v
	}
	if config.Ros2Command == "" {
		config.Ros2Command = DefaultRos2Command
	}

	if v, ok := os.LookupEnv(OutputEnvVar); ok {
		config.OutputOverride = launchdesc.Output(v)
	}
	if config.OutputOverride != "" {
		if _, err := launchdesc.ParseOutput(string(config.OutputOverride)); err != nil {
			return nil, fmt.Errorf("invalid output override: %w", err)
		}
	}

	preflight, ok, err := utils.BoolEnvVar(PreflightEnvVar)
	if err != nil {
		return nil, err
	}
	if ok {
		config.Preflight = &preflight
	}

	config.HomePath = homePath
	config.LockFilePath = filepath.Join(homePath, LockFileName)
	return &config, nil
}

func getHomePath() (string, error) {
	if v, ok := os.LookupEnv(HomeEnvVar); ok {
		return v, nil
	}

	return getAppUserDataDirectory(AppName)
}

func getAppUserDataDirectory(appName string) (string, error) {
	switch runtime.GOOS {
	case "windows":
		dir, ok := os.LookupEnv("APPDATA")
		if !ok {
			return "", fmt.Errorf("APPDATA environment variable is not set")
		}
		return filepath.Join(dir, appName), nil
	default:
		dir, ok := os.LookupEnv("HOME")
		if !ok {
			return "", fmt.Errorf("HOME environment variable is not set")
		}
		return filepath.Join(dir, "."+appName), nil
	}
}
