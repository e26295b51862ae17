// Copyright (c) 2021-2026 OUXT Polaris and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package pkgindex

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/beevik/etree"
)

const PackageManifestFilename = "package.xml"

var ErrInvalidPackageManifest = fmt.Errorf("invalid package manifest")

type Manifest struct {
	Name        string
	Version     *semver.Version
	Description string
	Path        string
}

// ReadPackageManifest reads the package.xml installed in a package's share directory.
// A missing file surfaces as an error satisfying errors.Is(err, fs.ErrNotExist).
func ReadPackageManifest(shareDir string) (*Manifest, error) {
	p := filepath.Join(shareDir, PackageManifestFilename)

	doc := etree.NewDocument()
	if err := doc.ReadFromFile(p); err != nil {
		return nil, err
	}

	root := doc.SelectElement("package")
	if root == nil {
		return nil, fmt.Errorf("%w: %s has no <package> root", ErrInvalidPackageManifest, p)
	}

	name := childText(root, "name")
	if name == "" {
		return nil, fmt.Errorf("%w: %s is missing <name>", ErrInvalidPackageManifest, p)
	}

	rawVersion := childText(root, "version")
	if rawVersion == "" {
		return nil, fmt.Errorf("%w: %s is missing <version>", ErrInvalidPackageManifest, p)
	}
	v, err := semver.NewVersion(rawVersion)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidPackageManifest, p, err)
	}

	return &Manifest{
		Name:        name,
		Version:     v,
		Description: childText(root, "description"),
		Path:        p,
	}, nil
}

func childText(e *etree.Element, tag string) string {
	c := e.SelectElement(tag)
	if c == nil {
		return ""
	}
	return strings.TrimSpace(c.Text())
}
