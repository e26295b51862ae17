// Copyright (c) 2021-2026 OUXT Polaris and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package launchdesc

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/samber/lo"
	"ouxt.dev/x/navilaunch/pkg/schema"
)

const (
	DescriptionKind          = "LaunchDescription"
	DescriptionSchemaVersion = "v1"
	DescriptionAPIVersion    = schema.APIGroup + "/" + DescriptionSchemaVersion
)

// Description is an ordered list of directives. Order is declaration order;
// runners may still start directives concurrently.
type Description struct {
	schema.ManifestMeta
	Directives []Directive
}

func New(directives ...Directive) *Description {
	return &Description{
		ManifestMeta: schema.ManifestMeta{
			APIVersion: DescriptionAPIVersion,
			Kind:       DescriptionKind,
		},
		Directives: directives,
	}
}

func (d *Description) Nodes() []*Node {
	return lo.FilterMap(d.Directives, func(dir Directive, _ int) (*Node, bool) {
		n, ok := dir.(*Node)
		return n, ok
	})
}

func (d *Description) Includes() []*Include {
	return lo.FilterMap(d.Directives, func(dir Directive, _ int) (*Include, bool) {
		i, ok := dir.(*Include)
		return i, ok
	})
}

// entry holds exactly one directive
type entry struct {
	Node    *Node    `yaml:"node,omitempty" json:"node,omitempty"`
	Include *Include `yaml:"include,omitempty" json:"include,omitempty"`
}

type encoded struct {
	schema.ManifestMeta `yaml:",inline"`
	Directives          []entry `yaml:"directives" json:"directives"`
}

func (d *Description) encode() (*encoded, error) {
	e := &encoded{ManifestMeta: d.ManifestMeta, Directives: make([]entry, 0, len(d.Directives))}
	for i, dir := range d.Directives {
		switch v := dir.(type) {
		case *Node:
			e.Directives = append(e.Directives, entry{Node: v})
		case *Include:
			e.Directives = append(e.Directives, entry{Include: v})
		default:
			return nil, fmt.Errorf("%w: directive %d has unsupported type %T", ErrInvalidDescription, i, dir)
		}
	}
	return e, nil
}

func (d *Description) MarshalYAML() (interface{}, error) {
	return d.encode()
}

func (d *Description) MarshalJSON() ([]byte, error) {
	e, err := d.encode()
	if err != nil {
		return nil, err
	}
	return json.Marshal(e)
}

func ReadDescription(filePath string) (*Description, error) {
	bytes, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return ReadDescriptionContents(bytes)
}

func ReadDescriptionContents(contents []byte) (*Description, error) {
	var e encoded
	if err := yaml.UnmarshalWithOptions(contents, &e, yaml.Strict()); err != nil {
		return nil, errors.Join(ErrInvalidDescription, err)
	}

	s := schema.ManifestMeta{
		APIVersion: DescriptionAPIVersion,
		Kind:       DescriptionKind,
	}
	if err := s.ValidateSchema(e.ManifestMeta); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDescription, err.Error())
	}

	d := &Description{ManifestMeta: e.ManifestMeta}
	for i, en := range e.Directives {
		switch {
		case en.Node != nil && en.Include != nil:
			return nil, fmt.Errorf("%w: directive %d sets both %q and %q", ErrInvalidDescription, i, NodeKind, IncludeKind)
		case en.Node != nil:
			d.Directives = append(d.Directives, en.Node)
		case en.Include != nil:
			d.Directives = append(d.Directives, en.Include)
		default:
			return nil, fmt.Errorf("%w: directive %d must set one of %q", ErrInvalidDescription, i, []string{NodeKind, IncludeKind})
		}
	}
	return d, nil
}
