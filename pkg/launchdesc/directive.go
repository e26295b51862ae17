// Copyright (c) 2021-2026 OUXT Polaris and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package launchdesc

import (
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/samber/lo"
)

var ErrInvalidDescription = fmt.Errorf("invalid launch description")
var ErrMissingDirectiveField = fmt.Errorf("%w: a required field is missing", ErrInvalidDescription)

type Output string

const (
	OutputScreen Output = "screen"
	OutputLog    Output = "log"
)

var Outputs = []Output{OutputScreen, OutputLog}

func ParseOutput(s string) (Output, error) {
	o := Output(s)
	if !lo.Contains(Outputs, o) {
		return "", fmt.Errorf("unknown output %q. Must be one of %q", s, Outputs)
	}
	return o, nil
}

const (
	NodeKind    = "node"
	IncludeKind = "include"
)

// Directive is one action for a launch runner: start a process, or
// expand another launch description in place.
type Directive interface {
	isDirective() bool
	Kind() string
	// DirectiveName identifies the directive in logs and errors
	DirectiveName() string
}

// Parameters is a set of named node parameters
type Parameters map[string]any

type Node struct {
	Package    string       `yaml:"package" json:"package"`
	Executable string       `yaml:"executable" json:"executable"`
	Name       string       `yaml:"name,omitempty" json:"name,omitempty"`
	Arguments  []string     `yaml:"arguments,omitempty" json:"arguments,omitempty"`
	Parameters []Parameters `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	Output     Output       `yaml:"output,omitempty" json:"output,omitempty"`
}

func (n *Node) isDirective() bool {
	return true
}

func (n *Node) Kind() string {
	return NodeKind
}

func (n *Node) DirectiveName() string {
	if n.Name != "" {
		return n.Name
	}
	return n.Executable
}

// Parameter looks a parameter up across all parameter sets; later sets win
func (n *Node) Parameter(key string) (any, bool) {
	var value any
	var found bool
	for _, p := range n.Parameters {
		if v, ok := p[key]; ok {
			value, found = v, true
		}
	}
	return value, found
}

func (n *Node) UnmarshalYAML(data []byte) error {
	type Alias Node
	alias := Alias{}
	if err := yaml.UnmarshalWithOptions(data, &alias, yaml.Strict()); err != nil {
		return err
	}
	if alias.Package == "" {
		return fmt.Errorf("%w: 'package'", ErrMissingDirectiveField)
	}
	if alias.Executable == "" {
		return fmt.Errorf("%w: 'executable'", ErrMissingDirectiveField)
	}
	if alias.Output == "" {
		alias.Output = OutputScreen
	}
	if _, err := ParseOutput(string(alias.Output)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDescription, err)
	}
	*n = Node(alias)
	return nil
}

type Include struct {
	Path      string            `yaml:"path" json:"path"`
	Arguments map[string]string `yaml:"arguments,omitempty" json:"arguments,omitempty"`
}

func (i *Include) isDirective() bool {
	return true
}

func (i *Include) Kind() string {
	return IncludeKind
}

func (i *Include) DirectiveName() string {
	return i.Path
}

func (i *Include) UnmarshalYAML(data []byte) error {
	type Alias Include
	alias := Alias{}
	if err := yaml.UnmarshalWithOptions(data, &alias, yaml.Strict()); err != nil {
		return err
	}
	if alias.Path == "" {
		return fmt.Errorf("%w: 'path'", ErrMissingDirectiveField)
	}
	*i = Include(alias)
	return nil
}

var _ yaml.BytesUnmarshaler = (*Node)(nil)
var _ yaml.BytesUnmarshaler = (*Include)(nil)
var _ Directive = (*Node)(nil)
var _ Directive = (*Include)(nil)
