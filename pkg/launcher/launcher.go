// Copyright (c) 2021-2026 OUXT Polaris and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package launcher turns a launch description into running processes.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"ouxt.dev/x/navilaunch/pkg/launchconfig"
	"ouxt.dev/x/navilaunch/pkg/launchdesc"
)

const DefaultStopTimeout = 5 * time.Second

// ExecutableResolver finds the binary a package installs under a given name
type ExecutableResolver interface {
	Executable(pkg, executable string) (string, error)
}

// ProcessError reports a launched process that exited unsuccessfully
type ProcessError struct {
	Name     string
	ExitCode int
	Err      error
}

func (p *ProcessError) Error() string {
	return fmt.Sprintf("process %q exited with code %d", p.Name, p.ExitCode)
}

func (p *ProcessError) Unwrap() error {
	return p.Err
}

// Process is a fully resolved command line for one directive
type Process struct {
	Name   string
	Path   string
	Args   []string
	Output launchdesc.Output
}

func (p *Process) String() string {
	parts := lo.Map(append([]string{p.Path}, p.Args...), func(s string, _ int) string {
		if s == "" || strings.ContainsAny(s, " \t\"'") {
			return strconv.Quote(s)
		}
		return s
	})
	return strings.Join(parts, " ")
}

type Launcher struct {
	Resolver    ExecutableResolver
	Ros2Command string
	// OutputOverride replaces every node's output when set
	OutputOverride launchdesc.Output
	// StopTimeout is how long a process gets to exit after an interrupt before it's killed
	StopTimeout time.Duration

	Stdout, Stderr io.Writer
}

func New(config *launchconfig.Config, stdout, stderr io.Writer) *Launcher {
	return &Launcher{
		Resolver:       config.Registry(),
		Ros2Command:    config.Ros2Command,
		OutputOverride: config.OutputOverride,
		StopTimeout:    DefaultStopTimeout,
		Stdout:         stdout,
		Stderr:         stderr,
	}
}

// Plan resolves every directive to a process. Nothing is planned unless
// everything resolves.
func (l *Launcher) Plan(d *launchdesc.Description) ([]*Process, error) {
	procs := make([]*Process, 0, len(d.Directives))
	for _, dir := range d.Directives {
		p, err := l.plan(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to plan %s %q: %w", dir.Kind(), dir.DirectiveName(), err)
		}
		procs = append(procs, p)
	}
	return procs, nil
}

func (l *Launcher) plan(dir launchdesc.Directive) (*Process, error) {
	switch v := dir.(type) {
	case *launchdesc.Node:
		path, err := l.Resolver.Executable(v.Package, v.Executable)
		if err != nil {
			return nil, err
		}
		args, err := NodeArgs(v)
		if err != nil {
			return nil, err
		}
		output := lo.CoalesceOrEmpty(l.OutputOverride, v.Output, launchdesc.OutputScreen)
		return &Process{Name: v.DirectiveName(), Path: path, Args: args, Output: output}, nil
	case *launchdesc.Include:
		ros2 := lo.CoalesceOrEmpty(l.Ros2Command, launchconfig.DefaultRos2Command)
		return &Process{
			Name:   filepath.Base(v.Path),
			Path:   ros2,
			Args:   IncludeArgs(v),
			Output: lo.CoalesceOrEmpty(l.OutputOverride, launchdesc.OutputScreen),
		}, nil
	default:
		return nil, fmt.Errorf("unsupported directive type %T", dir)
	}
}

// Run starts every process in declaration order and waits for all of them.
// The first process to fail stops the others; cancelling ctx stops everything.
func (l *Launcher) Run(ctx context.Context, d *launchdesc.Description) error {
	procs, err := l.Plan(d)
	if err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(runCtx)

	stdout := &lockedWriter{w: l.Stdout}
	stderr := &lockedWriter{w: l.Stderr}

	for _, p := range procs {
		cmd, flush := l.command(gctx, p, stdout, stderr)
		slog.Debug("starting process", "name", p.Name, "cmd", p.String())
		if err := cmd.Start(); err != nil {
			if gctx.Err() != nil {
				// an earlier process already failed
				break
			}
			cancel()
			_ = g.Wait()
			return fmt.Errorf("failed to start %q: %w", p.Name, err)
		}

		g.Go(func() error {
			err := cmd.Wait()
			flush()
			if err == nil {
				slog.Info("process finished", "name", p.Name)
				return nil
			}
			if gctx.Err() != nil {
				slog.Debug("process stopped", "name", p.Name, "err", err)
				return gctx.Err()
			}
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				slog.Error("process failed", "name", p.Name, "exit-code", exitErr.ExitCode())
				return &ProcessError{Name: p.Name, ExitCode: exitErr.ExitCode(), Err: err}
			}
			return fmt.Errorf("failed waiting for %q: %w", p.Name, err)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func (l *Launcher) command(ctx context.Context, p *Process, stdout, stderr *lockedWriter) (*exec.Cmd, func()) {
	cmd := exec.CommandContext(ctx, p.Path, p.Args...)
	cmd.Env = os.Environ()
	cmd.Cancel = func() error {
		if err := cmd.Process.Signal(os.Interrupt); err != nil {
			return cmd.Process.Kill()
		}
		return nil
	}
	cmd.WaitDelay = lo.CoalesceOrEmpty(l.StopTimeout, DefaultStopTimeout)

	var out, errOut *lineWriter
	if p.Output == launchdesc.OutputLog {
		out, errOut = logWriter(p.Name, "stdout"), logWriter(p.Name, "stderr")
	} else {
		out, errOut = screenWriter(stdout, p.Name), screenWriter(stderr, p.Name)
	}
	cmd.Stdout = out
	cmd.Stderr = errOut

	return cmd, func() {
		out.Flush()
		errOut.Flush()
	}
}
