// Copyright (c) 2021-2026 OUXT Polaris and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

type RawPrinter interface {
	Println(i ...interface{})
	Printf(format string, i ...interface{})
}

// WriterPrinter prints to any writer, e.g. a buffer in tests
type WriterPrinter struct {
	Out io.Writer
}

func (w WriterPrinter) Println(i ...interface{}) {
	_, _ = fmt.Fprintln(w.Out, i...)
}

func (w WriterPrinter) Printf(format string, i ...interface{}) {
	_, _ = fmt.Fprintf(w.Out, format, i...)
}

var _ RawPrinter = (*WriterPrinter)(nil)
var _ RawPrinter = (*cobra.Command)(nil)
