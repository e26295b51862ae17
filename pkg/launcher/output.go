// Copyright (c) 2021-2026 OUXT Polaris and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package launcher

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// lockedWriter serializes writes from several processes to one destination
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) writeLine(prefix, line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = fmt.Fprintf(l.w, "[%s] %s\n", prefix, line)
}

// lineWriter splits a process stream into lines and hands each one to emit.
// exec.Cmd writes to it from a single goroutine per stream.
type lineWriter struct {
	emit func(line string)
	buf  []byte
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.emit(string(bytes.TrimSuffix(w.buf[:i], []byte("\r"))))
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}

// Flush emits a trailing line without newline, if any
func (w *lineWriter) Flush() {
	if len(w.buf) > 0 {
		w.emit(string(w.buf))
		w.buf = nil
	}
}

func screenWriter(dst *lockedWriter, name string) *lineWriter {
	return &lineWriter{emit: func(line string) {
		dst.writeLine(name, line)
	}}
}

func logWriter(name, stream string) *lineWriter {
	return &lineWriter{emit: func(line string) {
		slog.Info(line, "node", name, "stream", stream)
	}}
}
