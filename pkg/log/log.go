// Copyright 2022-2024 Boris HUISGEN. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package log implements the structured logging of the components.
package log

import (
	"log"
	"log/slog"
	"os"
)

// ProgramLevel is the common log level.
var ProgramLevel = new(slog.LevelVar)

// New returns a logger writing to the standard error for the given component.
func New(component string) *slog.Logger {
	return slog.New(NewHandler(os.Stderr, component, nil))
}

// SetDebug switches the common log level between debug and info.
func SetDebug(debug bool) {
	if debug {
		ProgramLevel.Set(slog.LevelDebug)
		return
	}
	ProgramLevel.Set(slog.LevelInfo)
}

// Fatal is equivalent to Print() followed by a call to os.Exit(1).
func Fatal(v ...any) {
	log.Default().Print(v...)
	os.Exit(1)
}

