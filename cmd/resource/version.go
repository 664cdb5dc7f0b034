// Copyright 2022-2024 Boris HUISGEN. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/bhuisgen/resource/internal/app/resource"
)

// versionCommand implements the version command.
type versionCommand struct {
	flagset *flag.FlagSet
	out     io.Writer
}

// NewVersionCommand creates a new version command.
func NewVersionCommand(out io.Writer) *versionCommand {
	c := versionCommand{out: out}
	c.flagset = newFlagSet(out, "version", "version", "Print the version information.")

	return &c
}

// Name returns the command name.
func (c *versionCommand) Name() string {
	return c.flagset.Name()
}

// Description returns the command description.
func (c *versionCommand) Description() string {
	return "Print the version information"
}

// Parse parses the command arguments.
func (c *versionCommand) Parse(args []string) error {
	if err := c.flagset.Parse(args); err != nil {
		return errors.New("parse arguments")
	}
	if len(c.flagset.Args()) > 0 {
		return errors.New("check arguments")
	}

	return nil
}

// Execute executes the command.
func (c *versionCommand) Execute(ctx context.Context) error {
	fmt.Fprintf(c.out, "%s version %s, commit %s, built at %s\n", resource.Name, resource.Version, resource.Commit,
		resource.Date)

	return nil
}

var _ command = (*versionCommand)(nil)
