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
)

// filesCommand implements the files command.
type filesCommand struct {
	flagset *flag.FlagSet
	out     io.Writer
}

// NewFilesCommand creates a new files command.
func NewFilesCommand(out io.Writer) *filesCommand {
	c := filesCommand{out: out}
	c.flagset = newFlagSet(out, "files", "files", "List the paths of the resfs namespace in ascending order.")

	return &c
}

// Name returns the command name.
func (c *filesCommand) Name() string {
	return c.flagset.Name()
}

// Description returns the command description.
func (c *filesCommand) Description() string {
	return "List the resfs files"
}

// Parse parses the command arguments.
func (c *filesCommand) Parse(args []string) error {
	if err := c.flagset.Parse(args); err != nil {
		return errors.New("parse arguments")
	}
	if len(c.flagset.Args()) > 0 {
		return errors.New("check arguments")
	}

	return nil
}

// Execute executes the command.
func (c *filesCommand) Execute(ctx context.Context) error {
	app, err := loadApp(ctx, c.out)
	if err != nil {
		return err
	}

	for path := range app.Store().FSFiles() {
		fmt.Fprintln(c.out, path)
	}

	return nil
}

var _ command = (*filesCommand)(nil)
