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

// readCommand implements the read command.
type readCommand struct {
	flagset *flag.FlagSet
	out     io.Writer
	path    string
}

// NewReadCommand creates a new read command.
func NewReadCommand(out io.Writer) *readCommand {
	c := readCommand{out: out}
	c.flagset = newFlagSet(out, "read", "read PATH", "Print the content of a resfs file.")

	return &c
}

// Name returns the command name.
func (c *readCommand) Name() string {
	return c.flagset.Name()
}

// Description returns the command description.
func (c *readCommand) Description() string {
	return "Print a resfs file"
}

// Parse parses the command arguments.
func (c *readCommand) Parse(args []string) error {
	if err := c.flagset.Parse(args); err != nil {
		return errors.New("parse arguments")
	}
	if len(c.flagset.Args()) != 1 {
		return errors.New("check arguments")
	}
	c.path = c.flagset.Arg(0)

	return nil
}

// Execute executes the command.
func (c *readCommand) Execute(ctx context.Context) error {
	app, err := loadApp(ctx, c.out)
	if err != nil {
		return err
	}

	data, err := app.Store().FSRead(c.path)
	if err != nil {
		fmt.Fprintf(c.out, "Failed to read file: %v\n", err)
		return fmt.Errorf("read: %w", err)
	}
	if _, err := c.out.Write(data); err != nil {
		return fmt.Errorf("write: %w", err)
	}

	return nil
}

var _ command = (*readCommand)(nil)
