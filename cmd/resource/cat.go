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

// catCommand implements the cat command.
type catCommand struct {
	flagset *flag.FlagSet
	out     io.Writer
	key     string
}

// NewCatCommand creates a new cat command.
func NewCatCommand(out io.Writer) *catCommand {
	c := catCommand{out: out}
	c.flagset = newFlagSet(out, "cat", "cat KEY", "Print the value of a key of the default namespace.")

	return &c
}

// Name returns the command name.
func (c *catCommand) Name() string {
	return c.flagset.Name()
}

// Description returns the command description.
func (c *catCommand) Description() string {
	return "Print a resource value"
}

// Parse parses the command arguments.
func (c *catCommand) Parse(args []string) error {
	if err := c.flagset.Parse(args); err != nil {
		return errors.New("parse arguments")
	}
	if len(c.flagset.Args()) != 1 {
		return errors.New("check arguments")
	}
	c.key = c.flagset.Arg(0)

	return nil
}

// Execute executes the command.
func (c *catCommand) Execute(ctx context.Context) error {
	app, err := loadApp(ctx, c.out)
	if err != nil {
		return err
	}

	data, err := app.Store().Find(c.key)
	if err != nil {
		fmt.Fprintf(c.out, "Failed to find key: %v\n", err)
		return fmt.Errorf("find: %w", err)
	}
	if _, err := c.out.Write(data); err != nil {
		return fmt.Errorf("write: %w", err)
	}

	return nil
}

var _ command = (*catCommand)(nil)
