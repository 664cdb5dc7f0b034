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

// checkCommand implements the check command.
type checkCommand struct {
	flagset *flag.FlagSet
	out     io.Writer
}

// NewCheckCommand creates a new check command.
func NewCheckCommand(out io.Writer) *checkCommand {
	c := checkCommand{out: out}
	c.flagset = newFlagSet(out, "check", "check", "Load the configured sources and check the store.")

	return &c
}

// Name returns the command name.
func (c *checkCommand) Name() string {
	return c.flagset.Name()
}

// Description returns the command description.
func (c *checkCommand) Description() string {
	return "Check the configuration and the store"
}

// Parse parses the command arguments.
func (c *checkCommand) Parse(args []string) error {
	if err := c.flagset.Parse(args); err != nil {
		return errors.New("parse arguments")
	}
	if len(c.flagset.Args()) > 0 {
		return errors.New("check arguments")
	}

	return nil
}

// Execute executes the command.
func (c *checkCommand) Execute(ctx context.Context) error {
	app, err := loadApp(ctx, c.out)
	if err != nil {
		fmt.Fprintln(c.out, "Configuration is not valid")
		return err
	}

	if err := app.Check(); err != nil {
		fmt.Fprintln(c.out, "Store is not valid")
		return fmt.Errorf("check: %w", err)
	}

	fmt.Fprintln(c.out, "Configuration is valid")

	return nil
}

var _ command = (*checkCommand)(nil)
