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
	"os"
	"os/signal"
	"syscall"
)

// serveCommand implements the serve command.
type serveCommand struct {
	flagset *flag.FlagSet
	out     io.Writer
}

// NewServeCommand creates a new serve command.
func NewServeCommand(out io.Writer) *serveCommand {
	c := serveCommand{out: out}
	c.flagset = newFlagSet(out, "serve", "serve", "Serve the store over HTTP until interrupted.")

	return &c
}

// Name returns the command name.
func (c *serveCommand) Name() string {
	return c.flagset.Name()
}

// Description returns the command description.
func (c *serveCommand) Description() string {
	return "Serve the resources over HTTP"
}

// Parse parses the command arguments.
func (c *serveCommand) Parse(args []string) error {
	if err := c.flagset.Parse(args); err != nil {
		return errors.New("parse arguments")
	}
	if len(c.flagset.Args()) > 0 {
		return errors.New("check arguments")
	}

	return nil
}

// Execute executes the command.
func (c *serveCommand) Execute(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := loadApp(ctx, c.out)
	if err != nil {
		return err
	}

	if err := app.Serve(ctx); err != nil {
		fmt.Fprintf(c.out, "Failed to serve: %v\n", err)
		return fmt.Errorf("serve: %w", err)
	}

	return nil
}

var _ command = (*serveCommand)(nil)
