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

// initCommand implements the init command.
type initCommand struct {
	flagset  *flag.FlagSet
	out      io.Writer
	template string
}

// NewInitCommand creates a new init command.
func NewInitCommand(out io.Writer) *initCommand {
	c := initCommand{out: out}
	c.flagset = newFlagSet(out, "init", "init [OPTIONS]", "Generate a new configuration file.")
	c.flagset.StringVar(&c.template, "t", "default", "Template name")

	return &c
}

// Name returns the command name.
func (c *initCommand) Name() string {
	return c.flagset.Name()
}

// Description returns the command description.
func (c *initCommand) Description() string {
	return "Generate a new configuration file"
}

// Parse parses the command arguments.
func (c *initCommand) Parse(args []string) error {
	if err := c.flagset.Parse(args); err != nil {
		return errors.New("parse arguments")
	}
	if len(c.flagset.Args()) > 0 {
		return errors.New("check arguments")
	}

	return nil
}

// Execute executes the command.
func (c *initCommand) Execute(ctx context.Context) error {
	if err := resource.GenerateConfig(c.template); err != nil {
		fmt.Fprintf(c.out, "Failed to generate configuration: %v\n", err)
		return fmt.Errorf("generate config: %w", err)
	}

	return nil
}

var _ command = (*initCommand)(nil)
