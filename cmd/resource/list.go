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

	"github.com/dustin/go-humanize"
)

// listCommand implements the list command.
type listCommand struct {
	flagset *flag.FlagSet
	out     io.Writer
	prefix  string
	strip   bool
	long    bool
}

// NewListCommand creates a new list command.
func NewListCommand(out io.Writer) *listCommand {
	c := listCommand{out: out}
	c.flagset = newFlagSet(out, "list", "list [OPTIONS]", "List the keys of the default namespace in ascending order.")
	c.flagset.StringVar(&c.prefix, "prefix", "", "Key prefix")
	c.flagset.BoolVar(&c.strip, "strip", false, "Remove the prefix from the listed keys")
	c.flagset.BoolVar(&c.long, "long", false, "Print the size of each value")

	return &c
}

// Name returns the command name.
func (c *listCommand) Name() string {
	return c.flagset.Name()
}

// Description returns the command description.
func (c *listCommand) Description() string {
	return "List the resource keys"
}

// Parse parses the command arguments.
func (c *listCommand) Parse(args []string) error {
	if err := c.flagset.Parse(args); err != nil {
		return errors.New("parse arguments")
	}
	if len(c.flagset.Args()) > 0 {
		return errors.New("check arguments")
	}

	return nil
}

// Execute executes the command.
func (c *listCommand) Execute(ctx context.Context) error {
	app, err := loadApp(ctx, c.out)
	if err != nil {
		return err
	}

	if !c.long {
		for key := range app.Store().Keys(c.prefix, c.strip) {
			fmt.Fprintln(c.out, key)
		}
		return nil
	}

	for key, value := range app.Store().Items(c.prefix, c.strip) {
		fmt.Fprintf(c.out, "%10s  %s\n", humanize.Bytes(uint64(len(value))), key)
	}

	return nil
}

var _ command = (*listCommand)(nil)
