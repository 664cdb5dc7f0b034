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

	"github.com/bhuisgen/resource/internal/app/resource"
	"github.com/bhuisgen/resource/pkg/core"
	"github.com/bhuisgen/resource/pkg/log"
)

// command
type command interface {
	Name() string
	Description() string
	Parse(args []string) error
	Execute(ctx context.Context) error
}

// main is the entrypoint.
func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// run parses and executes the command line.
func run(ctx context.Context, args []string, out io.Writer) error {
	commands := []command{
		NewInitCommand(out),
		NewCheckCommand(out),
		NewListCommand(out),
		NewCatCommand(out),
		NewFilesCommand(out),
		NewReadCommand(out),
		NewServeCommand(out),
		NewVersionCommand(out),
	}

	flagset := flag.NewFlagSet("resource", flag.ContinueOnError)
	flagset.SetOutput(out)
	var version bool
	flagset.BoolVar(&version, "v", false, "Print version information and quit")
	flagset.Usage = func() {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Usage: resource [OPTIONS] COMMAND")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Options:")
		flagset.PrintDefaults()
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Commands:")
		for _, c := range commands {
			fmt.Fprintf(out, "  %-16s %s\n", c.Name(), c.Description())
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Run 'resource COMMAND --help' for more information on a command.")
	}
	if err := flagset.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if version {
		fmt.Fprintf(out, "%s version %s\n", resource.Name, resource.Version)
		return nil
	}
	if flagset.NArg() == 0 {
		flagset.Usage()
		return nil
	}

	if v, ok := os.LookupEnv("CONFIG_FILE"); ok {
		core.CONFIG_FILE = v
	}
	if v, ok := os.LookupEnv("DEBUG"); ok {
		if v != "0" {
			core.DEBUG = true
		}
	}

	for _, c := range commands {
		if c.Name() != flagset.Arg(0) {
			continue
		}
		if err := c.Parse(flagset.Args()[1:]); err != nil {
			return err
		}
		return c.Execute(ctx)
	}

	flagset.Usage()
	return errors.New("invalid command")
}

// loadApp loads the configuration and creates the app.
func loadApp(ctx context.Context, out io.Writer) (resource.App, error) {
	config, err := resource.LoadConfig()
	if err != nil {
		fmt.Fprintf(out, "Failed to load configuration: %v\n", err)
		return nil, fmt.Errorf("load config: %w", err)
	}

	app, err := resource.New(ctx, config)
	if err != nil {
		fmt.Fprintf(out, "Failed to load store: %v\n", err)
		return nil, fmt.Errorf("new app: %w", err)
	}

	return app, nil
}

// newFlagSet creates the flag set of a command.
func newFlagSet(out io.Writer, name, usage, description string) *flag.FlagSet {
	flagset := flag.NewFlagSet(name, flag.ContinueOnError)
	flagset.SetOutput(out)
	flagset.Usage = func() {
		fmt.Fprintf(out, "Usage: resource %s\n", usage)
		fmt.Fprintln(out)
		fmt.Fprintln(out, description)
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Options:")
		flagset.PrintDefaults()
		fmt.Fprintln(out)
	}
	return flagset
}
