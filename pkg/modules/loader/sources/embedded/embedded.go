// Copyright 2022-2024 Boris HUISGEN. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package embedded

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mitchellh/mapstructure"

	"github.com/bhuisgen/resource/pkg/core"
	"github.com/bhuisgen/resource/pkg/module"
	"github.com/bhuisgen/resource/pkg/resource"
)

// embeddedSource implements the embedded source.
type embeddedSource struct {
	config *embeddedSourceConfig
	logger *slog.Logger
	table  func() *resource.Table
}

// embeddedSourceConfig implements the embedded source configuration.
type embeddedSourceConfig struct {
	Namespaces []string `mapstructure:"namespaces"`
	Prefix     string   `mapstructure:"prefix"`
}

const (
	embeddedModuleID module.ModuleID = "loader.source.embedded"
)

// init initializes the module.
func init() {
	module.Register(embeddedSource{})
}

// ModuleInfo returns the module information.
func (s embeddedSource) ModuleInfo() module.ModuleInfo {
	return module.ModuleInfo{
		ID: embeddedModuleID,
		NewInstance: func() module.Module {
			return &embeddedSource{
				table: resource.Global,
			}
		},
	}
}

// Init initializes the source.
func (s *embeddedSource) Init(config map[string]interface{}, logger *slog.Logger) error {
	s.logger = logger

	if err := mapstructure.Decode(config, &s.config); err != nil {
		s.logger.Error("Failed to parse configuration", "err", err)
		return fmt.Errorf("parse config: %w", err)
	}
	if s.config == nil {
		s.config = &embeddedSourceConfig{}
	}

	var errConfig bool

	if len(s.config.Namespaces) == 0 {
		s.config.Namespaces = []string{resource.Default.String(), resource.FS.String()}
	}
	for _, name := range s.config.Namespaces {
		if _, err := resource.ParseNamespace(name); err != nil {
			s.logger.Error("Invalid value", "option", "Namespaces", "value", name)
			errConfig = true
		}
	}

	if errConfig {
		return errors.New("config")
	}

	return nil
}

// Load adds the resources embedded into the program.
func (s *embeddedSource) Load(ctx context.Context, builder core.Builder) error {
	table := s.table()

	for _, name := range s.config.Namespaces {
		ns, err := resource.ParseNamespace(name)
		if err != nil {
			return err
		}
		var n int
		for key, data := range table.View(ns).Items(s.config.Prefix, false) {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := builder.Add(ns, key, data); err != nil {
				return fmt.Errorf("add %s: %w", key, err)
			}
			n++
		}
		s.logger.Debug("Embedded resources loaded", "namespace", ns, "count", n)
	}

	return nil
}

var _ core.LoaderSourceModule = (*embeddedSource)(nil)
