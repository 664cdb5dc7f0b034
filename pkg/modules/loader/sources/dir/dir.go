// Copyright 2022-2024 Boris HUISGEN. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package dir

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/mitchellh/mapstructure"

	"github.com/bhuisgen/resource/pkg/core"
	"github.com/bhuisgen/resource/pkg/module"
	"github.com/bhuisgen/resource/pkg/resource"
)

// dirSource implements the directory source.
type dirSource struct {
	config    *dirSourceConfig
	logger    *slog.Logger
	namespace resource.Namespace
	prefix    string
	osDirFS   func(dir string) fs.FS
	osStat    func(name string) (fs.FileInfo, error)
}

// dirSourceConfig implements the directory source configuration.
type dirSourceConfig struct {
	Path      string  `mapstructure:"path"`
	Namespace string  `mapstructure:"namespace"`
	Prefix    *string `mapstructure:"prefix"`
}

const (
	dirModuleID module.ModuleID = "loader.source.dir"
)

// dirOsDirFS redirects to os.DirFS.
func dirOsDirFS(dir string) fs.FS {
	return os.DirFS(dir)
}

// dirOsStat redirects to os.Stat.
func dirOsStat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

// init initializes the module.
func init() {
	module.Register(dirSource{})
}

// ModuleInfo returns the module information.
func (s dirSource) ModuleInfo() module.ModuleInfo {
	return module.ModuleInfo{
		ID: dirModuleID,
		NewInstance: func() module.Module {
			return &dirSource{
				osDirFS: dirOsDirFS,
				osStat:  dirOsStat,
			}
		},
	}
}

// Init initializes the source.
func (s *dirSource) Init(config map[string]interface{}, logger *slog.Logger) error {
	s.logger = logger

	if err := mapstructure.Decode(config, &s.config); err != nil {
		s.logger.Error("Failed to parse configuration", "err", err)
		return fmt.Errorf("parse config: %w", err)
	}
	if s.config == nil {
		s.config = &dirSourceConfig{}
	}

	var errConfig bool

	if s.config.Path == "" {
		s.logger.Error("Missing option or value", "option", "Path")
		errConfig = true
	} else {
		info, err := s.osStat(s.config.Path)
		if err != nil || !info.IsDir() {
			s.logger.Error("Invalid value", "option", "Path", "value", s.config.Path)
			errConfig = true
		}
	}
	ns, err := resource.ParseNamespace(s.config.Namespace)
	if err != nil {
		s.logger.Error("Invalid value", "option", "Namespace", "value", s.config.Namespace)
		errConfig = true
	}
	s.namespace = ns
	s.prefix = ns.KeyPrefix()
	if s.config.Prefix != nil {
		s.prefix = *s.config.Prefix
	}

	if errConfig {
		return errors.New("config")
	}

	return nil
}

// Load adds every regular file of the directory tree.
func (s *dirSource) Load(ctx context.Context, builder core.Builder) error {
	var n int
	err := resource.WalkFS(s.osDirFS(s.config.Path), ".", func(rel string, data []byte) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := builder.Add(s.namespace, s.prefix+rel, data); err != nil {
			return err
		}
		n++
		return nil
	})
	if err != nil {
		return fmt.Errorf("load directory %s: %w", s.config.Path, err)
	}

	s.logger.Debug("Directory loaded", "path", s.config.Path, "namespace", s.namespace, "count", n)

	return nil
}

var _ core.LoaderSourceModule = (*dirSource)(nil)
