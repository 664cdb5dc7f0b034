// Copyright 2022-2024 Boris HUISGEN. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/mitchellh/mapstructure"

	"github.com/bhuisgen/resource/pkg/core"
	"github.com/bhuisgen/resource/pkg/module"
	"github.com/bhuisgen/resource/pkg/resource"
)

// archiveSource implements the zip archive source.
type archiveSource struct {
	config        *archiveSourceConfig
	logger        *slog.Logger
	namespace     resource.Namespace
	prefix        string
	zipOpenReader func(name string) (*zip.ReadCloser, error)
}

// archiveSourceConfig implements the zip archive source configuration.
type archiveSourceConfig struct {
	Path      string  `mapstructure:"path"`
	Namespace string  `mapstructure:"namespace"`
	Prefix    *string `mapstructure:"prefix"`
	Root      string  `mapstructure:"root"`
}

const (
	archiveModuleID module.ModuleID = "loader.source.archive"
)

// archiveZipOpenReader redirects to zip.OpenReader.
func archiveZipOpenReader(name string) (*zip.ReadCloser, error) {
	return zip.OpenReader(name)
}

// init initializes the module.
func init() {
	module.Register(archiveSource{})
}

// ModuleInfo returns the module information.
func (s archiveSource) ModuleInfo() module.ModuleInfo {
	return module.ModuleInfo{
		ID: archiveModuleID,
		NewInstance: func() module.Module {
			return &archiveSource{
				zipOpenReader: archiveZipOpenReader,
			}
		},
	}
}

// Init initializes the source.
func (s *archiveSource) Init(config map[string]interface{}, logger *slog.Logger) error {
	s.logger = logger

	if err := mapstructure.Decode(config, &s.config); err != nil {
		s.logger.Error("Failed to parse configuration", "err", err)
		return fmt.Errorf("parse config: %w", err)
	}
	if s.config == nil {
		s.config = &archiveSourceConfig{}
	}

	var errConfig bool

	if s.config.Path == "" {
		s.logger.Error("Missing option or value", "option", "Path")
		errConfig = true
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
	if s.config.Root != "" && !strings.HasSuffix(s.config.Root, "/") {
		s.config.Root += "/"
	}

	if errConfig {
		return errors.New("config")
	}

	return nil
}

// Load adds every file of the archive found under the root directory.
func (s *archiveSource) Load(ctx context.Context, builder core.Builder) error {
	r, err := s.zipOpenReader(s.config.Path)
	if err != nil {
		return fmt.Errorf("open archive %s: %w", s.config.Path, err)
	}
	defer r.Close()

	var n int
	for _, f := range r.File {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !f.Mode().IsRegular() {
			continue
		}
		name, ok := strings.CutPrefix(f.Name, s.config.Root)
		if !ok || name == "" {
			continue
		}

		data, err := readFile(f)
		if err != nil {
			return fmt.Errorf("read archive file %s: %w", f.Name, err)
		}
		if err := builder.Add(s.namespace, s.prefix+name, data); err != nil {
			return err
		}
		n++
	}

	s.logger.Debug("Archive loaded", "path", s.config.Path, "namespace", s.namespace, "count", n)

	return nil
}

// readFile returns the uncompressed content of an archive file.
func readFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return io.ReadAll(rc)
}

var _ core.LoaderSourceModule = (*archiveSource)(nil)
