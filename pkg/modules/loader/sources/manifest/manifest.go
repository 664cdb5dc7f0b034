// Copyright 2022-2024 Boris HUISGEN. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package manifest

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/PaesslerAG/jsonpath"
	"github.com/mitchellh/mapstructure"

	"github.com/bhuisgen/resource/pkg/core"
	"github.com/bhuisgen/resource/pkg/module"
	"github.com/bhuisgen/resource/pkg/resource"
)

// manifestSource implements the JSON manifest source.
//
// A manifest lists resources as JSON objects selected by a JSONPath filter:
//
//	{"resources": [
//	  {"key": "/qw.txt", "data": "text"},
//	  {"key": "/logo.png", "base64": "iVBORw0KGgo="},
//	  {"key": "lib/METADATA", "namespace": "fs", "file": "METADATA"}
//	]}
//
// The file of an entry is relative to the manifest directory.
type manifestSource struct {
	config        *manifestSourceConfig
	logger        *slog.Logger
	osReadFile    func(name string) ([]byte, error)
	jsonUnmarshal func(data []byte, v any) error
}

// manifestSourceConfig implements the JSON manifest source configuration.
type manifestSourceConfig struct {
	Path   string `mapstructure:"path"`
	Filter string `mapstructure:"filter"`
}

// manifestEntry implements a manifest entry.
type manifestEntry struct {
	Key       string  `mapstructure:"key"`
	Namespace string  `mapstructure:"namespace"`
	Data      *string `mapstructure:"data"`
	Base64    *string `mapstructure:"base64"`
	File      string  `mapstructure:"file"`
}

const (
	manifestModuleID module.ModuleID = "loader.source.manifest"

	manifestConfigDefaultFilter string = "$.resources[*]"
)

// manifestOsReadFile redirects to os.ReadFile.
func manifestOsReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// manifestJsonUnmarshal redirects to json.Unmarshal.
func manifestJsonUnmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// init initializes the module.
func init() {
	module.Register(manifestSource{})
}

// ModuleInfo returns the module information.
func (s manifestSource) ModuleInfo() module.ModuleInfo {
	return module.ModuleInfo{
		ID: manifestModuleID,
		NewInstance: func() module.Module {
			return &manifestSource{
				osReadFile:    manifestOsReadFile,
				jsonUnmarshal: manifestJsonUnmarshal,
			}
		},
	}
}

// Init initializes the source.
func (s *manifestSource) Init(config map[string]interface{}, logger *slog.Logger) error {
	s.logger = logger

	if err := mapstructure.Decode(config, &s.config); err != nil {
		s.logger.Error("Failed to parse configuration", "err", err)
		return fmt.Errorf("parse config: %w", err)
	}
	if s.config == nil {
		s.config = &manifestSourceConfig{}
	}

	var errConfig bool

	if s.config.Path == "" {
		s.logger.Error("Missing option or value", "option", "Path")
		errConfig = true
	}
	if s.config.Filter == "" {
		s.config.Filter = manifestConfigDefaultFilter
	}

	if errConfig {
		return errors.New("config")
	}

	return nil
}

// Load adds the resources listed by the manifest.
func (s *manifestSource) Load(ctx context.Context, builder core.Builder) error {
	data, err := s.osReadFile(s.config.Path)
	if err != nil {
		return fmt.Errorf("read manifest %s: %w", s.config.Path, err)
	}
	var doc interface{}
	if err := s.jsonUnmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse manifest %s: %w", s.config.Path, err)
	}
	result, err := jsonpath.Get(s.config.Filter, doc)
	if err != nil {
		return fmt.Errorf("filter manifest %s: %w", s.config.Path, err)
	}

	var items []interface{}
	switch v := result.(type) {
	case []interface{}:
		items = v
	case map[string]interface{}:
		items = []interface{}{v}
	default:
		return fmt.Errorf("filter manifest %s: unexpected result type %T", s.config.Path, result)
	}

	for index, item := range items {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.loadEntry(builder, item); err != nil {
			return fmt.Errorf("manifest %s entry %d: %w", s.config.Path, index, err)
		}
	}

	s.logger.Debug("Manifest loaded", "path", s.config.Path, "count", len(items))

	return nil
}

// loadEntry adds the resource described by a manifest item.
func (s *manifestSource) loadEntry(builder core.Builder, item interface{}) error {
	var e manifestEntry
	if err := mapstructure.Decode(item, &e); err != nil {
		return err
	}
	if e.Key == "" {
		return errors.New("missing key")
	}
	ns, err := resource.ParseNamespace(e.Namespace)
	if err != nil {
		return err
	}

	var value []byte
	switch {
	case e.Data != nil:
		value = []byte(*e.Data)
	case e.Base64 != nil:
		value, err = base64.StdEncoding.DecodeString(*e.Base64)
		if err != nil {
			return fmt.Errorf("decode key %s: %w", e.Key, err)
		}
	case e.File != "":
		name := e.File
		if !filepath.IsAbs(name) {
			name = filepath.Join(filepath.Dir(s.config.Path), name)
		}
		value, err = s.osReadFile(name)
		if err != nil {
			return fmt.Errorf("read key %s: %w", e.Key, err)
		}
	default:
		return fmt.Errorf("missing value for key %s", e.Key)
	}

	return builder.Add(ns, e.Key, value)
}

var _ core.LoaderSourceModule = (*manifestSource)(nil)
