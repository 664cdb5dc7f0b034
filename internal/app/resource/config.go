// Copyright 2022-2024 Boris HUISGEN. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package resource

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/bhuisgen/resource/pkg/core"
)

// config implements the configuration.
type config struct {
	Store  *configStore
	Server *configServer
}

// configStore implements the configuration of the store.
type configStore struct {
	Config map[string]interface{}
}

// configServer implements the configuration of the server.
type configServer struct {
	Config map[string]interface{}
}

// configData implements the configuration file content.
type configData struct {
	Store  map[string]interface{} `yaml:"store" toml:"store" json:"store"`
	Server map[string]interface{} `yaml:"server" toml:"server" json:"server"`
}

const (
	configDefaultFile string = "resource.yaml"
)

// configParser parses the configuration data.
type configParser func(data []byte, v interface{}) error

// configParsers returns the parser for each file extension.
var configParsers = map[string]configParser{
	".yaml": yaml.Unmarshal,
	".yml":  yaml.Unmarshal,
	".toml": toml.Unmarshal,
	".json": json.Unmarshal,
}

// configOsReadFile redirects to os.ReadFile.
var configOsReadFile = func(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// DefaultConfig returns the configuration used without configuration file.
func DefaultConfig() *config {
	return &config{
		Store: &configStore{
			Config: map[string]interface{}{
				"sources": map[string]interface{}{
					"embedded": map[string]interface{}{},
				},
			},
		},
		Server: &configServer{},
	}
}

// LoadConfig loads the configuration.
//
// Without an explicit configuration file, a missing default file gives the
// default configuration.
func LoadConfig() (*config, error) {
	name := configDefaultFile
	if core.CONFIG_FILE != "" {
		name = core.CONFIG_FILE
	}

	parse, ok := configParsers[filepath.Ext(name)]
	if !ok {
		return nil, fmt.Errorf("invalid file extension '%s'", filepath.Ext(name))
	}
	data, err := configOsReadFile(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && core.CONFIG_FILE == "" {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}

	return parseConfig(data, parse)
}

// parseConfig parses the configuration data.
func parseConfig(data []byte, parse configParser) (*config, error) {
	var d configData
	if err := parse(data, &d); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	c := &config{
		Store: &configStore{
			Config: d.Store,
		},
		Server: &configServer{
			Config: d.Server,
		},
	}
	if c.Store.Config == nil {
		c.Store.Config = DefaultConfig().Store.Config
	}

	return c, nil
}

//go:embed templates/init/*
var configTemplatesInit embed.FS

// GenerateConfig creates a configuration file from the given template.
func GenerateConfig(template string) error {
	name := configDefaultFile
	if core.CONFIG_FILE != "" {
		name = core.CONFIG_FILE
	}

	if _, err := os.Stat(name); err == nil {
		return fmt.Errorf("configuration file '%s' already exists", name)
	}

	data, err := fs.ReadFile(configTemplatesInit, filepath.ToSlash(filepath.Join("templates", "init", template,
		configDefaultFile)))
	if err != nil {
		return fmt.Errorf("template '%s' not found", template)
	}
	if dir := filepath.Dir(name); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(name, data, 0644); err != nil {
		return err
	}

	return nil
}
