// Copyright 2022-2024 Boris HUISGEN. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package resource

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/mitchellh/mapstructure"

	"github.com/bhuisgen/resource/pkg/core"
	"github.com/bhuisgen/resource/pkg/log"
	"github.com/bhuisgen/resource/pkg/module"
	"github.com/bhuisgen/resource/pkg/resource"
)

// store implements the store.
type store struct {
	config *storeConfig
	logger *slog.Logger
	state  *storeState
}

// storeConfig implements the store configuration.
//
// A source is named after its module, optionally followed by a label to
// declare several sources of the same module (dir:assets).
type storeConfig struct {
	Sources map[string]map[string]interface{} `mapstructure:"sources"`
}

// storeState implements the store state.
type storeState struct {
	sources []storeSource
	table   *resource.Table
	once    sync.Once
	err     error
}

// storeSource is an initialized source module.
type storeSource struct {
	name   string
	module core.LoaderSourceModule
}

const (
	storeLogger string = "store"

	storeSourceModulePrefix string = "loader.source."
)

// newStore creates a new store.
func newStore() *store {
	return &store{
		logger: log.New(storeLogger),
		state:  &storeState{},
	}
}

// Init initializes the store and its sources.
func (s *store) Init(config map[string]interface{}) error {
	s.logger.Debug("Initializing store")

	if err := mapstructure.Decode(config, &s.config); err != nil {
		s.logger.Error("Failed to parse configuration", "err", err)
		return fmt.Errorf("parse config: %w", err)
	}
	if s.config == nil {
		s.config = &storeConfig{}
	}

	var errConfig bool

	if len(s.config.Sources) == 0 {
		s.logger.Error("No source defined")
		errConfig = true
	}
	names := make([]string, 0, len(s.config.Sources))
	for name := range s.config.Sources {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		moduleName, _, _ := strings.Cut(name, ":")
		moduleInfo, err := module.Lookup(module.ModuleID(storeSourceModulePrefix + moduleName))
		if err != nil {
			s.logger.Error("Unregistered source module", "source", name, "err", err)
			errConfig = true
			continue
		}
		source, ok := moduleInfo.NewInstance().(core.LoaderSourceModule)
		if !ok {
			s.logger.Error("Invalid source module", "source", name)
			errConfig = true
			continue
		}
		sourceConfig := s.config.Sources[name]
		if sourceConfig == nil {
			sourceConfig = map[string]interface{}{}
		}
		if err := source.Init(sourceConfig, s.logger.With("source", name)); err != nil {
			s.logger.Error("Failed to init source module", "source", name, "err", err)
			errConfig = true
			continue
		}
		s.state.sources = append(s.state.sources, storeSource{name: name, module: source})
	}

	if errConfig {
		return errors.New("config")
	}

	return nil
}

// Load loads all sources and freezes the table. The table is built once;
// later calls return the result of the first one.
func (s *store) Load(ctx context.Context) error {
	s.state.once.Do(func() {
		builder := resource.NewBuilder()
		for _, source := range s.state.sources {
			s.logger.Debug("Loading source", "source", source.name)
			if err := source.module.Load(ctx, builder); err != nil {
				s.logger.Error("Failed to load source", "source", source.name, "err", err)
				s.state.err = fmt.Errorf("load source %s: %w", source.name, err)
				return
			}
		}
		s.state.table = builder.Build()

		s.logger.Info("Store loaded", "sources", len(s.state.sources), "resources", s.state.table.Len())
	})

	return s.state.err
}

// Find returns the resource stored under key.
func (s *store) Find(key string) ([]byte, error) {
	return s.state.table.Find(key)
}

// Keys returns the keys starting with prefix.
func (s *store) Keys(prefix string, strip bool) iter.Seq[string] {
	return s.state.table.Keys(prefix, strip)
}

// Items returns the keys starting with prefix and their resources.
func (s *store) Items(prefix string, strip bool) iter.Seq2[string, []byte] {
	return s.state.table.Items(prefix, strip)
}

// FSFiles returns the paths of the resfs namespace.
func (s *store) FSFiles() iter.Seq[string] {
	return s.state.table.FSFiles()
}

// FSRead returns the content of a resfs path.
func (s *store) FSRead(path string) ([]byte, error) {
	return s.state.table.FSRead(path)
}

// Len returns the number of resources.
func (s *store) Len() int {
	return s.state.table.Len()
}

var _ Store = (*store)(nil)
