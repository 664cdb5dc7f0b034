// Copyright 2022-2024 Boris HUISGEN. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package resource

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bhuisgen/resource/pkg/core"
	"github.com/bhuisgen/resource/pkg/log"
)

// app implements the app.
type app struct {
	config *config
	logger *slog.Logger
	store  Store
	server Server
}

const (
	appLogger string = "app"
)

// New creates a new app from the given configuration. The store is loaded
// before New returns.
func New(ctx context.Context, config *config) (*app, error) {
	log.SetDebug(core.DEBUG)

	if config == nil {
		config = DefaultConfig()
	}
	store := newStore()
	a := &app{
		config: config,
		logger: log.New(appLogger),
		store:  store,
		server: newServer(store),
	}

	if err := a.init(ctx); err != nil {
		return nil, err
	}

	return a, nil
}

// init initializes the components and loads the store.
func (a *app) init(ctx context.Context) error {
	a.logger.Debug("Initializing app")

	var storeConfig, serverConfig map[string]interface{}
	if a.config.Store != nil {
		storeConfig = a.config.Store.Config
	}
	if a.config.Server != nil {
		serverConfig = a.config.Server.Config
	}

	if err := a.store.Init(storeConfig); err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	if err := a.server.Init(serverConfig); err != nil {
		return fmt.Errorf("init server: %w", err)
	}
	if err := a.store.Load(ctx); err != nil {
		return fmt.Errorf("load store: %w", err)
	}

	return nil
}

// Check checks the loaded store.
//
// Keys of the default namespace not starting with '/' are reported as
// warnings. An empty store is an error.
func (a *app) Check() error {
	if a.store.Len() == 0 {
		a.logger.Error("No resource loaded")
		return errors.New("empty store")
	}

	var keys, files int
	for key := range a.store.Keys("", false) {
		if !strings.HasPrefix(key, "/") {
			a.logger.Warn("Key without leading slash", "key", key)
		}
		keys++
	}
	for range a.store.FSFiles() {
		files++
	}

	a.logger.Info("Store checked", "keys", keys, "files", files)

	return nil
}

// Store returns the store.
func (a *app) Store() core.Store {
	return a.store
}

// Serve serves the store until the context is done.
func (a *app) Serve(ctx context.Context) error {
	return a.server.Serve(ctx)
}

var _ App = (*app)(nil)
