// Copyright 2022-2024 Boris HUISGEN. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package module implements the registry of the pluggable modules.
package module

import (
	"fmt"
	"log"
	"slices"
	"strings"
	"sync"
)

// Module is the interface of module.
type Module interface {
	// ModuleInfo returns the module information.
	ModuleInfo() ModuleInfo
}

// ModuleID is the module id.
//
// IDs are dot separated, the last element being the module name
// (loader.source.dir).
type ModuleID string

// Name returns the last element of the id.
func (id ModuleID) Name() string {
	s := string(id)
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		return s[i+1:]
	}
	return s
}

// ModuleInfo implements the module information.
type ModuleInfo struct {
	// ID is the module ID.
	ID ModuleID
	// NewInstance returns a new module instance.
	NewInstance func() Module
}

var (
	modules     = make(map[ModuleID]ModuleInfo)
	modulesLock sync.RWMutex
)

// Register registers a module.
//
// Registering two modules with the same id is fatal.
func Register(module Module) {
	modulesLock.Lock()
	defer modulesLock.Unlock()

	info := module.ModuleInfo()
	if _, ok := modules[info.ID]; ok {
		log.Fatalf("Module '%s' already registered", info.ID)
	}
	modules[info.ID] = info
}

// Unregister unregisters a module.
func Unregister(module Module) {
	modulesLock.Lock()
	defer modulesLock.Unlock()

	delete(modules, module.ModuleInfo().ID)
}

// Lookup returns the module information if found.
func Lookup(id ModuleID) (ModuleInfo, error) {
	modulesLock.RLock()
	defer modulesLock.RUnlock()

	mi, ok := modules[id]
	if !ok {
		return ModuleInfo{}, fmt.Errorf("module '%s' not registered", id)
	}

	return mi, nil
}

// List returns the sorted ids of the registered modules under the given
// namespace.
func List(namespace string) []ModuleID {
	modulesLock.RLock()
	defer modulesLock.RUnlock()

	var ids []ModuleID
	for id := range modules {
		if namespace == "" || strings.HasPrefix(string(id), namespace+".") {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)

	return ids
}
