// Copyright 2022-2024 Boris HUISGEN. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package resource gives read-only access to the resources embedded into the
// program at build time.
//
// Resources are registered from init functions, usually by generated code:
//
//	//go:embed assets
//	var assets embed.FS
//
//	func init() {
//		if err := resource.RegisterFS(resource.Default, assets, "assets", "/"); err != nil {
//			panic(err)
//		}
//	}
//
// The process-wide table is frozen on the first query and never changes
// afterwards, so concurrent readers need no synchronization.
package resource

import (
	"fmt"
	"io/fs"
	"iter"
	"sync"
)

var (
	globalMu      sync.Mutex
	globalOnce    sync.Once
	globalBuilder = NewBuilder()
	globalTable   *Table
)

// Register registers data under key in the default namespace.
//
// It panics if the key is already registered or if the table is frozen.
func Register(key string, data []byte) {
	mustRegister(Default, key, data)
}

// RegisterFile registers data under path in the resfs namespace.
//
// It panics if the path is already registered or if the table is frozen.
func RegisterFile(path string, data []byte) {
	mustRegister(FS, path, data)
}

// RegisterFS registers every regular file found under root in fsys.
func RegisterFS(ns Namespace, fsys fs.FS, root string, prefix string) error {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalBuilder == nil {
		return fmt.Errorf("register fs %s: %w", root, ErrFrozen)
	}
	return globalBuilder.AddFS(ns, fsys, root, prefix)
}

// mustRegister adds an entry to the global builder or panics.
func mustRegister(ns Namespace, key string, data []byte) {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalBuilder == nil {
		panic(fmt.Errorf("register %q: %w", key, ErrFrozen))
	}
	if err := globalBuilder.Add(ns, key, data); err != nil {
		panic(fmt.Errorf("register %q: %w", key, err))
	}
}

// Global returns the process-wide table, freezing it on first use.
func Global() *Table {
	globalOnce.Do(func() {
		globalMu.Lock()
		defer globalMu.Unlock()

		globalTable = globalBuilder.Build()
		globalBuilder = nil
	})
	return globalTable
}

// Find returns the resource stored under key.
func Find(key string) ([]byte, error) {
	return Global().Find(key)
}

// MustFind returns the resource stored under key or panics.
func MustFind(key string) []byte {
	data, err := Find(key)
	if err != nil {
		panic(err)
	}
	return data
}

// Has reports whether a resource is stored under key.
func Has(key string) bool {
	return Global().Has(key)
}

// Keys returns the resource keys starting with prefix, with the prefix
// removed if strip is set.
func Keys(prefix string, strip bool) iter.Seq[string] {
	return Global().Keys(prefix, strip)
}

// Items returns the resources whose key starts with prefix, with the prefix
// removed from the keys if strip is set.
func Items(prefix string, strip bool) iter.Seq2[string, []byte] {
	return Global().Items(prefix, strip)
}

// FSFiles returns the paths of the resfs namespace.
func FSFiles() iter.Seq[string] {
	return Global().FSFiles()
}

// FSRead returns the content of the resfs file at path.
func FSRead(path string) ([]byte, error) {
	return Global().FSRead(path)
}

// Len returns the number of resources in all namespaces.
func Len() int {
	return Global().Len()
}
