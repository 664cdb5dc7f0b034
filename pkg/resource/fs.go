// Copyright 2022-2024 Boris HUISGEN. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package resource

import (
	"fmt"
	"io/fs"
	"path"
)

// WalkFS calls fn for every regular file found under root in fsys with its
// slash separated path relative to root and its content. If root is a file,
// the relative path is its base name.
func WalkFS(fsys fs.FS, root string, fn func(rel string, data []byte) error) error {
	if root == "" {
		root = "."
	}
	clean := path.Clean(root)

	return fs.WalkDir(fsys, clean, func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}

		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return err
		}

		rel := name
		switch {
		case clean == ".":
		case name == clean:
			rel = path.Base(name)
		default:
			rel = name[len(clean)+1:]
		}
		return fn(rel, data)
	})
}

// AddFS adds every regular file found under root in fsys. The key of a file
// is prefix followed by its path relative to root.
//
// Files are added all together or not at all.
func (b *Builder) AddFS(ns Namespace, fsys fs.FS, root string, prefix string) error {
	if ns != Default && ns != FS {
		return fmt.Errorf("add fs %s: invalid namespace %s", root, ns)
	}

	pending := make(map[string][]byte)
	err := WalkFS(fsys, root, func(rel string, data []byte) error {
		key := prefix + rel
		if _, ok := b.entries[ns][key]; ok {
			return &DuplicateError{Namespace: ns, Key: key}
		}
		if _, ok := pending[key]; ok {
			return &DuplicateError{Namespace: ns, Key: key}
		}
		pending[key] = data
		return nil
	})
	if err != nil {
		return fmt.Errorf("add fs %s: %w", root, err)
	}

	for key, data := range pending {
		if err := b.Add(ns, key, data); err != nil {
			return fmt.Errorf("add fs %s: %w", root, err)
		}
	}

	return nil
}
