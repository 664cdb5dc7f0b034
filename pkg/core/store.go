// Copyright 2022-2024 Boris HUISGEN. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package core

import "iter"

// Store is the interface of the store component.
//
// The store gives read-only access to a table of resources built once at
// startup.
type Store interface {
	// Find returns the resource stored under key.
	Find(key string) ([]byte, error)
	// Keys returns the keys starting with prefix.
	Keys(prefix string, strip bool) iter.Seq[string]
	// Items returns the keys starting with prefix and their resources.
	Items(prefix string, strip bool) iter.Seq2[string, []byte]
	// FSFiles returns the paths of the resfs namespace.
	FSFiles() iter.Seq[string]
	// FSRead returns the content of a resfs path.
	FSRead(path string) ([]byte, error)
	// Len returns the number of resources.
	Len() int
}
