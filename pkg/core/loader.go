// Copyright 2022-2024 Boris HUISGEN. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package core

import (
	"context"

	"github.com/bhuisgen/resource/pkg/resource"
)

// Builder collects the resources of the store before it is frozen.
type Builder interface {
	// Add adds a resource under key in the given namespace.
	Add(ns resource.Namespace, key string, data []byte) error
}

// LoaderSourceModule is the interface of a source module.
//
// A source module loads resources from its origin into the builder.
type LoaderSourceModule interface {
	// Module is the interface of a module.
	Module

	// Load adds the resources of the source to the builder.
	Load(ctx context.Context, builder Builder) error
}
