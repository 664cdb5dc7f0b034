// Copyright 2022-2024 Boris HUISGEN. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package resource

import (
	"context"
	"net/http"

	"github.com/bhuisgen/resource/pkg/core"
)

// App
type App interface {
	core.App
	Check() error
	Serve(ctx context.Context) error
}

// Store
type Store interface {
	core.Store
	Init(config map[string]interface{}) error
	Load(ctx context.Context) error
}

// Server
type Server interface {
	Init(config map[string]interface{}) error
	Handler() http.Handler
	Serve(ctx context.Context) error
}
