// Copyright 2022-2024 Boris HUISGEN. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package core

import (
	"log/slog"

	"github.com/bhuisgen/resource/pkg/module"
)

// Module is the interface of a module.
type Module interface {
	// Module is the base interface of a module.
	module.Module

	// Init initializes a module with the given configuration and logger.
	Init(config map[string]interface{}, logger *slog.Logger) error
}
