// Copyright 2022-2024 Boris HUISGEN. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package core defines the interfaces shared by the application and its
// modules.
package core

var (
	// CONFIG_FILE is the configuration file to load.
	CONFIG_FILE string
	// DEBUG enables the debug log level.
	DEBUG bool
)
