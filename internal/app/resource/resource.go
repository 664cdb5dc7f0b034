// Copyright 2022-2024 Boris HUISGEN. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package resource implements the application serving and inspecting the
// resource store.
package resource

var (
	Name    string = "Resource"
	Version string = "dev"
	Commit  string = "-"
	Date    string = "-"
)
