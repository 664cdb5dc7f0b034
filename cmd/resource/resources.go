// Copyright 2022-2024 Boris HUISGEN. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"embed"

	"github.com/bhuisgen/resource/pkg/resource"
)

//go:embed resources
var resources embed.FS

// init registers the resources of the program.
func init() {
	if err := resource.RegisterFS(resource.Default, resources, "resources/default", "/"); err != nil {
		panic(err)
	}
	if err := resource.RegisterFS(resource.FS, resources, "resources/fs", ""); err != nil {
		panic(err)
	}
}
