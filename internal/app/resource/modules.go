// Copyright 2022-2024 Boris HUISGEN. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package resource

import (
	_ "github.com/bhuisgen/resource/pkg/modules/loader/sources/archive"
	_ "github.com/bhuisgen/resource/pkg/modules/loader/sources/dir"
	_ "github.com/bhuisgen/resource/pkg/modules/loader/sources/embedded"
	_ "github.com/bhuisgen/resource/pkg/modules/loader/sources/manifest"
)
