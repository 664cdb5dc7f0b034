// Copyright 2022-2024 Boris HUISGEN. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package core

// App is the interface of the app component.
type App interface {
	// Store returns the store.
	Store() Store
}
