// Copyright 2022-2024 Boris HUISGEN. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package resource

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is matched by every lookup error on a missing key.
	ErrNotFound = errors.New("resource not found")
	// ErrFrozen is returned when registering into a table already in use.
	ErrFrozen = errors.New("resource table frozen")
)

// NotFoundError is returned when a key is absent from a namespace.
type NotFoundError struct {
	Namespace Namespace
	Key       string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("key %q not found in namespace %s", e.Key, e.Namespace)
}

// Is reports whether the target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// IsNotFound reports whether err is a missing key error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// DuplicateError is returned when a key is registered twice in a namespace.
type DuplicateError struct {
	Namespace Namespace
	Key       string
}

// Error implements the error interface.
func (e *DuplicateError) Error() string {
	return fmt.Sprintf("key %q already exists in namespace %s", e.Key, e.Namespace)
}

// IsDuplicate reports whether err is a duplicate key error.
func IsDuplicate(err error) bool {
	var e *DuplicateError
	return errors.As(err, &e)
}
