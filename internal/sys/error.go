// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sys

import (
	"fmt"
	"strings"
)

// InspectionError is returned if the inspection tool can not be invoked, it
// exits with a non-zero exit code or its output is unusable.
type InspectionError struct {
	Path   string
	Err    error
	Stderr string
}

func (e *InspectionError) Error() string {
	msg := fmt.Sprintf("inspect %s: %v", e.Path, e.Err)

	stderr := strings.TrimSpace(e.Stderr)
	if stderr != "" {
		msg += ": " + stderr
	}

	return msg
}

func (e *InspectionError) Is(other error) bool {
	_, ok := other.(*InspectionError)
	return ok
}

func (e *InspectionError) Unwrap() error {
	return e.Err
}

// UnresolvedDependencyError is returned if a required shared object is not
// present in any directory of the search path of the binary requiring it.
type UnresolvedDependencyError struct {
	Name       string
	Binary     string
	SearchPath []string
}

func (e *UnresolvedDependencyError) Error() string {
	msg := "could not find " + e.Name
	if e.Binary != "" {
		msg += " required by " + e.Binary
	}

	return fmt.Sprintf("%s in [%s]", msg, strings.Join(e.SearchPath, " "))
}

func (e *UnresolvedDependencyError) Is(other error) bool {
	_, ok := other.(*UnresolvedDependencyError)
	return ok
}

func (e *UnresolvedDependencyError) Unwrap() error {
	return ErrLibraryNotFound
}

// FilesystemError records a failed file system operation and the path it
// failed on.
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Is(other error) bool {
	_, ok := other.(*FilesystemError)
	return ok
}

func (e *FilesystemError) Unwrap() error {
	return e.Err
}
