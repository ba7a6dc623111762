// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sys

import "errors"

var (
	// ErrEmptyPath is returned if an empty path is given.
	ErrEmptyPath = errors.New("path must not be empty")

	// ErrNotRegularFile is returned if a file is expected to be a regular
	// file but is not.
	ErrNotRegularFile = errors.New("not a regular file")

	// ErrUnrecognizedOutput is returned if the output of the inspection tool
	// does not look like the output of "objdump -p".
	ErrUnrecognizedOutput = errors.New("unrecognized inspection tool output")

	// ErrLibraryNotFound is returned if a required shared object can not be
	// found in any directory of the search path.
	ErrLibraryNotFound = errors.New("library not found")
)
