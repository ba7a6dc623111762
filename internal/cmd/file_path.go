// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"os"

	"github.com/aibor/copylibs/internal/sys"
)

// FilePath is a [flag.Value] that stores the absolute path of the given
// path.
type FilePath string

func (f *FilePath) String() string {
	return string(*f)
}

func (f *FilePath) Set(s string) error {
	path, err := sys.AbsolutePath(s)

	*f = FilePath(path)

	return err //nolint:wrapcheck
}

// ValidateFilePath checks that the file with the given name exists and is a
// regular file.
func ValidateFilePath(name string) error {
	stat, err := os.Stat(name)
	if err != nil {
		return err //nolint:wrapcheck
	}

	if !stat.Mode().IsRegular() {
		return sys.ErrNotRegularFile
	}

	return nil
}
