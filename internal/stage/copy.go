// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package stage

import (
	"errors"
	"os"

	"github.com/aibor/copylibs/internal/sys"
)

// copyFile copies the regular file source to the new file destination. The
// permission bits of source are applied to destination. It fails if
// destination exists.
func copyFile(source, destination string) error {
	src, err := os.Open(source)
	if err != nil {
		return &sys.FilesystemError{Op: "open", Path: source, Err: err}
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return &sys.FilesystemError{Op: "stat", Path: source, Err: err}
	}

	if !info.Mode().IsRegular() {
		return &sys.FilesystemError{
			Op:   "open",
			Path: source,
			Err:  sys.ErrNotRegularFile,
		}
	}

	perm := info.Mode().Perm()

	dst, err := os.OpenFile(destination, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return &sys.FilesystemError{Op: "create", Path: destination, Err: err}
	}

	err = copyContent(dst, src)
	if err == nil {
		// The umask might have stripped bits on creation.
		err = dst.Chmod(perm)
	}

	closeErr := dst.Close()

	err = errors.Join(err, closeErr)
	if err != nil {
		return &sys.FilesystemError{Op: "write", Path: destination, Err: err}
	}

	return nil
}
