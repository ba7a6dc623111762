// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

//go:build linux

package stage

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

const maxCopyChunk = 1 << 30

// copyFileRangeFunc has the signature of [unix.CopyFileRange].
type copyFileRangeFunc func(
	rfd int,
	roff *int64,
	wfd int,
	woff *int64,
	length int,
	flags int,
) (int, error)

// copyContent copies from src to dst with copy_file_range(2), so the data does
// not pass through user space. If the kernel or the file systems do not
// support it, it falls back to [io.Copy].
func copyContent(dst, src *os.File) error {
	return copyContentWith(unix.CopyFileRange, dst, src)
}

func copyContentWith(copyFileRange copyFileRangeFunc, dst, src *os.File) error {
	srcFd, dstFd := int(src.Fd()), int(dst.Fd())

	for {
		n, err := copyFileRange(srcFd, nil, dstFd, nil, maxCopyChunk, 0)
		if err != nil {
			if !copyFileRangeUnsupported(err) {
				return fmt.Errorf("copy_file_range: %w", err)
			}

			// File offsets have been advanced by what has been copied
			// already, so io.Copy continues where it stopped.
			_, err := io.Copy(dst, src)
			if err != nil {
				return fmt.Errorf("copy: %w", err)
			}

			return nil
		}

		if n == 0 {
			return nil
		}
	}
}

func copyFileRangeUnsupported(err error) bool {
	return errors.Is(err, unix.ENOSYS) ||
		errors.Is(err, unix.EXDEV) ||
		errors.Is(err, unix.EINVAL) ||
		errors.Is(err, unix.EOPNOTSUPP)
}
