// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package archive

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// Write writes all directories and regular files of fsys into a cpio archive
// written to w. Other file types are skipped.
func Write(w io.Writer, fsys fs.FS) error {
	return write(w, fsys, "")
}

// write is [Write] that leaves out the file at the slash separated path skip,
// if not empty.
func write(w io.Writer, fsys fs.FS, skip string) error {
	archive := NewCPIOWriter(w)

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if path == "." {
			return nil
		}

		if path == skip {
			slog.Debug("Skipping archive file", slog.String("path", path))
			return nil
		}

		switch {
		case entry.IsDir():
			info, err := entry.Info()
			if err != nil {
				return fmt.Errorf("info %s: %w", path, err)
			}

			return archive.WriteDirectory(path, info)
		case entry.Type().IsRegular():
			return writeRegularFile(archive, fsys, path)
		default:
			slog.Warn("Skipping file of unsupported type",
				slog.String("path", path),
				slog.String("type", entry.Type().String()),
			)

			return nil
		}
	})
	if err != nil {
		return fmt.Errorf("walk: %w", err)
	}

	return archive.Close()
}

func writeRegularFile(archive *CPIOWriter, fsys fs.FS, path string) error {
	file, err := fsys.Open(path)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer file.Close()

	return archive.WriteRegular(path, file)
}

// WriteFile writes the archive of the directory dir into a new file at path,
// see [Write]. The path may be located inside dir. The archive file itself is
// not added to the archive then.
func WriteFile(path, dir string) error {
	skip, err := archivePathIn(path, dir)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}

	err = write(file, os.DirFS(dir), skip)
	if err != nil {
		_ = file.Close()
		return err
	}

	err = file.Close()
	if err != nil {
		return fmt.Errorf("close archive: %w", err)
	}

	return nil
}

// archivePathIn returns the slash separated path of the file at path relative
// to dir, if it is located inside dir. Otherwise it returns an empty string.
func archivePathIn(path, dir string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("absolute archive path: %w", err)
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("absolute directory path: %w", err)
	}

	rel, err := filepath.Rel(absDir, absPath)
	if err != nil || !filepath.IsLocal(rel) {
		return "", nil //nolint:nilerr
	}

	return filepath.ToSlash(rel), nil
}
