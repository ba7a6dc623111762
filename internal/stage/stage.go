// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package stage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aibor/copylibs/internal/sys"
)

const dirPerm = 0o755

// Outcome is the result of staging a single library.
type Outcome int

const (
	// Copied means the library has been copied to the staging directory.
	Copied Outcome = iota
	// AlreadyPresent means a file existed at the destination already. Its
	// content is not checked.
	AlreadyPresent
)

func (o Outcome) String() string {
	switch o {
	case Copied:
		return "copied"
	case AlreadyPresent:
		return "already present"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Result is the outcome of staging a single library.
type Result struct {
	Library     sys.Library
	Destination string
	Outcome     Outcome
}

// Stage copies all libraries of the given [sys.Closure] into the lib
// directory of stagingDir. The directory is created if it does not exist.
// Libraries are not copied if a file with the same name exists already.
//
// A line is written to out for each library as soon as it is done. Staging
// stops at the first error. The results up to this point are returned along
// with the error.
func Stage(
	closure *sys.Closure,
	stagingDir string,
	out io.Writer,
) ([]Result, error) {
	libDir := filepath.Join(stagingDir, sys.StagingLibDir)

	err := os.MkdirAll(libDir, dirPerm)
	if err != nil {
		return nil, &sys.FilesystemError{Op: "mkdir", Path: libDir, Err: err}
	}

	results := make([]Result, 0, closure.Len())

	for lib := range closure.Libs() {
		result, err := stageLibrary(lib, libDir)
		if err != nil {
			return results, err
		}

		report(out, result)

		results = append(results, result)
	}

	return results, nil
}

func stageLibrary(lib sys.Library, libDir string) (Result, error) {
	result := Result{
		Library:     lib,
		Destination: filepath.Join(libDir, filepath.Base(lib.Path)),
	}

	_, err := os.Lstat(result.Destination)
	switch {
	case err == nil:
		result.Outcome = AlreadyPresent
		return result, nil
	case !errors.Is(err, fs.ErrNotExist):
		return result, &sys.FilesystemError{
			Op:   "stat",
			Path: result.Destination,
			Err:  err,
		}
	}

	err = copyFile(lib.Path, result.Destination)
	if err != nil {
		return result, err
	}

	result.Outcome = Copied

	return result, nil
}

func report(out io.Writer, result Result) {
	switch result.Outcome {
	case Copied:
		fmt.Fprintf(out, "%s → %s\n", result.Library.Path, result.Destination)
	case AlreadyPresent:
		fmt.Fprintf(out, "%s already exists\n", result.Destination)
		slog.Debug("Destination exists, not copied",
			slog.String("source", result.Library.Path),
			slog.String("destination", result.Destination),
		)
	}
}
