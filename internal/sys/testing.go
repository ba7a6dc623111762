// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sys

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fakeObjdumpScript mimics "objdump -p" for text files. It prints the file
// format header followed by the file's content, so test binaries are plain
// text files containing the dynamic section lines to report.
const fakeObjdumpScript = `#!/bin/sh
if [ "$1" != "-p" ] || [ $# -ne 2 ]; then
	echo "usage: $0 -p file" >&2
	exit 2
fi
if [ ! -f "$2" ]; then
	echo "objdump: '$2': No such file" >&2
	exit 1
fi
printf '\n%s:     file format elf64-x86-64\n\n' "$2"
echo "Dynamic Section:"
cat "$2"
`

// FakeObjdump writes an executable script to a temporary directory that
// behaves like objdump for files written with [WriteFakeBinary]. It returns
// the path to the script.
func FakeObjdump(tb testing.TB) string {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "objdump")

	//nolint:gosec
	err := os.WriteFile(path, []byte(fakeObjdumpScript), 0o755)
	if err != nil {
		tb.Fatalf("failed to write fake objdump: %v", err)
	}

	return path
}

// WriteFakeBinary writes a file at path that the script returned by
// [FakeObjdump] reports as requiring the given shared objects. If runpath is
// not empty, a RUNPATH entry is added as well. Missing parent directories are
// created. It returns the absolute path of the file.
func WriteFakeBinary(
	tb testing.TB,
	path string,
	runpath string,
	needed ...string,
) string {
	tb.Helper()

	var content strings.Builder

	for _, name := range needed {
		fmt.Fprintf(&content, "  NEEDED               %s\n", name)
	}

	if runpath != "" {
		fmt.Fprintf(&content, "  RUNPATH              %s\n", runpath)
	}

	err := os.MkdirAll(filepath.Dir(path), 0o755)
	if err != nil {
		tb.Fatalf("failed to create dir for %s: %v", path, err)
	}

	//nolint:gosec
	err = os.WriteFile(path, []byte(content.String()), 0o644)
	if err != nil {
		tb.Fatalf("failed to write fake binary %s: %v", path, err)
	}

	return MustAbsPath(tb, path)
}

func MustAbsPath(tb testing.TB, path string) string {
	tb.Helper()

	abs, err := filepath.Abs(path)
	if err != nil {
		tb.Fatalf("failed to get absolute path %s: %v", path, err)
	}

	return abs
}
