// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sys

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Present in the header of every "objdump -p" output:
// "path/to/file:     file format elf64-x86-64".
const fileFormatMarker = "file format"

var dynamicEntryPattern = regexp.MustCompile(
	`^\s*(NEEDED|RUNPATH|RPATH)\s*(\S*)\s*$`,
)

// DependencyRecord is the dynamic linking information of a single binary.
type DependencyRecord struct {
	// Needed are the names of the required shared objects in the order they
	// are declared. Duplicates are preserved.
	Needed []string

	// SearchDirs are the directories of the binary's runtime search path
	// with $ORIGIN already substituted.
	SearchDirs []string
}

// Inspector reads the [DependencyRecord] of the binary at the given path.
type Inspector interface {
	Inspect(ctx context.Context, path string) (DependencyRecord, error)
}

// Objdump is an [Inspector] that invokes "objdump -p" and parses its dynamic
// section output.
type Objdump struct {
	// Executable is the name or path of the objdump binary. Defaults to
	// [DefaultObjdump].
	Executable string
}

// Inspect runs objdump for the binary with the given path and returns the
// parsed [DependencyRecord].
//
// It returns an [InspectionError] in case objdump is not available, returned
// with a non-zero exit code or its output is not usable.
func (o Objdump) Inspect(
	ctx context.Context,
	path string,
) (DependencyRecord, error) {
	absPath, err := AbsolutePath(path)
	if err != nil {
		return DependencyRecord{}, &InspectionError{Path: path, Err: err}
	}

	var info objdumpInfo

	stderr, err := runObjdump(ctx, o.executable(), absPath, info.parseFrom)
	if err != nil {
		return DependencyRecord{}, &InspectionError{
			Path:   absPath,
			Err:    err,
			Stderr: stderr,
		}
	}

	if !info.formatSeen {
		return DependencyRecord{}, &InspectionError{
			Path:   absPath,
			Err:    ErrUnrecognizedOutput,
			Stderr: stderr,
		}
	}

	return info.record(filepath.Dir(absPath)), nil
}

func (o Objdump) executable() string {
	if o.Executable == "" {
		return DefaultObjdump
	}

	return o.Executable
}

// runObjdump runs objdump and passes its stdout to parse while it is running.
// Stderr is collected and returned.
func runObjdump(
	ctx context.Context,
	executable string,
	path string,
	parse func(io.Reader) error,
) (string, error) {
	var stderrBuf bytes.Buffer

	cmd := exec.CommandContext(ctx, executable, "-p", path)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return "", fmt.Errorf("stdout pipe: %w", err)
	}

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return "", fmt.Errorf("stderr pipe: %w", err)
	}

	err = cmd.Start()
	if err != nil {
		return "", fmt.Errorf("start: %w", err)
	}

	// Both pipes must be read to the end before calling Wait.
	pipesGroup := errgroup.Group{}

	pipesGroup.Go(func() error {
		err := parse(stdout)
		// Keep draining, so the process does not block on a full pipe.
		_, _ = io.Copy(io.Discard, stdout)

		return err
	})

	pipesGroup.Go(func() error {
		_, err := io.Copy(&stderrBuf, stderr)
		return err
	})

	pipesErr := pipesGroup.Wait()

	err = cmd.Wait()
	if err != nil {
		return stderrBuf.String(), fmt.Errorf("wait: %w", err)
	}

	if pipesErr != nil {
		return stderrBuf.String(), fmt.Errorf("read output: %w", pipesErr)
	}

	return stderrBuf.String(), nil
}

// objdumpInfo is the relevant content of an "objdump -p" output.
type objdumpInfo struct {
	formatSeen bool
	needed     []string
	runpath    string
	hasRunpath bool
	rpath      string
	hasRpath   bool
}

// parseFrom takes objdump output and processes it line by line.
func (i *objdumpInfo) parseFrom(output io.Reader) error {
	scanner := bufio.NewScanner(output)
	for scanner.Scan() {
		i.parseLine(scanner.Text())
	}

	err := scanner.Err()
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	return nil
}

// parseLine processes a single line of output. Lines that are neither the
// file format header nor one of the relevant dynamic section entries are
// ignored.
//
// Dynamic section entries look like this:
//
//	NEEDED               libc.so.6
//	RUNPATH              $ORIGIN/../lib:/opt/lib
func (i *objdumpInfo) parseLine(line string) {
	if strings.Contains(line, fileFormatMarker) {
		i.formatSeen = true
		return
	}

	match := dynamicEntryPattern.FindStringSubmatch(line)
	if match == nil {
		return
	}

	key, value := match[1], match[2]

	// Only the last occurrence of RUNPATH and RPATH is effective.
	switch key {
	case "NEEDED":
		if value != "" {
			i.needed = append(i.needed, value)
		}
	case "RUNPATH":
		i.runpath, i.hasRunpath = value, true
	case "RPATH":
		i.rpath, i.hasRpath = value, true
	}
}

// record creates the [DependencyRecord] for a binary located in the given
// origin directory.
//
// RPATH is only used if there is no RUNPATH, as the dynamic linker ignores
// RPATH in this case.
func (i *objdumpInfo) record(origin string) DependencyRecord {
	record := DependencyRecord{
		Needed: i.needed,
	}

	var searchPath string

	switch {
	case i.hasRunpath:
		searchPath = i.runpath
	case i.hasRpath:
		searchPath = i.rpath
	}

	record.SearchDirs = expandSearchDirs(searchPath, origin)

	return record
}

// expandSearchDirs splits a colon separated runtime search path and replaces
// the $ORIGIN placeholder in each entry with the given origin directory.
func expandSearchDirs(searchPath, origin string) []string {
	var dirs []string

	origins := strings.NewReplacer("${ORIGIN}", origin, "$ORIGIN", origin)

	for dir := range strings.SplitSeq(searchPath, ":") {
		if dir == "" {
			continue
		}

		dirs = append(dirs, origins.Replace(dir))
	}

	return dirs
}
