// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sys

import (
	"errors"
	"io/fs"
	"path"
	"path/filepath"
	"slices"
	"strings"
)

// Locations relative to the sysroot.
const (
	ldSoConf      = "etc/ld.so.conf"
	ldSoConfDir   = "etc/ld.so.conf.d"
	defaultLibDir = "lib"
)

// StagingLibDir is the directory relative to the staging directory the
// libraries are copied to.
const StagingLibDir = "lib"

// SearchPath is an ordered list of directories shared objects are looked up
// in. Earlier directories take precedence.
type SearchPath []string

// BuildSearchPath assembles the [SearchPath] for a binary with the given
// runtime search directories. In order of precedence it consists of:
//
//   - the binary's own runtime search directories
//   - the directories of [Config.LibraryPath]
//   - the directories listed in the sysroot's /etc/ld.so.conf
//   - the directories listed in files in the sysroot's /etc/ld.so.conf.d
//   - the sysroot's /lib directory, unless already present
//   - the lib directory of the staging directory
//
// Include directives in ld.so.conf are not followed. Directories are not
// de-duplicated.
func BuildSearchPath(
	cfg Config,
	searchDirs []string,
	stagingDir string,
) (SearchPath, error) {
	fsys := cfg.sysrootFS()

	searchPath := slices.Clone(SearchPath(searchDirs))
	searchPath = append(searchPath, cfg.LibraryPath...)

	confDirs, err := readLdSoConf(fsys, ldSoConf, cfg.Sysroot)
	if err != nil {
		return nil, err
	}

	searchPath = append(searchPath, confDirs...)

	fragmentDirs, err := readLdSoConfDir(fsys, ldSoConfDir, cfg.Sysroot)
	if err != nil {
		return nil, err
	}

	searchPath = append(searchPath, fragmentDirs...)

	libDir := filepath.Join(cfg.Sysroot, defaultLibDir)
	if !searchPath.contains(libDir) {
		searchPath = append(searchPath, libDir)
	}

	searchPath = append(searchPath, filepath.Join(stagingDir, StagingLibDir))

	return searchPath, nil
}

func (s SearchPath) contains(dir string) bool {
	return slices.ContainsFunc(s, func(entry string) bool {
		return filepath.Clean(entry) == dir
	})
}

// readLdSoConfDir parses all regular files in the given directory with
// [readLdSoConf]. A missing directory results in an empty list.
func readLdSoConfDir(fsys fs.FS, dir, sysroot string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		return nil, &FilesystemError{
			Op:   "read dir",
			Path: filepath.Join(sysroot, dir),
			Err:  err,
		}
	}

	var dirs []string

	for _, entry := range entries {
		name := path.Join(dir, entry.Name())

		// Stat follows symbolic links, so linked files are read as well.
		info, err := fs.Stat(fsys, name)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}

		fileDirs, err := readLdSoConf(fsys, name, sysroot)
		if err != nil {
			return nil, err
		}

		dirs = append(dirs, fileDirs...)
	}

	return dirs, nil
}

// readLdSoConf reads the ld.so.conf formatted file with the given name. Each
// line that starts with a "/" is a directory that is returned prefixed with
// the sysroot. Everything else, like include directives, is ignored. A
// missing file results in an empty list.
func readLdSoConf(fsys fs.FS, name, sysroot string) ([]string, error) {
	content, err := fs.ReadFile(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		return nil, &FilesystemError{
			Op:   "read",
			Path: filepath.Join(sysroot, name),
			Err:  err,
		}
	}

	var dirs []string

	for line := range strings.Lines(string(content)) {
		if !strings.HasPrefix(line, "/") {
			continue
		}

		line, _, _ = strings.Cut(line, "#")

		dirs = append(dirs, filepath.Join(sysroot, strings.TrimSpace(line)))
	}

	return dirs, nil
}
