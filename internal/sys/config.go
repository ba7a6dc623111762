// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sys

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Environment variables consumed by [ConfigFromEnv].
const (
	EnvObjdump     = "OBJDUMP"
	EnvSysroot     = "SYSROOT"
	EnvLibraryPath = "LIBRARY_PATH"
)

// Defaults used if the respective environment variable is empty.
const (
	DefaultObjdump = "objdump"
	DefaultSysroot = "/"
)

// Config is the environment derived configuration of a resolution run. It is
// captured once at the start of a run and passed by value.
type Config struct {
	// Objdump is the name or path of the inspection tool.
	Objdump string

	// Sysroot is the root prefix the library configuration files are read
	// from and the directories found in them are re-rooted under.
	Sysroot string

	// LibraryPath is a list of additional search directories that take
	// precedence over the system wide configuration.
	LibraryPath []string

	// Fsys is the file system the library configuration files are read from.
	// If nil, the file system rooted at Sysroot is used.
	Fsys fs.FS
}

// ConfigFromEnv creates a [Config] from the environment variables
// [EnvObjdump], [EnvSysroot] and [EnvLibraryPath] as returned by getenv.
func ConfigFromEnv(getenv func(string) string) Config {
	cfg := Config{
		Objdump: getenv(EnvObjdump),
		Sysroot: getenv(EnvSysroot),
	}

	if cfg.Objdump == "" {
		cfg.Objdump = DefaultObjdump
	}

	if cfg.Sysroot == "" {
		cfg.Sysroot = DefaultSysroot
	}

	cfg.Sysroot = filepath.Clean(cfg.Sysroot)

	for dir := range strings.SplitSeq(getenv(EnvLibraryPath), ":") {
		if dir != "" {
			cfg.LibraryPath = append(cfg.LibraryPath, dir)
		}
	}

	return cfg
}

func (c Config) sysrootFS() fs.FS {
	if c.Fsys != nil {
		return c.Fsys
	}

	return os.DirFS(c.Sysroot)
}
