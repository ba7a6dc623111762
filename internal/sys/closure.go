// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sys

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"maps"
	"path/filepath"
	"slices"
	"strings"
)

// Library is a shared object file bound to the name it was required by.
type Library struct {
	Name string
	Path string
}

// Closure is a deduplicated collection of shared objects. Libraries are
// identified by their absolute path.
type Closure struct {
	libs map[string]Library
}

// NewClosure creates a [Closure] with the given libraries.
func NewClosure(libs ...Library) *Closure {
	closure := &Closure{
		libs: make(map[string]Library, len(libs)),
	}

	for _, lib := range libs {
		closure.add(lib)
	}

	return closure
}

// add adds the library. It returns false if a library with the same path is
// present already.
func (c *Closure) add(lib Library) bool {
	if _, exists := c.libs[lib.Path]; exists {
		return false
	}

	c.libs[lib.Path] = lib

	return true
}

// Len returns the number of libraries.
func (c *Closure) Len() int {
	return len(c.libs)
}

// Contains reports whether a library with the given absolute path is present.
func (c *Closure) Contains(path string) bool {
	_, exists := c.libs[path]
	return exists
}

// Libs returns an iterator that iterates all libraries sorted by path.
func (c *Closure) Libs() iter.Seq[Library] {
	return func(yield func(Library) bool) {
		for _, path := range slices.Sorted(maps.Keys(c.libs)) {
			if !yield(c.libs[path]) {
				return
			}
		}
	}
}

// Paths returns the paths of all libraries sorted.
func (c *Closure) Paths() []string {
	return slices.Sorted(maps.Keys(c.libs))
}

// ResolveClosure recursively resolves the shared objects required by all
// given binaries the way the dynamic linker would.
//
// For each binary the [DependencyRecord] is read with the given [Inspector]
// and its [SearchPath] is built with [BuildSearchPath]. Each required name is
// resolved with [FindLibrary] and the resolved library is resolved the same
// way, unless it has been inspected already. Each distinct file is inspected
// once at most, so cyclic dependencies terminate.
//
// The root binaries are not part of the returned [Closure] unless they are
// required by any of the binaries. If any required name can not be resolved,
// an [UnresolvedDependencyError] is returned and no [Closure].
func ResolveClosure(
	ctx context.Context,
	cfg Config,
	inspector Inspector,
	stagingDir string,
	roots ...string,
) (*Closure, error) {
	walk := &closureWalk{
		cfg:        cfg,
		inspector:  inspector,
		stagingDir: stagingDir,
		closure:    NewClosure(),
		visited:    make(map[string]struct{}),
	}

	for _, root := range roots {
		absPath, err := AbsolutePath(root)
		if err != nil {
			return nil, fmt.Errorf("[%s]: %w", root, err)
		}

		err = walk.collectLibsFor(ctx, absPath)
		if err != nil {
			return nil, fmt.Errorf("[%s]: %w", root, err)
		}
	}

	return walk.closure, nil
}

// closureWalk is the state of a single [ResolveClosure] run. The visited set
// is shared by all roots and all recursion levels. It is keyed by the path
// with all symbolic links resolved, so a file reachable via different
// directories, like /lib and /usr/lib on merged-/usr systems, is inspected
// once only.
type closureWalk struct {
	cfg        Config
	inspector  Inspector
	stagingDir string
	closure    *Closure
	visited    map[string]struct{}
}

func (w *closureWalk) collectLibsFor(ctx context.Context, binary string) error {
	key := realPath(binary)
	if _, visited := w.visited[key]; visited {
		return nil
	}

	w.visited[key] = struct{}{}

	record, err := w.inspector.Inspect(ctx, binary)
	if err != nil {
		return err //nolint:wrapcheck
	}

	searchPath, err := BuildSearchPath(w.cfg, record.SearchDirs, w.stagingDir)
	if err != nil {
		return fmt.Errorf("search path for %s: %w", binary, err)
	}

	// Resolve all names of this level first, so a missing library fails the
	// run before any deeper inspection is done.
	found := make([]string, 0, len(record.Needed))

	for _, name := range record.Needed {
		path, err := FindLibrary(name, searchPath)
		if err != nil {
			var unresolvedErr *UnresolvedDependencyError
			if errors.As(err, &unresolvedErr) {
				unresolvedErr.Binary = binary
			}

			return err
		}

		if w.closure.add(Library{Name: name, Path: path}) {
			slog.Debug("Resolved library",
				slog.String("name", name),
				slog.String("path", path),
				slog.String("required_by", binary),
			)
		}

		found = append(found, path)
	}

	for _, path := range found {
		err := w.collectLibsFor(ctx, path)
		if err != nil {
			return err
		}
	}

	return nil
}

// realPath returns path with all symbolic links resolved. If that fails, path
// is returned as is and the inspection reports the actual problem.
func realPath(path string) string {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return path
	}

	return resolved
}

// FindLibrary looks up the shared object with the given name in the
// directories of the given [SearchPath]. The first directory that contains a
// regular file with exactly that name wins. The absolute path of the file is
// returned.
//
// Names containing a slash are paths and are not looked up in the
// [SearchPath].
//
// It returns an [UnresolvedDependencyError] if the name is not found.
func FindLibrary(name string, searchPath SearchPath) (string, error) {
	if strings.Contains(name, "/") {
		if isRegularFile(name) {
			return AbsolutePath(name)
		}

		return "", &UnresolvedDependencyError{Name: name}
	}

	for _, dir := range searchPath {
		candidate := filepath.Join(dir, name)
		if isRegularFile(candidate) {
			return AbsolutePath(candidate)
		}
	}

	return "", &UnresolvedDependencyError{
		Name:       name,
		SearchPath: slices.Clone(searchPath),
	}
}
