// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sys_test

import (
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/aibor/copylibs/internal/sys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjdump_Inspect(t *testing.T) {
	objdump := sys.Objdump{Executable: sys.FakeObjdump(t)}
	dir := t.TempDir()

	t.Run("origin substitution", func(t *testing.T) {
		binary := sys.WriteFakeBinary(t,
			filepath.Join(dir, "app", "bin", "app"),
			"$ORIGIN/../lib",
			"libA.so", "libB.so",
		)

		record, err := objdump.Inspect(t.Context(), binary)
		require.NoError(t, err)

		expected := sys.DependencyRecord{
			Needed:     []string{"libA.so", "libB.so"},
			SearchDirs: []string{filepath.Join(dir, "app", "bin") + "/../lib"},
		}
		assert.Equal(t, expected, record)
	})

	t.Run("relative path", func(t *testing.T) {
		t.Chdir(dir)

		sys.WriteFakeBinary(t, "rel/app", "$ORIGIN", "libA.so")

		record, err := objdump.Inspect(t.Context(), "rel/app")
		require.NoError(t, err)

		assert.Equal(t, []string{filepath.Join(dir, "rel")}, record.SearchDirs)
	})

	t.Run("no dependencies", func(t *testing.T) {
		binary := sys.WriteFakeBinary(t, filepath.Join(dir, "static"), "")

		record, err := objdump.Inspect(t.Context(), binary)
		require.NoError(t, err)

		assert.Empty(t, record.Needed)
		assert.Empty(t, record.SearchDirs)
	})

	t.Run("nonexistent file", func(t *testing.T) {
		var inspectErr *sys.InspectionError

		_, err := objdump.Inspect(t.Context(), filepath.Join(dir, "nope"))
		require.ErrorAs(t, err, &inspectErr)
		assert.Equal(t, filepath.Join(dir, "nope"), inspectErr.Path)
		assert.Contains(t, inspectErr.Stderr, "No such file")
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := objdump.Inspect(t.Context(), "")
		require.ErrorIs(t, err, &sys.InspectionError{})
		require.ErrorIs(t, err, sys.ErrEmptyPath)
	})
}

func TestObjdump_InspectToolFailures(t *testing.T) {
	binary := sys.WriteFakeBinary(t,
		filepath.Join(t.TempDir(), "app"), "", "libA.so")

	t.Run("tool not found", func(t *testing.T) {
		objdump := sys.Objdump{Executable: "/nonexistent/objdump"}

		_, err := objdump.Inspect(t.Context(), binary)
		require.ErrorIs(t, err, &sys.InspectionError{})
	})

	t.Run("garbled output", func(t *testing.T) {
		truePath, err := exec.LookPath("true")
		if err != nil {
			t.Skip("true not available")
		}

		objdump := sys.Objdump{Executable: truePath}

		_, err = objdump.Inspect(t.Context(), binary)
		require.ErrorIs(t, err, &sys.InspectionError{})
		require.ErrorIs(t, err, sys.ErrUnrecognizedOutput)
	})

	t.Run("default executable", func(t *testing.T) {
		t.Setenv("PATH", "")

		_, err := sys.Objdump{}.Inspect(t.Context(), binary)
		require.ErrorIs(t, err, exec.ErrNotFound)
	})
}
