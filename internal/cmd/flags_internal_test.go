// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"bytes"
	"testing"

	"github.com/aibor/copylibs/internal/sys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name           string
		args           []string
		expectedFlags  *flags
		expectedErr    error
		expectedOutput string
	}{
		{
			name:           "help",
			args:           []string{"-help"},
			expectedErr:    ErrHelp,
			expectedOutput: "Usage of 'copylibs':",
		},
		{
			name: "version",
			args: []string{"-version"},
			expectedFlags: &flags{
				Version: true,
			},
		},
		{
			name:           "unknown flag",
			args:           []string{"-nope", "stage", "app"},
			expectedErr:    &ParseArgsError{},
			expectedOutput: "flag provided but not defined: -nope",
		},
		{
			name:           "no staging dir",
			args:           []string{},
			expectedErr:    &ParseArgsError{},
			expectedOutput: "no staging directory given",
		},
		{
			name:           "no binary",
			args:           []string{"stage"},
			expectedErr:    &ParseArgsError{},
			expectedOutput: "no binary given",
		},
		{
			name:           "empty staging dir",
			args:           []string{"", "app"},
			expectedErr:    sys.ErrEmptyPath,
			expectedOutput: "staging directory: path must not be empty",
		},
		{
			name: "single binary",
			args: []string{"stage", "app"},
			expectedFlags: &flags{
				StagingDir: sys.MustAbsolutePath("stage"),
				Binaries:   []string{sys.MustAbsolutePath("app")},
			},
		},
		{
			name: "all flags and multiple binaries",
			args: []string{
				"-debug",
				"-archive=out/libs.cpio",
				"/srv/stage",
				"/usr/bin/app",
				"bin/other",
			},
			expectedFlags: &flags{
				StagingDir:  "/srv/stage",
				ArchivePath: sys.MustAbsolutePath("out/libs.cpio"),
				Debug:       true,
				Binaries: []string{
					"/usr/bin/app",
					sys.MustAbsolutePath("bin/other"),
				},
			},
		},
		{
			name: "flags after positional args are binaries",
			args: []string{"stage", "app", "-debug"},
			expectedFlags: &flags{
				StagingDir: sys.MustAbsolutePath("stage"),
				Binaries: []string{
					sys.MustAbsolutePath("app"),
					sys.MustAbsolutePath("-debug"),
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var output bytes.Buffer

			actual, err := parseArgs(tt.args, &output)
			require.ErrorIs(t, err, tt.expectedErr)

			assert.Equal(t, tt.expectedFlags, actual)
			assert.Contains(t, output.String(), tt.expectedOutput)
		})
	}
}

func TestFilePath_Set(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    string
		expectedErr error
	}{
		{
			name:        "empty",
			expectedErr: sys.ErrEmptyPath,
		},
		{
			name:     "relative",
			input:    "path",
			expected: sys.MustAbsolutePath("path"),
		},
		{
			name:     "absolute",
			input:    "/some/path",
			expected: "/some/path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var path FilePath

			err := path.Set(tt.input)
			require.ErrorIs(t, err, tt.expectedErr)

			assert.Equal(t, tt.expected, path.String())
		})
	}
}
