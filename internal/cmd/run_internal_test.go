// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"bytes"
	"flag"
	"log/slog"
	"testing"

	"github.com/aibor/copylibs/internal/sys"
	"github.com/stretchr/testify/assert"
)

func TestHandleRunError(t *testing.T) {
	tests := []struct {
		name             string
		err              error
		expectedExitCode int
		expectedOutput   string
	}{
		{
			name: "no error",
		},
		{
			name: "unresolved dependency",
			err: &sys.UnresolvedDependencyError{
				Name:       "libMissing.so",
				Binary:     "/bin/app",
				SearchPath: []string{"/lib"},
			},
			expectedExitCode: 1,
			expectedOutput: `level=ERROR msg="could not find libMissing.so ` +
				`required by /bin/app in [/lib]"`,
		},
		{
			name: "inspection error",
			err: &sys.InspectionError{
				Path: "/bin/app",
				Err:  sys.ErrUnrecognizedOutput,
			},
			expectedExitCode: 1,
			expectedOutput: `level=ERROR msg="inspect /bin/app: ` +
				`unrecognized inspection tool output"`,
		},
		{
			name:             "any error",
			err:              assert.AnError,
			expectedExitCode: 1,
			expectedOutput: `level=ERROR ` +
				`msg="assert.AnError general error for testing"`,
		},
	}

	defaultLogger := slog.Default()
	t.Cleanup(func() { slog.SetDefault(defaultLogger) })

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdErr bytes.Buffer

			setupLogging(&stdErr, false)

			actualExitCode := handleRunError(tt.err)

			assert.Equal(t, tt.expectedExitCode, actualExitCode,
				"exit code should be as expected")

			if tt.expectedOutput == "" {
				assert.Empty(t, stdErr.String(), "stderr should be empty")
			} else {
				assert.Contains(t, stdErr.String(), tt.expectedOutput,
					"stderr output should be as expected")
			}
		})
	}
}

func TestHandleParseArgsError(t *testing.T) {
	assert.Equal(t, 0, handleParseArgsError(flag.ErrHelp))
	assert.Equal(t, 2, handleParseArgsError(&ParseArgsError{}))
}
