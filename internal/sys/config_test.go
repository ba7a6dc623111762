// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sys_test

import (
	"testing"

	"github.com/aibor/copylibs/internal/sys"
	"github.com/stretchr/testify/assert"
)

func TestConfigFromEnv(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		expected sys.Config
	}{
		{
			name: "defaults",
			expected: sys.Config{
				Objdump: "objdump",
				Sysroot: "/",
			},
		},
		{
			name: "all set",
			env: map[string]string{
				"OBJDUMP":      "/usr/bin/aarch64-linux-gnu-objdump",
				"SYSROOT":      "/srv/sysroot/",
				"LIBRARY_PATH": "/opt/lib:/usr/local/lib",
			},
			expected: sys.Config{
				Objdump:     "/usr/bin/aarch64-linux-gnu-objdump",
				Sysroot:     "/srv/sysroot",
				LibraryPath: []string{"/opt/lib", "/usr/local/lib"},
			},
		},
		{
			name: "empty library path entries",
			env: map[string]string{
				"LIBRARY_PATH": ":/opt/lib::/usr/local/lib:",
			},
			expected: sys.Config{
				Objdump:     "objdump",
				Sysroot:     "/",
				LibraryPath: []string{"/opt/lib", "/usr/local/lib"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			getenv := func(key string) string {
				return tt.env[key]
			}

			assert.Equal(t, tt.expected, sys.ConfigFromEnv(getenv))
		})
	}
}
