// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package stage copies resolved shared objects into the lib directory of a
// staging directory.
package stage
