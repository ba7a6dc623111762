// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package archive writes a staging directory into a single cpio archive
// (newc format) for redistribution.
package archive
