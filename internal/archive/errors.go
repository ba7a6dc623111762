// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package archive

import "errors"

// ErrNotRegularFile is returned if a regular file is expected but something
// else is given.
var ErrNotRegularFile = errors.New("not a regular file")
