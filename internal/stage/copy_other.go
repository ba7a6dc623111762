// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

//go:build !linux

package stage

import (
	"fmt"
	"io"
	"os"
)

func copyContent(dst, src *os.File) error {
	_, err := io.Copy(dst, src)
	if err != nil {
		return fmt.Errorf("copy: %w", err)
	}

	return nil
}
