// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/olegiv/ocms-modmenu/internal/modmenu"
)

// dumpMenu writes the menu tree as an indented outline.
func dumpMenu(w io.Writer, reg *modmenu.Registry) error {
	var err error
	reg.Walk(func(e *modmenu.Entry, depth int) bool {
		if err != nil {
			return false
		}
		line := strings.Repeat("  ", depth) + e.Name
		if e.Title != "" {
			line += " - " + e.Title
		}
		if e.Link != "" {
			line += " [" + e.Link + "]"
		}
		_, err = fmt.Fprintln(w, line)
		return true
	})
	return err
}
