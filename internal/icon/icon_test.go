// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package icon

import (
	"strings"
	"testing"
)

func TestRegister_Validation(t *testing.T) {
	r := NewRegistry()

	if err := r.Register("", Definition{Source: "/a.svg"}); err == nil {
		t.Error("expected error for empty identifier")
	}
	if err := r.Register("module-icon-web", Definition{}); err == nil {
		t.Error("expected error for empty definition")
	}
	if err := r.Register("module-icon-web", Definition{Source: "/icons/web.svg"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if !r.IsRegistered("module-icon-web") {
		t.Error("module-icon-web not registered")
	}
	if r.IsRegistered("module-icon-file") {
		t.Error("module-icon-file should not be registered")
	}
}

func TestRender(t *testing.T) {
	r := NewRegistry()
	_ = r.Register("module-icon-web", Definition{Source: `/icons/web.svg?a=1&b="2"`})
	_ = r.Register("inline", Definition{Markup: `<svg viewBox="0 0 16 16"></svg>`})

	got := r.Render("module-icon-web", SizeSmall)
	if !strings.Contains(got, `icon-size-small`) {
		t.Errorf("Render missing size class: %s", got)
	}
	if !strings.Contains(got, `data-identifier="module-icon-web"`) {
		t.Errorf("Render missing identifier: %s", got)
	}
	if !strings.Contains(got, `src="/icons/web.svg?a=1&amp;b=&#34;2&#34;"`) {
		t.Errorf("Render did not escape source: %s", got)
	}

	inline := r.Render("inline", "")
	if !strings.Contains(inline, `<svg viewBox="0 0 16 16"></svg>`) || !strings.Contains(inline, "icon-size-default") {
		t.Errorf("inline Render = %s", inline)
	}

	if got := r.Render("unknown", SizeSmall); got != "" {
		t.Errorf("Render(unknown) = %q, want empty", got)
	}
}
