// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package modmenu

import "testing"

type iconSet map[string]bool

func (s iconSet) IsRegistered(id string) bool { return s[id] }

func boolPtr(b bool) *bool { return &b }

func TestLoaderRawModules_SubModules(t *testing.T) {
	l := NewLoader("/admin/module/", iconSet{"module-icon-modmenu_web": true, "apps-pagetree": true})

	raw := l.RawModules([]LoadedModule{{
		Name:           "web",
		Script:         "/ignored",
		Title:          "LLL:mod.web.title",
		NavFrameScript: "/admin/pagetree",
		HasSubs:        true,
		Subs: []LoadedSubModule{
			{Name: "layout", Script: "/admin/layout", IconIdentifier: "apps-pagetree"},
			{Name: "list", NavFrameScriptParam: "id=1", NavigationComponentID: "typo3-pagetree"},
			{Name: "info", InheritNavigationComponentFromMainModule: boolPtr(false)},
			{Name: "func", NavFrameScript: "/admin/own", InheritNavigationComponentFromMainModule: boolPtr(true)},
		},
	}})

	if len(raw) != 1 {
		t.Fatalf("len(raw) = %d, want 1", len(raw))
	}
	web := raw[0]
	if web.Key != "modmenu_web" {
		t.Errorf("Key = %q, want %q", web.Key, "modmenu_web")
	}
	if web.Link != "" {
		t.Errorf("Link = %q, want empty for a module with sub-modules", web.Link)
	}
	if web.OnClick != "top.goToModule('web');" {
		t.Errorf("OnClick = %q", web.OnClick)
	}
	if web.Icon != "module-icon-modmenu_web" {
		t.Errorf("Icon = %q, want conventional identifier", web.Icon)
	}

	if len(web.SubItems) != 4 {
		t.Fatalf("len(SubItems) = %d, want 4", len(web.SubItems))
	}
	layout, list, info, fn := web.SubItems[0], web.SubItems[1], web.SubItems[2], web.SubItems[3]

	if layout.Name != "web_layout" || layout.Key != "web_layout" {
		t.Errorf("layout Name/Key = %q/%q", layout.Name, layout.Key)
	}
	if layout.Link != "/admin/layout" {
		t.Errorf("layout Link = %q, want declared script", layout.Link)
	}
	if layout.Icon != "apps-pagetree" {
		t.Errorf("layout Icon = %q", layout.Icon)
	}
	if list.Link != "/admin/module/web_list" {
		t.Errorf("list Link = %q, want module URL", list.Link)
	}
	if list.Icon != "module-icon-modmenu_web" {
		t.Errorf("list Icon = %q, want parent module icon", list.Icon)
	}
	if list.NavigationFrameScriptParam != "id=1" || list.NavigationComponentID != "typo3-pagetree" {
		t.Errorf("list navigation = %q/%q", list.NavigationFrameScriptParam, list.NavigationComponentID)
	}
	if list.ParentNavigationFrameScript != "/admin/pagetree" {
		t.Errorf("list ParentNavigationFrameScript = %q, want inherited", list.ParentNavigationFrameScript)
	}
	if info.ParentNavigationFrameScript != "" {
		t.Errorf("info ParentNavigationFrameScript = %q, want unset", info.ParentNavigationFrameScript)
	}
	if fn.NavigationFrameScript != "/admin/own" || fn.ParentNavigationFrameScript != "/admin/pagetree" {
		t.Errorf("func navigation = %q/%q", fn.NavigationFrameScript, fn.ParentNavigationFrameScript)
	}
}

func TestLoaderRawModules_NavigationFrameInheritance(t *testing.T) {
	l := NewLoader("/admin/module", nil)
	b := NewBuilder(nil, nil)

	tests := []struct {
		name    string
		inherit *bool
		want    string
	}{
		{"unset inherits", nil, "f"},
		{"true inherits", boolPtr(true), "f"},
		{"false disables", boolPtr(false), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := l.RawModules([]LoadedModule{{
				Name:           "web",
				NavFrameScript: "f",
				HasSubs:        true,
				Subs:           []LoadedSubModule{{Name: "list", InheritNavigationComponentFromMainModule: tt.inherit}},
			}})
			reg := b.Build(raw)

			child, ok := reg.FindByName("web_list")
			if !ok {
				t.Fatal("web_list not found")
			}
			if child.NavigationFrameTarget != tt.want {
				t.Errorf("NavigationFrameTarget = %q, want %q", child.NavigationFrameTarget, tt.want)
			}
		})
	}
}

func TestLoaderRawModules_StandaloneModule(t *testing.T) {
	l := NewLoader("/admin/module", nil)

	raw := l.RawModules([]LoadedModule{
		{Name: "help", Script: "/admin/help", Title: "Help"},
		{Name: "placeholder", Script: "/admin/module/dummy"},
		{Name: "empty", HasSubs: true},
	})

	if len(raw) != 3 {
		t.Fatalf("len(raw) = %d, want 3", len(raw))
	}

	help := raw[0]
	if help.Link != "/admin/help" {
		t.Errorf("help Link = %q", help.Link)
	}
	if len(help.SubItems) != 1 {
		t.Fatalf("help sub-items = %d, want 1", len(help.SubItems))
	}
	self := help.SubItems[0]
	if self.Name != "help" || self.Link != "/admin/help" || self.Title != "Help" {
		t.Errorf("self sub-item = %+v", self)
	}

	if len(raw[1].SubItems) != 0 {
		t.Errorf("dummy module got sub-items: %+v", raw[1].SubItems)
	}
	if raw[1].Link != "/admin/module/dummy" {
		t.Errorf("dummy Link = %q", raw[1].Link)
	}
	if len(raw[2].SubItems) != 0 || raw[2].Link != "" {
		t.Errorf("empty module = %+v", raw[2])
	}
}

func TestLoaderRawModules_UnregisteredIcon(t *testing.T) {
	l := NewLoader("/admin/module", iconSet{})

	raw := l.RawModules([]LoadedModule{{Name: "web", IconIdentifier: "missing", HasSubs: true}})
	if raw[0].Icon != "" {
		t.Errorf("Icon = %q, want empty", raw[0].Icon)
	}
}

func TestQuoteJS(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"web", `'web'`},
		{"it's", `'it\'s'`},
		{`a"b`, `'a"b'`},
		{"</script>", `'\x3C/script>'`},
		{`back\slash`, `'back\\slash'`},
	}

	for _, tt := range tests {
		if got := quoteJS(tt.in); got != tt.want {
			t.Errorf("quoteJS(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
