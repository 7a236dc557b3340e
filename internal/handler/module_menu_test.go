// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/ocms-modmenu/internal/i18n"
	"github.com/olegiv/ocms-modmenu/internal/icon"
	"github.com/olegiv/ocms-modmenu/internal/modmenu"
	"github.com/olegiv/ocms-modmenu/internal/service"
	"github.com/olegiv/ocms-modmenu/internal/store"
)

type menuResponse struct {
	Success  bool       `json:"success"`
	Error    string     `json:"error"`
	Modules  []MenuItem `json:"modules"`
	Module   *MenuItem  `json:"module"`
	Settings *store.HideRuleSettings
}

// newTestRouter wires the handler to a real service and a temporary database.
func newTestRouter(t *testing.T) (http.Handler, *store.Queries) {
	t.Helper()
	return newTestRouterLang(t, "en")
}

func newTestRouterLang(t *testing.T, defaultLang string) (http.Handler, *store.Queries) {
	t.Helper()

	if err := i18n.Init(nil); err != nil {
		t.Fatalf("i18n.Init: %v", err)
	}

	db, err := store.NewDB(filepath.Join(t.TempDir(), "handler-test.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := store.Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	queries := store.New(db)

	icons := icon.NewRegistry()
	if err := icons.Register("module-icon-modmenu_web", icon.Definition{Source: "/icons/web.svg"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	modules := []modmenu.LoadedModule{
		{Name: "web", Title: "LLL:mod.web.title", HasSubs: true, Subs: []modmenu.LoadedSubModule{
			{Name: "list", Title: "LLL:mod.web_list.title"},
			{Name: "info", Title: "LLL:mod.web_info.title"},
		}},
		{Name: "empty", HasSubs: true},
		{Name: "help", Title: "LLL:mod.help.title", Script: "/admin/help"},
	}
	extensions := []modmenu.Extension{{
		Key:       "web_info",
		Functions: []modmenu.RawModule{{Name: "web_info_overview", Title: "LLL:mod.web_info.overview"}},
	}}

	svc := service.NewModuleMenuService(modules, extensions, modmenu.NewLoader("/admin/module", icons), queries, nil)
	h := NewModuleMenuHandler(svc, queries, icons, defaultLang)

	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r, queries
}

func do(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, menuResponse) {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var resp menuResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response %q: %v", w.Body.String(), err)
	}
	return w, resp
}

func TestModuleMenuHandler_List(t *testing.T) {
	router, _ := newTestRouter(t)

	w, resp := do(t, router, http.MethodGet, "/admin/users/1/modules", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if !resp.Success {
		t.Errorf("success = false")
	}
	if len(resp.Modules) != 3 {
		t.Fatalf("len(modules) = %d, want 3", len(resp.Modules))
	}

	web := resp.Modules[0]
	if web.Title != "Web" {
		t.Errorf("web title = %q, want %q", web.Title, "Web")
	}
	if !strings.Contains(web.IconHTML, `data-identifier="module-icon-modmenu_web"`) {
		t.Errorf("web iconHtml = %q", web.IconHTML)
	}
	if len(web.Children) != 2 || len(web.Children[1].Children) != 1 {
		t.Fatalf("web children = %+v", web.Children)
	}
	if web.Children[1].Children[0].Name != "web_info_overview" {
		t.Errorf("extension entry = %q", web.Children[1].Children[0].Name)
	}
}

func TestModuleMenuHandler_ListExcluding(t *testing.T) {
	router, _ := newTestRouter(t)

	_, resp := do(t, router, http.MethodGet, "/admin/users/1/modules?exclude=help", "")
	if len(resp.Modules) != 1 || resp.Modules[0].Name != "web" {
		t.Errorf("modules = %+v, want only web", resp.Modules)
	}
}

func TestModuleMenuHandler_ListLanguage(t *testing.T) {
	router, _ := newTestRouter(t)

	_, resp := do(t, router, http.MethodGet, "/admin/users/1/modules?lang=ru", "")
	if len(resp.Modules) == 0 || resp.Modules[0].Title != "Сайт" {
		t.Errorf("modules = %+v, want Russian titles", resp.Modules)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/users/1/modules", nil)
	req.Header.Set("Accept-Language", "ru-RU, en;q=0.8")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if !strings.Contains(w.Body.String(), "Справка") {
		t.Errorf("Accept-Language not honoured: %s", w.Body.String())
	}
}

func TestModuleMenuHandler_DefaultLanguage(t *testing.T) {
	router, _ := newTestRouterLang(t, "ru")

	_, resp := do(t, router, http.MethodGet, "/admin/users/1/modules", "")
	if len(resp.Modules) == 0 || resp.Modules[0].Title != "Сайт" {
		t.Errorf("modules = %+v, want Russian titles from the default language", resp.Modules)
	}

	_, resp = do(t, router, http.MethodGet, "/admin/users/1/modules?lang=en", "")
	if len(resp.Modules) == 0 || resp.Modules[0].Title != "Web" {
		t.Errorf("modules = %+v, want lang=en to override the default", resp.Modules)
	}

	_, resp = do(t, router, http.MethodGet, "/admin/users/abc/modules", "")
	if resp.Error != "Неверный ID пользователя" {
		t.Errorf("error = %q, want the Russian message", resp.Error)
	}
}

func TestNewModuleMenuHandler_UnsupportedDefault(t *testing.T) {
	if err := i18n.Init(nil); err != nil {
		t.Fatalf("i18n.Init: %v", err)
	}
	h := NewModuleMenuHandler(failingMenus{}, nil, nil, "xx")
	if h.defaultLang != "en" {
		t.Errorf("defaultLang = %q, want %q", h.defaultLang, "en")
	}
}

func TestModuleMenuHandler_Get(t *testing.T) {
	router, _ := newTestRouter(t)

	w, resp := do(t, router, http.MethodGet, "/admin/users/1/modules/web_info_overview", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if resp.Module == nil || resp.Module.Title != "Page tree overview" {
		t.Errorf("module = %+v", resp.Module)
	}

	w, resp = do(t, router, http.MethodGet, "/admin/users/1/modules/nothing", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
	if resp.Success || resp.Error != "Module not found" {
		t.Errorf("response = %+v", resp)
	}
}

func TestModuleMenuHandler_InvalidUser(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, target := range []string{
		"/admin/users/abc/modules",
		"/admin/users/0/modules/web",
		"/admin/users/-1/hidden-modules",
	} {
		w, resp := do(t, router, http.MethodGet, target, "")
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want %d", target, w.Code, http.StatusBadRequest)
		}
		if resp.Error != "Invalid user ID" {
			t.Errorf("%s: error = %q", target, resp.Error)
		}
	}
}

func TestModuleMenuHandler_HiddenModules(t *testing.T) {
	router, queries := newTestRouter(t)

	body := `{"hideModules": "help", "subModules": {"web": "list"}}`
	w, resp := do(t, router, http.MethodPut, "/admin/users/3/hidden-modules", body)
	if w.Code != http.StatusOK {
		t.Fatalf("PUT status = %d, body %s", w.Code, w.Body.String())
	}
	if !resp.Success {
		t.Error("PUT success = false")
	}

	settings, err := queries.HideRules(context.Background(), 3)
	if err != nil {
		t.Fatalf("HideRules: %v", err)
	}
	if settings.HideModules != "help" || settings.SubModules["web"] != "list" {
		t.Errorf("stored settings = %+v", settings)
	}

	_, resp = do(t, router, http.MethodGet, "/admin/users/3/hidden-modules", "")
	if resp.Settings == nil || resp.Settings.HideModules != "help" {
		t.Errorf("GET settings = %+v", resp.Settings)
	}

	_, resp = do(t, router, http.MethodGet, "/admin/users/3/modules", "")
	if len(resp.Modules) != 2 {
		t.Fatalf("modules after hiding = %+v", resp.Modules)
	}
	web := resp.Modules[0]
	if len(web.Children) != 1 || web.Children[0].Name != "web_info" {
		t.Errorf("web children after hiding = %+v", web.Children)
	}
}

func TestModuleMenuHandler_UpdateHiddenInvalidBody(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, body := range []string{`{"hideModules": 5}`, `{"unknown": true}`, `not json`} {
		w, resp := do(t, router, http.MethodPut, "/admin/users/1/hidden-modules", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want %d", body, w.Code, http.StatusBadRequest)
		}
		if resp.Success {
			t.Errorf("body %s: success = true", body)
		}
	}
}

type failingMenus struct{}

func (failingMenus) ForUser(context.Context, int64, string) (*modmenu.Registry, error) {
	return nil, errors.New("configuration unavailable")
}

func TestModuleMenuHandler_BuildError(t *testing.T) {
	h := NewModuleMenuHandler(failingMenus{}, nil, nil, "en")
	r := chi.NewRouter()
	h.RegisterRoutes(r)

	w, resp := do(t, r, http.MethodGet, "/admin/users/1/modules", "")
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
	if resp.Success {
		t.Error("success = true")
	}
}
