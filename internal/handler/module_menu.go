// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides HTTP handlers for the admin module menu.
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/ocms-modmenu/internal/i18n"
	"github.com/olegiv/ocms-modmenu/internal/icon"
	"github.com/olegiv/ocms-modmenu/internal/modmenu"
	"github.com/olegiv/ocms-modmenu/internal/store"
)

// Routes
const (
	RouteUserModules      = "/admin/users/{userID}/modules"
	RouteUserModuleByName = "/admin/users/{userID}/modules/{name}"
	RouteUserHiddenModule = "/admin/users/{userID}/hidden-modules"
)

// maxSettingsBody caps the size of a hide rules update.
const maxSettingsBody = 64 << 10

// MenuBuilder builds the module menu of a user.
type MenuBuilder interface {
	ForUser(ctx context.Context, userID int64, lang string) (*modmenu.Registry, error)
}

// HideRuleStore reads and writes stored hide settings.
type HideRuleStore interface {
	HideRules(ctx context.Context, userID int64) (store.HideRuleSettings, error)
	SaveHideRules(ctx context.Context, userID int64, settings store.HideRuleSettings) error
}

// ModuleMenuHandler serves the module menu of admin users.
type ModuleMenuHandler struct {
	menus       MenuBuilder
	rules       HideRuleStore
	icons       *icon.Registry
	defaultLang string
}

// NewModuleMenuHandler creates a new ModuleMenuHandler. defaultLang is used
// for requests that name no language; an unsupported value falls back to the
// catalog default.
func NewModuleMenuHandler(menus MenuBuilder, rules HideRuleStore, icons *icon.Registry, defaultLang string) *ModuleMenuHandler {
	if !i18n.IsSupported(defaultLang) {
		defaultLang = i18n.MatchLanguage("")
	}
	return &ModuleMenuHandler{
		menus:       menus,
		rules:       rules,
		icons:       icons,
		defaultLang: strings.ToLower(defaultLang),
	}
}

// RegisterRoutes mounts the handler routes on r.
func (h *ModuleMenuHandler) RegisterRoutes(r chi.Router) {
	r.Get(RouteUserModules, h.List)
	r.Get(RouteUserModuleByName, h.Get)
	r.Get(RouteUserHiddenModule, h.GetHidden)
	r.Put(RouteUserHiddenModule, h.UpdateHidden)
	r.Post(RouteUserHiddenModule, h.UpdateHidden) // HTML forms can't send PUT
}

// MenuItem is the JSON form of a menu entry with its rendered icon.
type MenuItem struct {
	Name                       string     `json:"name"`
	Title                      string     `json:"title,omitempty"`
	Link                       string     `json:"link,omitempty"`
	OnClick                    string     `json:"onclick,omitempty"`
	Description                string     `json:"description,omitempty"`
	Icon                       string     `json:"icon,omitempty"`
	IconHTML                   string     `json:"iconHtml,omitempty"`
	NavigationFrameScript      string     `json:"navigationFrameScript,omitempty"`
	NavigationFrameScriptParam string     `json:"navigationFrameScriptParam,omitempty"`
	NavigationComponentID      string     `json:"navigationComponentId,omitempty"`
	Children                   []MenuItem `json:"children,omitempty"`
}

// List handles GET /admin/users/{userID}/modules.
// Query parameters: exclude (comma-separated group names), lang.
func (h *ModuleMenuHandler) List(w http.ResponseWriter, r *http.Request) {
	reg, ok := h.registry(w, r)
	if !ok {
		return
	}

	var excluded []string
	for _, name := range strings.Split(r.URL.Query().Get("exclude"), ",") {
		if name = strings.TrimSpace(name); name != "" {
			excluded = append(excluded, name)
		}
	}

	entries := reg.EntriesExcluding(excluded...)
	items := make([]MenuItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, h.menuItem(e))
	}

	writeJSONSuccess(w, map[string]any{"modules": items})
}

// Get handles GET /admin/users/{userID}/modules/{name}.
func (h *ModuleMenuHandler) Get(w http.ResponseWriter, r *http.Request) {
	reg, ok := h.registry(w, r)
	if !ok {
		return
	}

	name := chi.URLParam(r, "name")
	entry, found := reg.FindByName(name)
	if !found {
		writeJSONError(w, http.StatusNotFound, i18n.T(h.requestLang(r), "menu.error.not_found"))
		return
	}

	writeJSONSuccess(w, map[string]any{"module": h.menuItem(entry)})
}

// GetHidden handles GET /admin/users/{userID}/hidden-modules.
func (h *ModuleMenuHandler) GetHidden(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.parseUserID(w, r)
	if !ok {
		return
	}

	settings, err := h.rules.HideRules(r.Context(), userID)
	if err != nil {
		logAndJSONError(w, "failed to load hide rules", "user_id", userID, "error", err)
		return
	}

	writeJSONSuccess(w, map[string]any{"settings": settings})
}

// UpdateHidden handles PUT /admin/users/{userID}/hidden-modules.
func (h *ModuleMenuHandler) UpdateHidden(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.parseUserID(w, r)
	if !ok {
		return
	}

	var settings store.HideRuleSettings
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSettingsBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&settings); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.rules.SaveHideRules(r.Context(), userID, settings); err != nil {
		logAndJSONError(w, "failed to save hide rules", "user_id", userID, "error", err)
		return
	}

	writeJSONSuccess(w, map[string]any{"settings": settings})
}

// registry builds the menu for the user in the request path.
func (h *ModuleMenuHandler) registry(w http.ResponseWriter, r *http.Request) (*modmenu.Registry, bool) {
	userID, ok := h.parseUserID(w, r)
	if !ok {
		return nil, false
	}

	reg, err := h.menus.ForUser(r.Context(), userID, h.requestLang(r))
	if err != nil {
		logAndJSONError(w, "failed to build module menu", "user_id", userID, "error", err)
		return nil, false
	}
	return reg, true
}

func (h *ModuleMenuHandler) menuItem(e *modmenu.Entry) MenuItem {
	item := MenuItem{
		Name:                       e.Name,
		Title:                      e.Title,
		Link:                       e.Link,
		OnClick:                    e.OnClick,
		Description:                e.Description,
		Icon:                       e.Icon,
		NavigationFrameScript:      e.NavigationFrameTarget,
		NavigationFrameScriptParam: e.NavigationFrameParameters,
		NavigationComponentID:      e.NavigationComponentID,
	}
	if e.Icon != "" && h.icons != nil {
		item.IconHTML = h.icons.Render(e.Icon, icon.SizeSmall)
	}
	for _, c := range e.Children() {
		item.Children = append(item.Children, h.menuItem(c))
	}
	return item
}

func (h *ModuleMenuHandler) parseUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil || userID <= 0 {
		writeJSONError(w, http.StatusBadRequest, i18n.T(h.requestLang(r), "menu.error.user_id"))
		return 0, false
	}
	return userID, true
}

// requestLang picks the admin language from the lang query parameter, then
// the Accept-Language header, then the configured default.
func (h *ModuleMenuHandler) requestLang(r *http.Request) string {
	if lang := r.URL.Query().Get("lang"); lang != "" && i18n.IsSupported(lang) {
		return strings.ToLower(lang)
	}
	if accept := r.Header.Get("Accept-Language"); accept != "" {
		return i18n.MatchLanguage(accept)
	}
	return h.defaultLang
}
