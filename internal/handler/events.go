// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/olegiv/ocms-modmenu/internal/store"
)

// RouteEvents lists recorded warnings and errors.
const RouteEvents = "/admin/events"

// Event list limits
const (
	DefaultEventLimit = 50
	MaxEventLimit     = 500
)

// EventLister returns recent events, newest first.
type EventLister interface {
	ListEvents(ctx context.Context, limit int) ([]store.Event, error)
}

// EventsHandler handles event log routes.
type EventsHandler struct {
	events EventLister
}

// NewEventsHandler creates a new EventsHandler.
func NewEventsHandler(events EventLister) *EventsHandler {
	return &EventsHandler{events: events}
}

// List handles GET /admin/events?limit=N.
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := DefaultEventLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeJSONError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, MaxEventLimit)
	}

	events, err := h.events.ListEvents(r.Context(), limit)
	if err != nil {
		logAndJSONError(w, "failed to list events", "error", err)
		return
	}
	if events == nil {
		events = []store.Event{}
	}

	writeJSONSuccess(w, map[string]any{"events": events})
}
