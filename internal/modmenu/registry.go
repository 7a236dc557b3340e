// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package modmenu

import "slices"

// Registry holds the top-level entries of a module menu.
//
// A Registry is populated by Builder and is read-only afterwards. It is safe
// to share between goroutines once Build and MergeExtensions have returned.
type Registry struct {
	entries []*Entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Attach appends a top-level entry.
func (r *Registry) Attach(e *Entry) {
	if e == nil {
		return
	}
	r.entries = append(r.entries, e)
}

// Entries returns all top-level entries in order.
func (r *Registry) Entries() []*Entry {
	return r.entries
}

// Len returns the number of top-level entries.
func (r *Registry) Len() int {
	return len(r.entries)
}

// EntriesExcluding returns the top-level entries to show in a menu.
// Without exclusions every entry is returned. With exclusions, entries named
// in excluded are dropped, and so are entries without children.
func (r *Registry) EntriesExcluding(excluded ...string) []*Entry {
	if len(excluded) == 0 {
		return r.entries
	}

	result := make([]*Entry, 0, len(r.entries))
	for _, e := range r.entries {
		if slices.Contains(excluded, e.Name) {
			continue
		}
		if !e.HasChildren() {
			continue
		}
		result = append(result, e)
	}
	return result
}

// FindByGroupName returns the top-level entry with the given name.
func (r *Registry) FindByGroupName(name string) (*Entry, bool) {
	for _, e := range r.entries {
		if e.Name == name {
			return e, true
		}
	}
	return nil, false
}

// FindByName searches the whole tree depth-first, pre-order, and returns the
// first entry with the given name.
func (r *Registry) FindByName(name string) (*Entry, bool) {
	return findIn(name, r.entries)
}

func findIn(name string, entries []*Entry) (*Entry, bool) {
	for _, e := range entries {
		if e.Name == name {
			return e, true
		}
		if found, ok := findIn(name, e.children); ok {
			return found, true
		}
	}
	return nil, false
}

// Walk visits every entry in pre-order. Top-level entries have depth 0.
// Returning false from fn skips the entry's children.
func (r *Registry) Walk(fn func(e *Entry, depth int) bool) {
	walk(r.entries, 0, fn)
}

func walk(entries []*Entry, depth int, fn func(e *Entry, depth int) bool) {
	for _, e := range entries {
		if fn(e, depth) {
			walk(e.children, depth+1, fn)
		}
	}
}
