// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// HideRuleSettings is a user's stored menu hiding configuration in its
// comma-separated form.
type HideRuleSettings struct {
	// HideModules lists top-level modules, e.g. "file,help".
	HideModules string `json:"hideModules"`
	// SubModules maps a top-level module to its hidden sub-modules, e.g.
	// {"web": "list,info"}.
	SubModules map[string]string `json:"subModules"`
}

// Queries wraps the database for module setting queries.
type Queries struct {
	db *sql.DB
}

// New creates a Queries for db.
func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}

// HideRules returns the stored settings of a user. Users without stored
// settings get empty settings.
func (q *Queries) HideRules(ctx context.Context, userID int64) (HideRuleSettings, error) {
	settings := HideRuleSettings{SubModules: map[string]string{}}

	err := q.db.QueryRowContext(ctx,
		"SELECT hide_modules FROM user_module_settings WHERE user_id = ?", userID,
	).Scan(&settings.HideModules)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return HideRuleSettings{}, fmt.Errorf("loading hidden modules for user %d: %w", userID, err)
	}

	rows, err := q.db.QueryContext(ctx,
		"SELECT main_module, sub_modules FROM user_hidden_submodules WHERE user_id = ? ORDER BY main_module",
		userID,
	)
	if err != nil {
		return HideRuleSettings{}, fmt.Errorf("loading hidden sub-modules for user %d: %w", userID, err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var mainModule, subModules string
		if err := rows.Scan(&mainModule, &subModules); err != nil {
			return HideRuleSettings{}, fmt.Errorf("scanning hidden sub-modules: %w", err)
		}
		settings.SubModules[mainModule] = subModules
	}
	if err := rows.Err(); err != nil {
		return HideRuleSettings{}, fmt.Errorf("iterating hidden sub-modules: %w", err)
	}

	return settings, nil
}

// SaveHideRules replaces the stored settings of a user.
func (q *Queries) SaveHideRules(ctx context.Context, userID int64, settings HideRuleSettings) (err error) {
	tx, err := q.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO user_module_settings (user_id, hide_modules, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET hide_modules = excluded.hide_modules, updated_at = excluded.updated_at`,
		userID, settings.HideModules, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("saving hidden modules: %w", err)
	}

	if _, err = tx.ExecContext(ctx, "DELETE FROM user_hidden_submodules WHERE user_id = ?", userID); err != nil {
		return fmt.Errorf("clearing hidden sub-modules: %w", err)
	}

	for mainModule, subModules := range settings.SubModules {
		if mainModule == "" || subModules == "" {
			continue
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO user_hidden_submodules (user_id, main_module, sub_modules) VALUES (?, ?, ?)",
			userID, mainModule, subModules,
		)
		if err != nil {
			return fmt.Errorf("saving hidden sub-modules of %q: %w", mainModule, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing hide rules: %w", err)
	}
	return nil
}
