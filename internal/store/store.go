// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Collection keys. Each holds one whole JSON-serialized value.
const (
	KeyAccounts   = "accounts"
	KeyProducts   = "products"
	KeyCategories = "categories"
	KeyPrincipal  = "current-principal"
	KeyTheme      = "theme-preference"
	KeyEvents     = "events"
)

// Store reads and writes whole JSON values under fixed keys.
type Store struct {
	db *sql.DB
}

// New creates a Store over an open database.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Load unmarshals the value stored under key into dest and reports whether a
// usable value was found. A missing key, an unreadable row and a corrupt JSON
// value all report false so the caller falls back to seed data; corruption is
// never surfaced as a fatal error.
func (s *Store) Load(key string, dest any) bool {
	var raw string
	err := s.db.QueryRow("SELECT value FROM collections WHERE key = ?", key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false
	}
	if err != nil {
		slog.Error("reading collection", "key", key, "error", err)
		return false
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		slog.Warn("stored collection is corrupt, treating as absent", "key", key, "error", err)
		return false
	}
	return true
}

// Save marshals v and durably replaces the value stored under key.
func (s *Store) Save(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding collection %q: %w", key, err)
	}

	_, err = s.db.Exec(`
		INSERT INTO collections (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(raw), time.Now())
	if err != nil {
		return fmt.Errorf("writing collection %q: %w", key, err)
	}
	return nil
}

// Remove deletes the value stored under key. Removing an absent key is a no-op.
func (s *Store) Remove(key string) error {
	if _, err := s.db.Exec("DELETE FROM collections WHERE key = ?", key); err != nil {
		return fmt.Errorf("removing collection %q: %w", key, err)
	}
	return nil
}
