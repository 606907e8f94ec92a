// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/ihuza/ihuza-go/internal/config"
	"github.com/ihuza/ihuza-go/internal/store"
)

// Stats returns the dashboard summary over the records visible to the
// current principal.
func (h *Handler) Stats(w http.ResponseWriter, _ *http.Request) {
	writeJSONSuccess(w, map[string]any{
		"stats": h.inventory.Stats(h.session()),
	})
}

// GetTheme returns the persisted theme preference, falling back to the
// configured default.
func (h *Handler) GetTheme(w http.ResponseWriter, _ *http.Request) {
	theme := h.cfg.DefaultTheme
	h.store.Load(store.KeyTheme, &theme)
	writeJSONSuccess(w, map[string]any{"theme": theme})
}

// SetTheme persists the theme preference.
func (h *Handler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Theme string `json:"theme"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Theme != config.ThemeLight && req.Theme != config.ThemeDark {
		writeJSONError(w, http.StatusBadRequest, "invalid field value")
		return
	}

	if err := h.store.Save(store.KeyTheme, req.Theme); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSONSuccess(w, map[string]any{"theme": req.Theme})
}
