// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ihuza/ihuza-go/internal/inventory"
)

// ListCategories returns the categories visible to the current principal.
func (h *Handler) ListCategories(w http.ResponseWriter, _ *http.Request) {
	writeJSONSuccess(w, map[string]any{
		"categories": h.inventory.Categories(h.session()),
	})
}

// CreateCategory adds a category owned by the current principal.
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	c, err := h.inventory.CreateCategory(h.session(), inventory.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSONSuccess(w, map[string]any{"category": c})
}

// GetCategory returns one category visible to the current principal.
func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	c, ok := h.inventory.CategoryByID(h.session(), chi.URLParam(r, "id"))
	if !ok {
		writeJSONError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSONSuccess(w, map[string]any{"category": c})
}

// UpdateCategory merges a partial update into a category.
func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	err := h.inventory.UpdateCategory(h.session(), chi.URLParam(r, "id"), inventory.CategoryPatch{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSONSuccess(w, nil)
}

// DeleteCategory removes a category.
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.inventory.DeleteCategory(h.session(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSONSuccess(w, nil)
}
