// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ihuza/ihuza-go/internal/identity"
	"github.com/ihuza/ihuza-go/internal/model"
)

// accountView decorates an account with its activity classification for
// the user-management page.
type accountView struct {
	model.Account
	Active bool `json:"active"`
}

// ListAccounts returns all registered accounts for an admin caller and an
// empty list for everyone else. The reserved admin is never included.
func (h *Handler) ListAccounts(w http.ResponseWriter, _ *http.Request) {
	sess := h.session()
	now := time.Now()

	accounts := h.identity.ListAccounts(sess)
	views := make([]accountView, 0, len(accounts))
	for _, acc := range accounts {
		views = append(views, accountView{
			Account: acc,
			Active:  h.identity.IsAccountActive(acc.LastLogin, now),
		})
	}
	writeJSONSuccess(w, map[string]any{"accounts": views})
}

// CreateAccount adds a registered account with an explicit role. Admin-only.
func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	acc, err := h.identity.CreateAccount(h.session(), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSONSuccess(w, map[string]any{"account": acc})
}

// GetAccount returns one registered account. Admin-only.
func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	acc, err := h.identity.AccountByID(h.session(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSONSuccess(w, map[string]any{"account": acc})
}

// UpdateAccount merges a partial update into a registered account. Admin-only.
func (h *Handler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     *string `json:"name"`
		Email    *string `json:"email"`
		Password *string `json:"password"`
		Role     *string `json:"role"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	err := h.identity.UpdateAccount(h.session(), chi.URLParam(r, "id"), identity.AccountPatch{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSONSuccess(w, nil)
}

// DeleteAccount removes a registered account. Admin-only. The self-deletion
// guard runs here at the collaborator boundary and again inside the
// identity service.
func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	sess := h.session()
	id := chi.URLParam(r, "id")

	if sess != nil && id == sess.AccountID() {
		writeJSONError(w, http.StatusBadRequest, "You cannot delete your own account")
		return
	}

	if err := h.identity.DeleteAccount(sess, id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSONSuccess(w, nil)
}
