// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
)

// Login authenticates credentials and installs the resulting session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	sess, ok := h.identity.Authenticate(req.Email, req.Password)
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	h.setSession(sess)
	writeJSONSuccess(w, map[string]any{"user": sess.Account})
}

// Register creates an account and signs the caller in as it.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	sess, err := h.identity.Register(req.Name, req.Email, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	h.setSession(sess)
	writeJSONSuccess(w, map[string]any{"user": sess.Account})
}

// Logout clears the session and the persisted principal. Idempotent.
func (h *Handler) Logout(w http.ResponseWriter, _ *http.Request) {
	h.identity.SignOut()
	h.setSession(nil)
	writeJSONSuccess(w, nil)
}

// Me returns the current principal.
func (h *Handler) Me(w http.ResponseWriter, _ *http.Request) {
	sess := h.session()
	if sess == nil {
		writeJSONError(w, http.StatusUnauthorized, "not signed in")
		return
	}
	writeJSONSuccess(w, map[string]any{
		"user":     sess.Account,
		"is_admin": sess.IsAdmin(),
	})
}
