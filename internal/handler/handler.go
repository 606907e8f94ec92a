// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler exposes the identity and inventory services over a JSON
// API. It owns the current session: created on sign-in, destroyed on
// sign-out, restored from the persisted principal at startup. All scoping
// decisions live in the services; the handlers only translate HTTP.
package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/ihuza/ihuza-go/internal/config"
	"github.com/ihuza/ihuza-go/internal/identity"
	"github.com/ihuza/ihuza-go/internal/inventory"
	"github.com/ihuza/ihuza-go/internal/middleware"
	"github.com/ihuza/ihuza-go/internal/store"
)

// Handler serves the JSON API.
type Handler struct {
	identity  *identity.Service
	inventory *inventory.Service
	store     *store.Store
	cfg       *config.Config

	sessMu sync.RWMutex
	sess   *identity.Session
}

// New creates a Handler. The restored session may be nil (signed out).
func New(ids *identity.Service, inv *inventory.Service, st *store.Store, cfg *config.Config, restored *identity.Session) *Handler {
	return &Handler{
		identity:  ids,
		inventory: inv,
		store:     st,
		cfg:       cfg,
		sess:      restored,
	}
}

// session returns the current session, or nil when signed out.
func (h *Handler) session() *identity.Session {
	h.sessMu.RLock()
	defer h.sessMu.RUnlock()
	return h.sess
}

func (h *Handler) setSession(sess *identity.Session) {
	h.sessMu.Lock()
	defer h.sessMu.Unlock()
	h.sess = sess
}

// Routes builds the API router.
func (h *Handler) Routes(lp *middleware.LoginProtection) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Route("/api", func(r chi.Router) {
		// Credential endpoints sit behind the per-IP rate limiter.
		r.Group(func(r chi.Router) {
			r.Use(lp.Middleware)
			r.Post("/auth/login", h.Login)
			r.Post("/auth/register", h.Register)
		})
		r.Post("/auth/logout", h.Logout)
		r.Get("/auth/me", h.Me)

		r.Get("/products", h.ListProducts)
		r.Post("/products", h.CreateProduct)
		r.Get("/products/{id}", h.GetProduct)
		r.Put("/products/{id}", h.UpdateProduct)
		r.Delete("/products/{id}", h.DeleteProduct)

		r.Get("/categories", h.ListCategories)
		r.Post("/categories", h.CreateCategory)
		r.Get("/categories/{id}", h.GetCategory)
		r.Put("/categories/{id}", h.UpdateCategory)
		r.Delete("/categories/{id}", h.DeleteCategory)

		r.Get("/accounts", h.ListAccounts)
		r.Post("/accounts", h.CreateAccount)
		r.Get("/accounts/{id}", h.GetAccount)
		r.Put("/accounts/{id}", h.UpdateAccount)
		r.Delete("/accounts/{id}", h.DeleteAccount)

		r.Get("/stats", h.Stats)
		r.Get("/theme", h.GetTheme)
		r.Put("/theme", h.SetTheme)
	})

	return r
}

// writeDomainError maps a domain failure to an HTTP status. Infrastructure
// errors surface as 500 and are logged.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, identity.ErrDenied) || errors.Is(err, inventory.ErrDenied):
		writeJSONError(w, http.StatusForbidden, "operation denied")
	case errors.Is(err, identity.ErrNotFound) || errors.Is(err, inventory.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, "not found")
	case errors.Is(err, identity.ErrEmailReserved):
		writeJSONError(w, http.StatusConflict, "This email is not available")
	case errors.Is(err, identity.ErrEmailTaken):
		writeJSONError(w, http.StatusConflict, "Email already exists")
	case errors.Is(err, identity.ErrSelfDelete):
		writeJSONError(w, http.StatusBadRequest, "You cannot delete your own account")
	case errors.Is(err, identity.ErrMissingField) || errors.Is(err, inventory.ErrMissingField):
		writeJSONError(w, http.StatusBadRequest, "missing required field")
	case errors.Is(err, identity.ErrInvalidRole) || errors.Is(err, inventory.ErrInvalidValue):
		writeJSONError(w, http.StatusBadRequest, "invalid field value")
	default:
		slog.Error("request failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "internal error")
	}
}
