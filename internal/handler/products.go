// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ihuza/ihuza-go/internal/inventory"
)

// ListProducts returns the products visible to the current principal.
func (h *Handler) ListProducts(w http.ResponseWriter, _ *http.Request) {
	writeJSONSuccess(w, map[string]any{
		"products": h.inventory.Products(h.session()),
	})
}

// CreateProduct adds a product owned by the current principal.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string  `json:"name"`
		Category    string  `json:"category"`
		Quantity    int     `json:"quantity"`
		Price       float64 `json:"price"`
		SKU         string  `json:"sku"`
		Description string  `json:"description"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := h.inventory.CreateProduct(h.session(), inventory.ProductInput{
		Name:        req.Name,
		Category:    req.Category,
		Quantity:    req.Quantity,
		Price:       req.Price,
		SKU:         req.SKU,
		Description: req.Description,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSONSuccess(w, map[string]any{"product": p})
}

// GetProduct returns one product. Records the caller may not see report
// not found, whether or not they exist.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, ok := h.inventory.ProductByID(h.session(), chi.URLParam(r, "id"))
	if !ok {
		writeJSONError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSONSuccess(w, map[string]any{"product": p})
}

// UpdateProduct merges a partial update into a product.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        *string  `json:"name"`
		Category    *string  `json:"category"`
		Quantity    *int     `json:"quantity"`
		Price       *float64 `json:"price"`
		SKU         *string  `json:"sku"`
		Description *string  `json:"description"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	err := h.inventory.UpdateProduct(h.session(), chi.URLParam(r, "id"), inventory.ProductPatch{
		Name:        req.Name,
		Category:    req.Category,
		Quantity:    req.Quantity,
		Price:       req.Price,
		SKU:         req.SKU,
		Description: req.Description,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSONSuccess(w, nil)
}

// DeleteProduct removes a product.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.inventory.DeleteProduct(h.session(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSONSuccess(w, nil)
}
