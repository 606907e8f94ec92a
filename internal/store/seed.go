// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ihuza/ihuza-go/internal/model"
)

// SeedProducts returns the sample products installed on first start, owned
// by the given account.
func SeedProducts(ownerID string) []model.Product {
	now := time.Now()
	return []model.Product{
		{
			ID:          "1",
			Name:        "Laptop Dell XPS 15",
			Category:    "Electronics",
			Quantity:    25,
			Price:       1299.99,
			Status:      model.StatusInStock,
			SKU:         "DELL-XPS-15",
			Description: "High-performance laptop for professionals",
			OwnerID:     ownerID,
			CreatedAt:   now,
		},
		{
			ID:          "2",
			Name:        "Office Chair Pro",
			Category:    "Furniture",
			Quantity:    50,
			Price:       299.99,
			Status:      model.StatusInStock,
			SKU:         "CHAIR-PRO-001",
			Description: "Ergonomic office chair with lumbar support",
			OwnerID:     ownerID,
			CreatedAt:   now,
		},
		{
			ID:          "3",
			Name:        "Wireless Mouse",
			Category:    "Electronics",
			Quantity:    5,
			Price:       29.99,
			Status:      model.StatusLowStock,
			SKU:         "MOUSE-WIRE-001",
			Description: "Ergonomic wireless mouse with long battery life",
			OwnerID:     ownerID,
			CreatedAt:   now,
		},
	}
}

// SeedCategories returns the sample categories installed on first start.
// The product counts are fixed display values and are not derived from the
// seeded products.
func SeedCategories(ownerID string) []model.Category {
	now := time.Now()
	return []model.Category{
		{
			ID:           "1",
			Name:         "Electronics",
			Description:  "Electronic devices and accessories",
			ProductCount: 120,
			OwnerID:      ownerID,
			CreatedAt:    now,
		},
		{
			ID:           "2",
			Name:         "Furniture",
			Description:  "Office and home furniture",
			ProductCount: 45,
			OwnerID:      ownerID,
			CreatedAt:    now,
		},
		{
			ID:           "3",
			Name:         "Stationery",
			Description:  "Office supplies and stationery",
			ProductCount: 15,
			OwnerID:      ownerID,
			CreatedAt:    now,
		},
	}
}

// EnsureSeed installs sample products and categories for any collection that
// is absent or unreadable. Existing data is never overwritten.
func EnsureSeed(s *Store, ownerID string) error {
	var products []model.Product
	if !s.Load(KeyProducts, &products) {
		if err := s.Save(KeyProducts, SeedProducts(ownerID)); err != nil {
			return fmt.Errorf("seeding products: %w", err)
		}
		slog.Info("seeded sample products")
	}

	var categories []model.Category
	if !s.Load(KeyCategories, &categories) {
		if err := s.Save(KeyCategories, SeedCategories(ownerID)); err != nil {
			return fmt.Errorf("seeding categories: %w", err)
		}
		slog.Info("seeded sample categories")
	}

	return nil
}
