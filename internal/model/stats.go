// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Stats summarizes the records visible to a principal for the dashboard.
// TotalUsers is zero for non-admin principals.
type Stats struct {
	TotalProducts   int     `json:"total_products"`
	TotalCategories int     `json:"total_categories"`
	TotalUsers      int     `json:"total_users"`
	LowStockCount   int     `json:"low_stock_count"`
	TotalValue      float64 `json:"total_value"`
}
