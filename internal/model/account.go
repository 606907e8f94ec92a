// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain records held in the inventory store:
// Account, Product, Category and the dashboard Stats summary.
package model

import "time"

// Account roles.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Account represents a registered user of the inventory application.
type Account struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"password_hash,omitempty"` // Argon2id, only present at rest
	Role         string     `json:"role"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

// IsAdmin returns true if the account has admin role.
func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Sanitized returns a copy of the account with the credential hash removed.
// Every account that leaves the identity service goes through this.
func (a Account) Sanitized() Account {
	a.PasswordHash = ""
	return a
}
