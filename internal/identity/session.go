// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package identity

import "github.com/ihuza/ihuza-go/internal/model"

// Session is the explicit principal holder. One is created on successful
// sign-in (or restore) and destroyed on sign-out; every scoped operation
// receives it by reference. A nil Session means signed out.
type Session struct {
	Account model.Account // sanitized copy, never carries a credential hash
}

// IsAdmin returns true if the session principal has admin role.
// Safe to call on a nil session.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Account.IsAdmin()
}

// AccountID returns the principal's account id, or "" when signed out.
func (s *Session) AccountID() string {
	if s == nil {
		return ""
	}
	return s.Account.ID
}
