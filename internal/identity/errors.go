// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package identity

import "errors"

// Domain failures are returned as sentinel errors and checked with
// errors.Is; none of them is used for control flow via panic.
var (
	// ErrEmailReserved is returned when a registration or account edit
	// tries to claim the reserved admin email.
	ErrEmailReserved = errors.New("email is not available")

	// ErrEmailTaken is returned when an email already exists in the
	// accounts collection (case-sensitive exact match).
	ErrEmailTaken = errors.New("email already exists")

	// ErrMissingField is returned when a required field is empty.
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidRole is returned when an account role is neither admin
	// nor user.
	ErrInvalidRole = errors.New("invalid role")

	// ErrDenied is returned when the caller lacks permission for an
	// account-management operation. The operation performs no mutation.
	ErrDenied = errors.New("operation denied")

	// ErrSelfDelete is returned when an admin tries to delete their own
	// account.
	ErrSelfDelete = errors.New("cannot delete own account")

	// ErrNotFound is returned when no account matches the given id.
	ErrNotFound = errors.New("account not found")
)
