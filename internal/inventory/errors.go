// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package inventory

import "errors"

var (
	// ErrDenied is returned when the caller is neither admin nor owner of
	// the record. The operation performs no mutation and no persistence
	// write.
	ErrDenied = errors.New("operation denied")

	// ErrNotFound is returned when no record matches the given id.
	ErrNotFound = errors.New("record not found")

	// ErrMissingField is returned when a required field is empty.
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidValue is returned for a negative quantity or price.
	ErrInvalidValue = errors.New("invalid field value")
)
