// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package inventory

import "github.com/google/uuid"

// newID returns a fresh opaque record id. Ids are generated once at
// creation and are immutable.
func newID() string {
	return uuid.NewString()
}
