// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging provides a custom slog handler that mirrors WARN and
// ERROR records into a capped audit trail in the store, so authorization
// denials and failed logins are inspectable after the fact.
package logging

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/ihuza/ihuza-go/internal/store"
)

// maxEvents caps the audit trail; the oldest entries are dropped first.
const maxEvents = 500

// Event is one audit trail entry.
type Event struct {
	Time    time.Time         `json:"time"`
	Level   string            `json:"level"`
	Message string            `json:"message"`
	Attrs   map[string]string `json:"attrs,omitempty"`
}

// EventLogHandler is a slog.Handler that wraps another handler and also
// appends WARN+ records to the events collection.
type EventLogHandler struct {
	inner slog.Handler
	st    *store.Store
	level slog.Level
	busy  *atomic.Bool
}

// NewEventLogHandler creates an EventLogHandler that wraps the given
// handler. Records at WARN and above are mirrored into the store.
func NewEventLogHandler(inner slog.Handler, st *store.Store) *EventLogHandler {
	return &EventLogHandler{
		inner: inner,
		st:    st,
		level: slog.LevelWarn,
		busy:  &atomic.Bool{},
	}
}

// Enabled implements slog.Handler.
func (h *EventLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *EventLogHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}

	if r.Level >= h.level {
		h.appendEvent(r)
	}
	return nil
}

// WithAttrs implements slog.Handler.
func (h *EventLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &EventLogHandler{
		inner: h.inner.WithAttrs(attrs),
		st:    h.st,
		level: h.level,
		busy:  h.busy,
	}
}

// WithGroup implements slog.Handler.
func (h *EventLogHandler) WithGroup(name string) slog.Handler {
	return &EventLogHandler{
		inner: h.inner.WithGroup(name),
		st:    h.st,
		level: h.level,
		busy:  h.busy,
	}
}

// appendEvent writes a record to the events collection. The busy flag is a
// try-lock: the store itself logs on read failures, and re-entering here
// would recurse, so a record arriving while another is being mirrored is
// dropped from the trail (it still reached the inner handler).
func (h *EventLogHandler) appendEvent(r slog.Record) {
	if !h.busy.CompareAndSwap(false, true) {
		return
	}
	defer h.busy.Store(false)

	attrs := make(map[string]string)
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.String()
		return true
	})
	if len(attrs) == 0 {
		attrs = nil
	}

	ev := Event{
		Time:    r.Time,
		Level:   levelString(r.Level),
		Message: r.Message,
		Attrs:   attrs,
	}

	var events []Event
	h.st.Load(store.KeyEvents, &events)
	events = append(events, ev)
	if len(events) > maxEvents {
		events = events[len(events)-maxEvents:]
	}
	// A store failure is swallowed: the handler cannot log its own errors.
	_ = h.st.Save(store.KeyEvents, events)
}

func levelString(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "error"
	case level >= slog.LevelWarn:
		return "warning"
	default:
		return "info"
	}
}
