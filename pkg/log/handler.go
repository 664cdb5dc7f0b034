// Copyright 2022-2024 Boris HUISGEN. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"
)

// Handler implements a text log handler tagging each record with the name of
// the component which emitted it.
type Handler struct {
	component string
	opts      *HandlerOptions
	w         io.Writer
	mu        *sync.Mutex
	goas      []groupOrAttrs
}

// HandlerOptions implements the log handler options.
type HandlerOptions struct {
	Level        slog.Leveler
	AppendSource bool
}

// groupOrAttrs holds either the group or the list of attributes.
type groupOrAttrs struct {
	group string
	attrs []slog.Attr
}

const (
	// ComponentKey is the key used by the handler for the component name. The
	// associated value is a string.
	ComponentKey = "component"
)

// NewHandler creates a new handler.
func NewHandler(w io.Writer, component string, opts *HandlerOptions) *Handler {
	if opts == nil {
		opts = &HandlerOptions{
			Level: ProgramLevel,
		}
	}
	return &Handler{
		component: component,
		opts:      opts,
		w:         w,
		mu:        &sync.Mutex{},
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

// WithGroup returns a new Handler with the given group appended to
// the receiver's existing groups.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return h.with(groupOrAttrs{group: name})
}

// WithAttrs returns a new Handler whose attributes consist of both the
// receiver's attributes and the arguments.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	return h.with(groupOrAttrs{attrs: attrs})
}

// Handle handles the Record.
func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	buf := make([]byte, 0, 1024)
	if !r.Time.IsZero() {
		buf = fmt.Appendf(buf, "%s=%s", slog.TimeKey, r.Time.Format(time.RFC3339Nano))
	}
	buf = h.appendAttr(buf, "", slog.Any(slog.LevelKey, r.Level))
	if h.component != "" {
		buf = h.appendAttr(buf, "", slog.String(ComponentKey, h.component))
	}
	if h.opts.AppendSource && r.PC != 0 {
		f, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		buf = h.appendAttr(buf, "", slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", f.File, f.Line)))
	}
	buf = h.appendAttr(buf, "", slog.String(slog.MessageKey, r.Message))

	goas := h.goas
	if r.NumAttrs() == 0 {
		// groups without attributes are omitted
		for len(goas) > 0 && goas[len(goas)-1].group != "" {
			goas = goas[:len(goas)-1]
		}
	}
	var prefix string
	for _, goa := range goas {
		if goa.group != "" {
			prefix += goa.group + "."
			continue
		}
		for _, a := range goa.attrs {
			buf = h.appendAttr(buf, prefix, a)
		}
	}
	r.Attrs(func(a slog.Attr) bool {
		buf = h.appendAttr(buf, prefix, a)
		return true
	})
	buf = append(buf, '\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, err := h.w.Write(buf); err != nil {
		return fmt.Errorf("write record: %w", err)
	}

	return nil
}

// with returns a copy of the handler with the given group or attributes.
func (h *Handler) with(goa groupOrAttrs) *Handler {
	h2 := *h
	h2.goas = make([]groupOrAttrs, len(h.goas)+1)
	copy(h2.goas, h.goas)
	h2.goas[len(h2.goas)-1] = goa
	return &h2
}

// appendAttr appends a single attribute.
func (h *Handler) appendAttr(buf []byte, prefix string, a slog.Attr) []byte {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return buf
	}
	key := prefix + a.Key

	switch a.Value.Kind() {
	case slog.KindGroup:
		attrs := a.Value.Group()
		if len(attrs) == 0 {
			return buf
		}
		if a.Key != "" {
			prefix = key + "."
		}
		for _, ga := range attrs {
			buf = h.appendAttr(buf, prefix, ga)
		}
		return buf
	case slog.KindTime:
		return appendField(buf, key, a.Value.Time().Format(time.RFC3339Nano))
	default:
		return appendField(buf, key, a.Value.String())
	}
}

// appendField appends a key=value field, quoting when needed.
func appendField(buf []byte, key, value string) []byte {
	if needsQuoting(key) {
		buf = fmt.Appendf(buf, " %q=", key)
	} else {
		buf = fmt.Appendf(buf, " %s=", key)
	}
	if needsQuoting(value) {
		return fmt.Appendf(buf, "%q", value)
	}
	return append(buf, value...)
}

// needsQuoting checks if a string needs to be quoted.
func needsQuoting(s string) bool {
	if len(s) == 0 {
		return true
	}
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError || unicode.IsSpace(r) || !unicode.IsPrint(r) {
			return true
		}
		i += size
	}
	return false
}

var _ (slog.Handler) = (*Handler)(nil)
