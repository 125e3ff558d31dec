package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

// consoleHandler writes one human readable line per record:
//
//	2026-10-18T09:12:03Z INFO resolution: [MLPH 1622] hit selected decision=disambiguation:selected reason="single title across hits" external_id=2229646
//
// The component and catalogue number move into the line prefix and a decision
// triple is folded into decision= and reason=. Remaining attributes follow as
// key=value pairs in the order they were added.
type consoleHandler struct {
	out        *lockedWriter
	level      slog.Leveler
	withSource bool
	group      string
	bound      line
}

type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func newConsoleHandler(w io.Writer, level slog.Leveler, withSource bool) *consoleHandler {
	return &consoleHandler{out: &lockedWriter{w: w}, level: level, withSource: withSource}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	l := h.bound.clone()
	r.Attrs(func(a slog.Attr) bool {
		l.add(h.group, a)
		return true
	})

	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	var b strings.Builder
	b.WriteString(ts.UTC().Format(time.RFC3339))
	b.WriteByte(' ')
	b.WriteString(r.Level.String())
	if l.component != "" {
		b.WriteByte(' ')
		b.WriteString(l.component)
		b.WriteByte(':')
	}
	if l.catno != "" {
		b.WriteString(" [")
		b.WriteString(l.catno)
		b.WriteByte(']')
	}
	b.WriteByte(' ')
	if msg := strings.TrimSpace(r.Message); msg != "" {
		b.WriteString(msg)
	} else {
		b.WriteString("(no message)")
	}
	if h.withSource {
		if src := r.Source(); src != nil && src.File != "" {
			fmt.Fprintf(&b, " (%s:%d)", filepath.Base(src.File), src.Line)
		}
	}
	if l.decisionType != "" {
		b.WriteString(" decision=")
		b.WriteString(l.decisionType)
		if l.decisionResult != "" {
			b.WriteByte(':')
			b.WriteString(l.decisionResult)
		}
	}
	if l.decisionReason != "" {
		b.WriteString(" reason=")
		b.WriteString(formatValue(slog.StringValue(l.decisionReason)))
	}
	for _, f := range l.fields {
		b.WriteByte(' ')
		b.WriteString(f.key)
		b.WriteByte('=')
		b.WriteString(formatValue(f.value))
	}
	b.WriteByte('\n')

	h.out.mu.Lock()
	defer h.out.mu.Unlock()
	_, err := io.WriteString(h.out.w, b.String())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := h.clone()
	for _, a := range attrs {
		c.bound.add(c.group, a)
	}
	return c
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := h.clone()
	c.group = qualify(c.group, name)
	return c
}

func (h *consoleHandler) clone() *consoleHandler {
	c := *h
	c.bound = h.bound.clone()
	return &c
}

// line collects the parts of a console record.
type line struct {
	component      string
	catno          string
	decisionType   string
	decisionResult string
	decisionReason string
	fields         []field
}

type field struct {
	key   string
	value slog.Value
}

func (l line) clone() line {
	l.fields = slices.Clone(l.fields)
	return l
}

func (l *line) add(group string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		inner := group
		if a.Key != "" {
			inner = qualify(group, a.Key)
		}
		for _, ga := range a.Value.Group() {
			l.add(inner, ga)
		}
		return
	}

	key := qualify(group, a.Key)
	switch key {
	case FieldComponent:
		l.component = a.Value.String()
	case FieldCatalogueNumber:
		l.catno = a.Value.String()
	case FieldDecisionType:
		l.decisionType = a.Value.String()
	case FieldDecisionResult:
		l.decisionResult = a.Value.String()
	case FieldDecisionReason:
		l.decisionReason = a.Value.String()
	default:
		l.fields = append(l.fields, field{key: key, value: a.Value})
	}
}

func qualify(group, key string) string {
	if group == "" {
		return key
	}
	return group + "." + key
}

func formatValue(v slog.Value) string {
	var s string
	switch v.Kind() {
	case slog.KindAny:
		switch x := v.Any().(type) {
		case error:
			s = x.Error()
		case []string:
			quoted := make([]string, len(x))
			for i, item := range x {
				quoted[i] = strconv.Quote(item)
			}
			return "[" + strings.Join(quoted, ",") + "]"
		default:
			s = fmt.Sprint(x)
		}
	case slog.KindTime:
		s = v.Time().UTC().Format(time.RFC3339)
	default:
		s = v.String()
	}
	if s == "" || strings.IndexFunc(s, func(r rune) bool { return r <= ' ' || r == '=' || r == '"' }) >= 0 {
		return strconv.Quote(s)
	}
	return s
}
