package logging

import (
	"context"
	"log/slog"
	"slices"
	"time"
)

type Attr = slog.Attr

func String(key, value string) Attr { return slog.String(key, value) }

func Int(key string, value int) Attr { return slog.Int(key, value) }

func Duration(key string, value time.Duration) Attr { return slog.Duration(key, value) }

func Strings(key string, values []string) Attr { return slog.Any(key, values) }

func Error(err error) Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.Any("error", err)
}

// CatalogueNumber tags a line with the identifier being resolved.
func CatalogueNumber(id string) Attr { return slog.String(FieldCatalogueNumber, id) }

// ExternalID tags a line with a Discogs release or master id.
func ExternalID(id int64) Attr { return slog.Int64(FieldExternalID, id) }

// Decision describes the outcome of a selection heuristic.
func Decision(kind, result, reason string) []Attr {
	return []Attr{
		slog.String(FieldDecisionType, kind),
		slog.String(FieldDecisionResult, result),
		slog.String(FieldDecisionReason, reason),
	}
}

// Args converts attributes for the variadic slog.Logger methods.
func Args(attrs ...Attr) []any {
	args := make([]any, len(attrs))
	for i, a := range attrs {
		args[i] = a
	}
	return args
}

// NewNop returns a logger that discards everything.
func NewNop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// NewComponentLogger tags every line of logger with component. A nil logger
// yields a no-op logger.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(String(FieldComponent, component))
}

// WarnEvent logs a warning carrying event_type, error_hint and impact. Hint and
// impact fall back to generic text when attrs does not set them.
func WarnEvent(logger *slog.Logger, msg, eventType string, attrs ...Attr) {
	logEvent(logger, slog.LevelWarn, msg, eventType, attrs)
}

// ErrorEvent logs an error carrying event_type and error_hint.
func ErrorEvent(logger *slog.Logger, msg, eventType string, attrs ...Attr) {
	logEvent(logger, slog.LevelError, msg, eventType, attrs)
}

func logEvent(logger *slog.Logger, level slog.Level, msg, eventType string, attrs []Attr) {
	if logger == nil {
		return
	}
	defaults := []Attr{
		String(FieldEventType, eventType),
		String(FieldErrorHint, "run with --verbose for request details"),
	}
	if level == slog.LevelWarn {
		defaults = append(defaults, String(FieldImpact, "item left unresolved"))
	}
	attrs = slices.Clone(attrs)
	for _, d := range defaults {
		if !slices.ContainsFunc(attrs, func(a Attr) bool { return a.Key == d.Key }) {
			attrs = append(attrs, d)
		}
	}
	logger.LogAttrs(context.Background(), level, msg, attrs...)
}
