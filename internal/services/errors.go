package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrLookupUnavailable = errors.New("lookup unavailable")
	ErrMalformedMetadata = errors.New("malformed metadata")
	ErrConfiguration     = errors.New("configuration error")
	ErrValidation        = errors.New("validation error")
)

// Failure kinds reported by Classify.
const (
	KindLookupUnavailable = "lookup_unavailable"
	KindMalformedMetadata = "malformed_metadata"
	KindCanceled          = "canceled"
	KindFailed            = "failed"
)

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later classification. The marker should be one of the
// exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrLookupUnavailable
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Classify maps a resolution error to the failure kind shown to callers. A nil
// error has no kind.
func Classify(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	case errors.Is(err, ErrMalformedMetadata):
		return KindMalformedMetadata
	case errors.Is(err, ErrLookupUnavailable):
		return KindLookupUnavailable
	default:
		return KindFailed
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
