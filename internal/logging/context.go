package logging

import (
	"context"
	"log/slog"

	"platter/internal/services"
)

// Structured log keys shared across platter.
const (
	FieldComponent       = "component"
	FieldItemIndex       = "item_index"
	FieldStage           = "stage"
	FieldCorrelationID   = "correlation_id"
	FieldEventType       = "event_type"
	FieldErrorHint       = "error_hint"
	FieldImpact          = "impact"
	FieldDecisionType    = "decision_type"
	FieldDecisionResult  = "decision_result"
	FieldDecisionReason  = "decision_reason"
	FieldCatalogueNumber = "catalogue_number"
	FieldExternalID      = "external_id"
)

// WithContext tags logger with the batch position, stage and correlation ID
// carried by ctx. A nil logger yields a no-op logger.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	if ctx == nil {
		return logger
	}
	var args []any
	if idx, ok := services.ItemIndexFromContext(ctx); ok {
		args = append(args, slog.Int(FieldItemIndex, idx))
	}
	if stage, ok := services.StageFromContext(ctx); ok {
		args = append(args, slog.String(FieldStage, stage))
	}
	if rid, ok := services.RequestIDFromContext(ctx); ok {
		args = append(args, slog.String(FieldCorrelationID, rid))
	}
	if len(args) == 0 {
		return logger
	}
	return logger.With(args...)
}
