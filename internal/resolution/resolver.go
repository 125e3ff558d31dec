package resolution

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"platter/internal/catno"
	"platter/internal/logging"
	"platter/internal/services"
)

const defaultConcurrency = 4

// Resolver runs the search, disambiguate, fetch and convert pipeline.
type Resolver struct {
	catalogue   Catalogue
	logger      *slog.Logger
	concurrency int
	itemTimeout time.Duration
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger attaches a logger for resolution diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithConcurrency bounds the number of in-flight lookups in ResolveAll.
func WithConcurrency(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// WithItemTimeout applies a deadline to every ResolveAll item. Zero means none.
func WithItemTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		if d >= 0 {
			r.itemTimeout = d
		}
	}
}

// NewResolver creates a Resolver backed by catalogue.
func NewResolver(catalogue Catalogue, opts ...Option) (*Resolver, error) {
	if catalogue == nil {
		return nil, services.Wrap(services.ErrConfiguration, "resolution", "new resolver", "catalogue required", nil)
	}
	r := &Resolver{
		catalogue:   catalogue,
		logger:      logging.NewNop(),
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = logging.NewComponentLogger(r.logger, "resolution")
	return r, nil
}

// Resolve returns the record for id, or nil without error when no single
// record can be chosen.
func (r *Resolver) Resolve(ctx context.Context, id catno.Identifier, hints ...string) (*Record, error) {
	res, err := r.Lookup(ctx, id, hints...)
	if err != nil {
		return nil, err
	}
	return res.Record, nil
}

// ResolveText extracts a catalogue number from recognized text and looks it up.
// Text without a recognizable identifier is reported as ReasonUnrecognized
// without contacting the catalogue.
func (r *Resolver) ResolveText(ctx context.Context, text string, hints ...string) (Result, error) {
	id, ok := catno.Extract(text)
	if !ok {
		r.logger.Debug("no catalogue number in text", logging.Int("text_length", len(text)))
		return Result{Reason: ReasonUnrecognized}, nil
	}
	return r.Lookup(ctx, id, hints...)
}

// Lookup resolves id and reports the selection and the reason for absence.
func (r *Resolver) Lookup(ctx context.Context, id catno.Identifier, hints ...string) (Result, error) {
	id = catno.Normalize(id.String())
	if id.IsZero() {
		return Result{Reason: ReasonUnrecognized}, nil
	}
	result := Result{Identifier: id}
	logger := logging.WithContext(ctx, r.logger).With(logging.CatalogueNumber(id.String()))

	if err := ctx.Err(); err != nil {
		return result, err
	}

	started := time.Now()
	hits, err := r.catalogue.Search(services.WithStage(ctx, "search"), id)
	if err != nil {
		return result, markUnavailable(err, "search", "search catalogue")
	}
	result.Hits = len(hits)
	logger.Debug("search completed", logging.Int("hit_count", len(hits)), logging.Duration("latency", time.Since(started)))
	if len(hits) == 0 {
		logger.Info("catalogue number not found", logging.Args(logging.Decision(decisionDisambiguation, "absent", "no search hits")...)...)
		result.Reason = ReasonNoHits
		return result, nil
	}

	selection, ok := Disambiguate(logger, hits, hints)
	if !ok {
		result.Reason = ReasonAmbiguous
		return result, nil
	}
	result.Selection = &selection

	if err := ctx.Err(); err != nil {
		return result, err
	}
	meta, err := r.catalogue.FetchDetails(services.WithStage(ctx, "details"), selection)
	if err != nil {
		return result, markUnavailable(err, "details", "fetch release details")
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}
	record, err := Convert(selection.Title, meta)
	if err != nil {
		logging.ErrorEvent(logger, "release metadata rejected", "resolution_malformed",
			logging.ExternalID(selection.ExternalID),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "inspect the release on Discogs for missing genres"),
		)
		return result, err
	}
	result.Record = record
	logger.Info("catalogue number resolved",
		logging.ExternalID(selection.ExternalID),
		logging.String("title", record.Title),
		logging.Int("track_count", len(record.Tracklist)),
	)
	return result, nil
}

// markUnavailable keeps already classified errors intact and marks the rest
// as lookup failures.
func markUnavailable(err error, stage, operation string) error {
	if errors.Is(err, services.ErrLookupUnavailable) || errors.Is(err, services.ErrMalformedMetadata) {
		return err
	}
	return services.Wrap(services.ErrLookupUnavailable, stage, operation, "", err)
}
