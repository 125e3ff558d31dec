package resolution

import (
	"context"

	"golang.org/x/sync/errgroup"

	"platter/internal/catno"
	"platter/internal/logging"
	"platter/internal/services"
)

// Request is one item of a batch. Text is used when Identifier is empty.
type Request struct {
	Identifier    catno.Identifier
	Text          string
	Hints         []string
	CorrelationID string
}

// Outcome pairs a request with its result. Kind classifies Err for reporting.
type Outcome struct {
	Request Request
	Result  Result
	Err     error
	Kind    string
}

// ResolveAll resolves independent requests concurrently. Outcomes are returned
// in request order and one item's failure never stops the others.
func (r *Resolver) ResolveAll(ctx context.Context, requests []Request) []Outcome {
	outcomes := make([]Outcome, len(requests))

	var g errgroup.Group
	g.SetLimit(r.concurrency)
	for i, req := range requests {
		g.Go(func() error {
			outcomes[i] = r.resolveItem(ctx, i+1, req)
			return nil
		})
	}
	_ = g.Wait()
	return outcomes
}

func (r *Resolver) resolveItem(ctx context.Context, index int, req Request) Outcome {
	ctx = services.WithItemIndex(ctx, index)
	ctx = services.WithRequestID(ctx, req.CorrelationID)
	if r.itemTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.itemTimeout)
		defer cancel()
	}

	var (
		res Result
		err error
	)
	if req.Identifier.IsZero() && req.Text != "" {
		res, err = r.ResolveText(ctx, req.Text, req.Hints...)
	} else {
		res, err = r.Lookup(ctx, req.Identifier, req.Hints...)
	}

	out := Outcome{Request: req, Result: res, Err: err, Kind: services.Classify(err)}
	if err != nil {
		logging.WarnEvent(logging.WithContext(ctx, r.logger), "batch item failed", "batch_item_failed",
			logging.CatalogueNumber(res.Identifier.String()),
			logging.String("failure_kind", out.Kind),
			logging.Error(err),
		)
	}
	return out
}
