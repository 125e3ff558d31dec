package resolution_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"platter/internal/catno"
	"platter/internal/resolution"
	"platter/internal/services"
)

type slowCatalogue struct {
	*fakeCatalogue
	inFlight atomic.Int32
	peak     atomic.Int32
	failID   catno.Identifier
}

func (s *slowCatalogue) Search(ctx context.Context, id catno.Identifier) ([]resolution.SearchHit, error) {
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		peak := s.peak.Load()
		if n <= peak || s.peak.CompareAndSwap(peak, n) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)
	if id == s.failID {
		return nil, errors.New("boom")
	}
	return s.fakeCatalogue.Search(ctx, id)
}

func TestResolveAllKeepsOrderAndIsolatesFailures(t *testing.T) {
	cat := &slowCatalogue{fakeCatalogue: lenaCatalogue(), failID: "FAIL 1"}
	r := newResolver(t, cat, resolution.WithConcurrency(2))

	requests := []resolution.Request{
		{Identifier: "MLPH 1622", CorrelationID: "a"},
		{Identifier: "FAIL 1", CorrelationID: "b"},
		{Identifier: "AMBIG 1", CorrelationID: "c"},
		{Text: "sleeve says MLPH 1622", CorrelationID: "d"},
		{Identifier: "NONE 2", CorrelationID: "e"},
	}
	outcomes := r.ResolveAll(context.Background(), requests)
	if len(outcomes) != len(requests) {
		t.Fatalf("got %d outcomes, want %d", len(outcomes), len(requests))
	}
	for i, out := range outcomes {
		if out.Request.CorrelationID != requests[i].CorrelationID {
			t.Fatalf("outcome %d belongs to %q", i, out.Request.CorrelationID)
		}
	}

	if !outcomes[0].Result.Resolved() || outcomes[0].Err != nil {
		t.Fatalf("first item: %+v", outcomes[0])
	}
	if !errors.Is(outcomes[1].Err, services.ErrLookupUnavailable) || outcomes[1].Kind != services.KindLookupUnavailable {
		t.Fatalf("second item: %+v", outcomes[1])
	}
	if outcomes[2].Result.Reason != resolution.ReasonAmbiguous || outcomes[2].Kind != "" {
		t.Fatalf("third item: %+v", outcomes[2])
	}
	if !outcomes[3].Result.Resolved() || outcomes[3].Result.Identifier != "MLPH 1622" {
		t.Fatalf("fourth item: %+v", outcomes[3])
	}
	if outcomes[4].Result.Reason != resolution.ReasonNoHits {
		t.Fatalf("fifth item: %+v", outcomes[4])
	}
	if peak := cat.peak.Load(); peak > 2 {
		t.Fatalf("peak concurrency %d exceeds limit 2", peak)
	}
}

func TestResolveAllAppliesItemTimeout(t *testing.T) {
	cat := lenaCatalogue()
	cat.onSearch = func(ctx context.Context, _ catno.Identifier) { <-ctx.Done() }
	r := newResolver(t, cat, resolution.WithItemTimeout(10*time.Millisecond))

	outcomes := r.ResolveAll(context.Background(), []resolution.Request{{Identifier: "MLPH 1622"}})
	if !errors.Is(outcomes[0].Err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", outcomes[0].Err)
	}
	if outcomes[0].Kind != services.KindCanceled {
		t.Fatalf("kind = %q, want canceled", outcomes[0].Kind)
	}
}

func TestResolveAllEmpty(t *testing.T) {
	if got := newResolver(t, lenaCatalogue()).ResolveAll(context.Background(), nil); len(got) != 0 {
		t.Fatalf("expected no outcomes, got %d", len(got))
	}
}
