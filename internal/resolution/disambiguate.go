package resolution

import (
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"platter/internal/logging"
)

const decisionDisambiguation = "disambiguation"

// Disambiguate picks exactly one hit or reports absence.
//
// Without hints every hit must share a single title; the first RELEASE hit is
// chosen, falling back to the first MASTER hit. With hints only RELEASE hits
// whose TrackTitle contains every hint (case-insensitively) are considered,
// and the survivors must share a single title. Search order breaks ties.
func Disambiguate(logger *slog.Logger, hits []SearchHit, hints []string) (Selection, bool) {
	if logger == nil {
		logger = logging.NewNop()
	}
	words := cleanHints(hints)
	if len(words) == 0 {
		return selectUnhinted(logger, hits)
	}
	return selectHinted(logger, hits, words)
}

func selectUnhinted(logger *slog.Logger, hits []SearchHit) (Selection, bool) {
	titles := distinctTitles(hits)
	if len(titles) != 1 {
		reportAmbiguous(logger, titles, len(hits), "search hits disagree on title")
		return Selection{}, false
	}

	for _, want := range []RecordType{RecordTypeRelease, RecordTypeMaster} {
		for _, hit := range hits {
			if hit.Type == want {
				return selected(logger, hit, "single title across hits")
			}
		}
	}
	logger.Info("no selectable hit", logging.Args(logging.Decision(decisionDisambiguation, "absent", "hits are neither releases nor masters")...)...)
	return Selection{}, false
}

func selectHinted(logger *slog.Logger, hits []SearchHit, words []string) (Selection, bool) {
	folder := cases.Fold()
	for i, word := range words {
		words[i] = folder.String(word)
	}

	survivors := make([]SearchHit, 0, len(hits))
	for _, hit := range hits {
		if hit.Type != RecordTypeRelease {
			continue
		}
		haystack := folder.String(hit.TrackTitle)
		if containsAll(haystack, words) {
			survivors = append(survivors, hit)
		}
	}

	titles := distinctTitles(survivors)
	if len(titles) != 1 {
		reportAmbiguous(logger, titles, len(survivors), "hinted releases disagree on title")
		return Selection{}, false
	}
	return selected(logger, survivors[0], "single title among hinted releases")
}

func selected(logger *slog.Logger, hit SearchHit, reason string) (Selection, bool) {
	attrs := logging.Decision(decisionDisambiguation, "selected", reason)
	attrs = append(attrs,
		logging.ExternalID(hit.ExternalID),
		logging.String("record_type", string(hit.Type)),
	)
	logger.Info("hit selected", logging.Args(attrs...)...)
	return Selection{ExternalID: hit.ExternalID, Type: hit.Type, Title: hit.Title}, true
}

func reportAmbiguous(logger *slog.Logger, titles []string, candidates int, reason string) {
	if len(titles) == 0 {
		logger.Info("no candidate hits", logging.Args(logging.Decision(decisionDisambiguation, "absent", reason)...)...)
		return
	}
	attrs := logging.Decision(decisionDisambiguation, "ambiguous", reason)
	attrs = append(attrs,
		logging.Strings("titles", titles),
		logging.Int("candidate_count", candidates),
		logging.String(logging.FieldErrorHint, "add hint words that appear in the wanted title"),
		logging.String(logging.FieldImpact, "item left unresolved"),
	)
	logging.WarnEvent(logger, "ambiguous search hits", "resolution_ambiguous", attrs...)
}

func cleanHints(hints []string) []string {
	words := make([]string, 0, len(hints))
	for _, hint := range hints {
		if trimmed := strings.TrimSpace(hint); trimmed != "" {
			words = append(words, trimmed)
		}
	}
	return words
}

func containsAll(haystack string, words []string) bool {
	for _, word := range words {
		if !strings.Contains(haystack, word) {
			return false
		}
	}
	return true
}

// distinctTitles returns the unique titles of hits, sorted.
func distinctTitles(hits []SearchHit) []string {
	seen := make(map[string]struct{}, len(hits))
	titles := make([]string, 0, len(hits))
	for _, hit := range hits {
		if _, ok := seen[hit.Title]; ok {
			continue
		}
		seen[hit.Title] = struct{}{}
		titles = append(titles, hit.Title)
	}
	slices.Sort(titles)
	return titles
}
