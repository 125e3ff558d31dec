package resolution

import "platter/internal/services"

// Convert builds a Record from the chosen hit's title and its detail payload.
func Convert(title string, meta *ReleaseMetadata) (*Record, error) {
	if err := meta.Validate(); err != nil {
		return nil, services.Wrap(services.ErrMalformedMetadata, "convert", "validate release metadata", "", err)
	}

	record := &Record{
		Title:     title,
		Tracklist: make([]Track, 0, len(meta.Tracklist)),
		Genres:    uniqueOrdered(meta.Genres),
		Styles:    uniqueOrdered(meta.Styles),
	}
	if meta.Year != nil {
		record.Year = *meta.Year
	}
	for _, track := range meta.Tracklist {
		record.Tracklist = append(record.Tracklist, Track{Title: track.Title, Duration: track.Duration})
	}
	return record, nil
}

func uniqueOrdered(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
