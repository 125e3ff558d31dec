package resolution

import (
	"context"
	"errors"

	"platter/internal/catno"
	"platter/internal/discogs"
	"platter/internal/services"
)

// DiscogsCatalogue adapts a Discogs client to the Catalogue interface.
type DiscogsCatalogue struct {
	client discogs.Searcher
}

var _ Catalogue = (*DiscogsCatalogue)(nil)

// NewDiscogsCatalogue wraps client.
func NewDiscogsCatalogue(client discogs.Searcher) *DiscogsCatalogue {
	return &DiscogsCatalogue{client: client}
}

// Search queries Discogs by catalogue number and maps the results to hits.
func (d *DiscogsCatalogue) Search(ctx context.Context, id catno.Identifier) ([]SearchHit, error) {
	if d == nil || d.client == nil {
		return nil, services.Wrap(services.ErrLookupUnavailable, "search", "discogs search", "client unavailable", nil)
	}
	resp, err := d.client.SearchCatalogueNumber(ctx, id.String())
	if err != nil {
		return nil, services.Wrap(services.ErrLookupUnavailable, "search", "discogs search", "", err)
	}
	hits := make([]SearchHit, 0, len(resp.Results))
	for _, result := range resp.Results {
		hits = append(hits, SearchHit{
			ExternalID: result.ID,
			Type:       ParseRecordType(result.Type),
			Title:      result.Title,
			TrackTitle: result.Title,
		})
	}
	return hits, nil
}

// FetchDetails loads the release or master payload behind a selection.
func (d *DiscogsCatalogue) FetchDetails(ctx context.Context, selection Selection) (*ReleaseMetadata, error) {
	if d == nil || d.client == nil {
		return nil, services.Wrap(services.ErrLookupUnavailable, "details", "discogs details", "client unavailable", nil)
	}

	var (
		release *discogs.Release
		err     error
	)
	switch selection.Type {
	case RecordTypeRelease:
		release, err = d.client.GetRelease(ctx, selection.ExternalID)
	case RecordTypeMaster:
		release, err = d.client.GetMaster(ctx, selection.ExternalID)
	default:
		return nil, services.Wrap(services.ErrValidation, "details", "discogs details", "unsupported record type "+string(selection.Type), nil)
	}
	if err != nil {
		return nil, services.Wrap(services.ErrLookupUnavailable, "details", "discogs "+string(selection.Type), "", err)
	}
	if release == nil {
		return nil, services.Wrap(services.ErrLookupUnavailable, "details", "discogs "+string(selection.Type), "empty response", errors.New("nil release"))
	}

	meta := &ReleaseMetadata{
		Year:      release.Year,
		Genres:    release.Genres,
		Styles:    release.Styles,
		Tracklist: make([]RawTrack, 0, len(release.Tracklist)),
	}
	for _, track := range release.Tracklist {
		meta.Tracklist = append(meta.Tracklist, RawTrack{Title: track.Title, Duration: track.Duration})
	}
	return meta, nil
}
