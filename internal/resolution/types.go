package resolution

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"

	"platter/internal/catno"
)

// RecordType classifies a search hit.
type RecordType string

const (
	RecordTypeRelease RecordType = "release"
	RecordTypeMaster  RecordType = "master"
	RecordTypeOther   RecordType = "other"
)

// ParseRecordType maps a catalogue source type string onto a RecordType.
func ParseRecordType(value string) RecordType {
	switch RecordType(value) {
	case RecordTypeRelease:
		return RecordTypeRelease
	case RecordTypeMaster:
		return RecordTypeMaster
	default:
		return RecordTypeOther
	}
}

// SearchHit is one candidate returned by a catalogue search. TrackTitle is the
// text hint words are matched against.
type SearchHit struct {
	ExternalID int64
	Type       RecordType
	Title      string
	TrackTitle string
}

// Selection is the hit chosen by Disambiguate.
type Selection struct {
	ExternalID int64      `json:"external_id"`
	Type       RecordType `json:"type"`
	Title      string     `json:"title"`
}

// RawTrack is a tracklist entry as delivered by the catalogue source.
type RawTrack struct {
	Title    string
	Duration string
}

// ReleaseMetadata is the typed detail payload of a release or master. A nil
// Genres slice means the field was absent, which makes the payload malformed.
type ReleaseMetadata struct {
	Year      *int
	Genres    []string `validate:"required"`
	Styles    []string
	Tracklist []RawTrack
}

var validate = validator.New()

// Validate reports whether the payload can be converted into a Record.
func (m *ReleaseMetadata) Validate() error {
	if m == nil {
		return errors.New("release metadata missing")
	}
	return validate.Struct(m)
}

// Track is one entry of a Record's tracklist. Duration keeps the display form.
type Track struct {
	Title    string `json:"title"`
	Duration string `json:"duration"`
}

// Record is the canonical metadata of a resolved catalogue item. Year is zero
// when unknown. Genres and Styles hold unique values in first-seen order.
type Record struct {
	Title     string   `json:"title"`
	Tracklist []Track  `json:"tracklist"`
	Year      int      `json:"year,omitempty"`
	Genres    []string `json:"genres"`
	Styles    []string `json:"styles"`
}

// Reason explains why a lookup produced no record.
type Reason string

const (
	ReasonNoHits       Reason = "no_hits"
	ReasonAmbiguous    Reason = "ambiguous"
	ReasonUnrecognized Reason = "unrecognized"
)

// Result is the outcome of a single lookup. Exactly one of Record and Reason is set.
type Result struct {
	Identifier catno.Identifier `json:"identifier,omitempty"`
	Record     *Record          `json:"record,omitempty"`
	Selection  *Selection       `json:"selection,omitempty"`
	Reason     Reason           `json:"reason,omitempty"`
	Hits       int              `json:"hits"`
}

// Resolved reports whether the lookup produced a record.
func (r Result) Resolved() bool { return r.Record != nil }

// Catalogue is the external catalogue source consumed by the Resolver.
type Catalogue interface {
	Search(ctx context.Context, id catno.Identifier) ([]SearchHit, error)
	FetchDetails(ctx context.Context, selection Selection) (*ReleaseMetadata, error)
}
