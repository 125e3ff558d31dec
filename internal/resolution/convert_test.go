package resolution_test

import (
	"errors"
	"reflect"
	"testing"

	"platter/internal/resolution"
	"platter/internal/services"
)

func intPtr(v int) *int { return &v }

func TestConvertYear(t *testing.T) {
	tests := []struct {
		name string
		year *int
		want int
	}{
		{"zero is absent", intPtr(0), 0},
		{"missing is absent", nil, 0},
		{"present", intPtr(1986), 1986},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, err := resolution.Convert("T", &resolution.ReleaseMetadata{Year: tt.year, Genres: []string{"Pop"}})
			if err != nil {
				t.Fatalf("Convert returned error: %v", err)
			}
			if record.Year != tt.want {
				t.Fatalf("year = %d, want %d", record.Year, tt.want)
			}
		})
	}
}

func TestConvertMissingStylesIsEmpty(t *testing.T) {
	record, err := resolution.Convert("T", &resolution.ReleaseMetadata{Genres: []string{"Pop"}})
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	if record.Styles == nil || len(record.Styles) != 0 {
		t.Fatalf("styles = %#v, want empty non-nil", record.Styles)
	}
}

func TestConvertMissingGenresIsMalformed(t *testing.T) {
	_, err := resolution.Convert("T", &resolution.ReleaseMetadata{Styles: []string{"Schlager"}})
	if !errors.Is(err, services.ErrMalformedMetadata) {
		t.Fatalf("expected malformed metadata, got %v", err)
	}
	if services.Classify(err) != services.KindMalformedMetadata {
		t.Fatalf("classify = %q", services.Classify(err))
	}
}

func TestConvertNilMetadataIsMalformed(t *testing.T) {
	if _, err := resolution.Convert("T", nil); !errors.Is(err, services.ErrMalformedMetadata) {
		t.Fatalf("expected malformed metadata, got %v", err)
	}
}

func TestConvertEmptyGenresAccepted(t *testing.T) {
	record, err := resolution.Convert("T", &resolution.ReleaseMetadata{Genres: []string{}})
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	if record.Genres == nil || len(record.Genres) != 0 {
		t.Fatalf("genres = %#v", record.Genres)
	}
}

func TestConvertPreservesTrackOrderAndDedupesSets(t *testing.T) {
	meta := &resolution.ReleaseMetadata{
		Year:   intPtr(1986),
		Genres: []string{"Electronic", "Pop", "Electronic"},
		Styles: []string{"Synth-pop", "Schlager", "Synth-pop"},
		Tracklist: []resolution.RawTrack{
			{Title: "A1", Duration: "3:03"},
			{Title: "A2", Duration: "3:35"},
			{Title: "A1", Duration: ""},
		},
	}
	record, err := resolution.Convert("Lena Philipsson - Kärleken Är Evig.", meta)
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	wantTracks := []resolution.Track{
		{Title: "A1", Duration: "3:03"},
		{Title: "A2", Duration: "3:35"},
		{Title: "A1", Duration: ""},
	}
	if !reflect.DeepEqual(record.Tracklist, wantTracks) {
		t.Fatalf("tracklist = %#v", record.Tracklist)
	}
	if !reflect.DeepEqual(record.Genres, []string{"Electronic", "Pop"}) {
		t.Fatalf("genres = %#v", record.Genres)
	}
	if !reflect.DeepEqual(record.Styles, []string{"Synth-pop", "Schlager"}) {
		t.Fatalf("styles = %#v", record.Styles)
	}
	if record.Title != "Lena Philipsson - Kärleken Är Evig." {
		t.Fatalf("title = %q", record.Title)
	}
}
