package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"platter/internal/resolution"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printRecord(out io.Writer, res resolution.Result) {
	record := res.Record
	fmt.Fprintf(out, "Title:    %s\n", record.Title)
	fmt.Fprintf(out, "Year:     %s\n", yearLabel(record.Year))
	fmt.Fprintf(out, "Genres:   %s\n", listLabel(record.Genres))
	fmt.Fprintf(out, "Styles:   %s\n", listLabel(record.Styles))
	if res.Selection != nil {
		fmt.Fprintf(out, "Discogs:  %s %d\n", res.Selection.Type, res.Selection.ExternalID)
	}
	if len(record.Tracklist) == 0 {
		return
	}

	rows := make([][]string, 0, len(record.Tracklist))
	for i, track := range record.Tracklist {
		rows = append(rows, []string{strconv.Itoa(i + 1), track.Title, track.Duration})
	}
	fmt.Fprintln(out)
	if isTerminal(out) {
		fmt.Fprintln(out, renderTable([]string{"#", "Title", "Duration"}, rows, []columnAlignment{alignRight, alignLeft, alignRight}))
		return
	}
	for _, row := range rows {
		fmt.Fprintln(out, strings.Join(row, "\t"))
	}
}

func reasonLabel(reason resolution.Reason) string {
	switch reason {
	case resolution.ReasonNoHits:
		return "no Discogs entries carry this catalogue number"
	case resolution.ReasonAmbiguous:
		return "several different records share this catalogue number (try --hint)"
	case resolution.ReasonUnrecognized:
		return "no catalogue number recognized"
	default:
		return string(reason)
	}
}

func yearLabel(year int) string {
	if year == 0 {
		return "unknown"
	}
	return strconv.Itoa(year)
}

func listLabel(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}
