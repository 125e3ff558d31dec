package main

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"platter/internal/catno"
	"platter/internal/resolution"
)

const (
	statusResolved   = "resolved"
	statusUnresolved = "unresolved"
	statusFailed     = "failed"
)

type batchItemView struct {
	Index           int                   `json:"index"`
	CatalogueNumber string                `json:"catalogue_number"`
	Hints           []string              `json:"hints,omitempty"`
	CorrelationID   string                `json:"correlation_id"`
	Status          string                `json:"status"`
	Reason          resolution.Reason     `json:"reason,omitempty"`
	FailureKind     string                `json:"failure_kind,omitempty"`
	Error           string                `json:"error,omitempty"`
	Selection       *resolution.Selection `json:"selection,omitempty"`
	Record          *resolution.Record    `json:"record,omitempty"`
}

func newBatchCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "batch [file|-]",
		Short: "Resolve a list of catalogue numbers concurrently",
		Long: `Resolve one catalogue number per line. A line may carry hint words after a
"|" separator. Blank lines and lines starting with "#" are ignored.

Example input:
  MLPH 1622
  KULP-3300 | evig
  # comment`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			requests, err := parseBatch(text)
			if err != nil {
				return err
			}
			if len(requests) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No catalogue numbers to resolve")
				return nil
			}

			resolver, err := ctx.newResolver()
			if err != nil {
				return err
			}
			outcomes := resolver.ResolveAll(cmd.Context(), requests)
			views := make([]batchItemView, 0, len(outcomes))
			failed := 0
			for i, outcome := range outcomes {
				view := newBatchItemView(i+1, outcome)
				if view.Status == statusFailed {
					failed++
				}
				views = append(views, view)
			}

			if asJSON {
				if err := writeJSON(cmd, views); err != nil {
					return err
				}
			} else {
				printBatch(cmd, views)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d items failed", failed, len(views))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

// parseBatch turns batch input into requests. Each request gets a fresh
// correlation ID so its log lines can be grouped.
func parseBatch(text string) ([]resolution.Request, error) {
	var requests []resolution.Request
	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		id, hints, _ := strings.Cut(line, "|")
		requests = append(requests, resolution.Request{
			Identifier:    catno.Normalize(id),
			Hints:         strings.Fields(hints),
			CorrelationID: uuid.NewString(),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read batch input: %w", err)
	}
	return requests, nil
}

func newBatchItemView(index int, outcome resolution.Outcome) batchItemView {
	view := batchItemView{
		Index:           index,
		CatalogueNumber: outcome.Request.Identifier.String(),
		Hints:           outcome.Request.Hints,
		CorrelationID:   outcome.Request.CorrelationID,
		Selection:       outcome.Result.Selection,
		Record:          outcome.Result.Record,
	}
	switch {
	case outcome.Err != nil:
		view.Status = statusFailed
		view.FailureKind = outcome.Kind
		view.Error = outcome.Err.Error()
	case outcome.Result.Resolved():
		view.Status = statusResolved
	default:
		view.Status = statusUnresolved
		view.Reason = outcome.Result.Reason
	}
	return view
}

func printBatch(cmd *cobra.Command, views []batchItemView) {
	out := cmd.OutOrStdout()
	rows := make([][]string, 0, len(views))
	for _, v := range views {
		title, year, discogsID := "", "", ""
		if v.Record != nil {
			title = v.Record.Title
			year = yearLabel(v.Record.Year)
		}
		if v.Selection != nil && v.Record != nil {
			discogsID = strconv.FormatInt(v.Selection.ExternalID, 10)
		}
		detail := title
		switch v.Status {
		case statusUnresolved:
			detail = string(v.Reason)
		case statusFailed:
			detail = v.FailureKind
		}
		rows = append(rows, []string{strconv.Itoa(v.Index), v.CatalogueNumber, v.Status, detail, year, discogsID})
	}

	if isTerminal(out) {
		headers := []string{"#", "Catalogue No", "Status", "Title / Reason", "Year", "Discogs ID"}
		aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignRight}
		fmt.Fprintln(out, renderTable(headers, rows, aligns))
		return
	}
	for _, row := range rows {
		fmt.Fprintln(out, strings.Join(row, "\t"))
	}
}
