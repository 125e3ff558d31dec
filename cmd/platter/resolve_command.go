package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"platter/internal/catno"
	"platter/internal/resolution"
	"platter/internal/services"
)

func newResolveCommand(ctx *commandContext) *cobra.Command {
	var (
		hints    []string
		fromText bool
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "resolve <catalogue-number> | --text [file|-]",
		Short: "Resolve a catalogue number to a single Discogs record",
		Long: `Resolve a catalogue number to exactly one Discogs release and print its
title, year, genres, styles and tracklist. When several different records
share the catalogue number, --hint words narrow the candidates to releases
whose title contains every hint.

Examples:
  platter resolve "MLPH 1622"
  platter resolve "MLPH 1622" --hint evig --json
  platter resolve --text label.txt`,
		Args: func(cmd *cobra.Command, args []string) error {
			if fromText {
				return cobra.MaximumNArgs(1)(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver, err := ctx.newResolver()
			if err != nil {
				return err
			}
			runCtx := services.WithRequestID(cmd.Context(), uuid.NewString())

			var res resolution.Result
			if fromText {
				text, err := readInput(cmd, args)
				if err != nil {
					return err
				}
				res, err = resolver.ResolveText(runCtx, text, hints...)
				if err != nil {
					return describeFailure(err)
				}
			} else {
				res, err = resolver.Lookup(runCtx, catno.Normalize(args[0]), hints...)
				if err != nil {
					return describeFailure(err)
				}
			}

			if asJSON {
				return writeJSON(cmd, res)
			}
			out := cmd.OutOrStdout()
			if !res.Resolved() {
				if res.Identifier.IsZero() {
					fmt.Fprintf(out, "Not resolved: %s\n", reasonLabel(res.Reason))
				} else {
					fmt.Fprintf(out, "%s not resolved: %s\n", res.Identifier, reasonLabel(res.Reason))
				}
				return nil
			}
			printRecord(out, res)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&hints, "hint", nil, "Word that must appear in the release title (repeatable)")
	cmd.Flags().BoolVar(&fromText, "text", false, "Extract the catalogue number from text read from a file or stdin")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func describeFailure(err error) error {
	switch services.Classify(err) {
	case services.KindLookupUnavailable:
		return fmt.Errorf("discogs lookup failed: %w", err)
	case services.KindMalformedMetadata:
		return fmt.Errorf("discogs returned unusable release data: %w", err)
	case services.KindCanceled:
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("resolution timed out: %w", err)
		}
		return err
	default:
		return err
	}
}
