package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"platter/internal/catno"
)

type extractView struct {
	Found      bool   `json:"found"`
	Identifier string `json:"identifier,omitempty"`
	Rule       string `json:"rule,omitempty"`
	Offset     int    `json:"offset,omitempty"`
}

func newExtractCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "extract [file|-]",
		Short: "Extract a catalogue number from recognized text",
		Long: `Extract the most plausible catalogue number from noisy text such as OCR
output of a record sleeve or label. Text is read from the given file, or from
stdin when no file or "-" is given. No network access is needed.

Examples:
  platter extract label.txt
  echo "Stereo MLPH I622 Made in Sweden" | platter extract`,
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			m, ok := catno.ExtractMatch(text)
			if asJSON {
				view := extractView{Found: ok}
				if ok {
					view.Identifier = m.Identifier.String()
					view.Rule = m.Rule
					view.Offset = m.Offset
				}
				return writeJSON(cmd, view)
			}

			out := cmd.OutOrStdout()
			if !ok {
				fmt.Fprintln(out, "No catalogue number recognized")
				return nil
			}
			fmt.Fprintf(out, "%s\t(rule %s)\n", m.Identifier, m.Rule)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}
