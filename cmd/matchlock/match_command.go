package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"matchlock/internal/catalog"
	"matchlock/internal/config"
	"matchlock/internal/match"
)

func newMatchCommand(ctx *commandContext) *cobra.Command {
	var (
		year       int
		externalID string
		pathHint   string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "match <title>",
		Short: "Resolve a single reference against the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *catalog.Store) error {
				entries, err := store.LoadSnapshot(cmd.Context())
				if err != nil {
					return fmt.Errorf("load catalog: %w", err)
				}
				engine := match.NewEngine(entries, match.WithFuzzyTuning(cfg.Matching.FuzzyThreshold, cfg.Matching.FuzzyMargin))

				req := match.Request{
					ID:             "cli",
					Title:          strings.TrimSpace(args[0]),
					Year:           year,
					ExternalID:     strings.TrimSpace(externalID),
					FolderPathHint: strings.TrimSpace(pathHint),
				}
				result := engine.Resolve(req)

				out := cmd.OutOrStdout()
				if jsonOutput || !isTerminal(out) {
					enc := json.NewEncoder(out)
					enc.SetIndent("", "  ")
					return enc.Encode(result)
				}

				fmt.Fprint(out, renderTable(
					[]string{"Field", "Value"},
					buildResultRows(result),
					[]columnAlignment{alignLeft, alignLeft},
				))
				fmt.Fprintln(out)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Release year of the reference")
	cmd.Flags().StringVar(&externalID, "external-id", "", "External catalog identifier")
	cmd.Flags().StringVar(&pathHint, "path", "", "Folder path hint")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the result as JSON")

	return cmd
}

func buildResultRows(result match.Result) [][]string {
	rows := [][]string{
		{"Method", string(result.Method)},
		{"Confidence", strconv.FormatFloat(result.Confidence, 'f', 2, 64)},
		{"Ambiguous", yesNo(result.Ambiguous)},
	}
	if result.AmbiguousReason != "" {
		rows = append(rows, []string{"Reason", string(result.AmbiguousReason)})
	}
	if result.Match != nil {
		rows = append(rows,
			[]string{"Entry ID", strconv.FormatInt(result.Match.EntryID, 10)},
			[]string{"Title", result.Match.ParsedTitle},
		)
		if result.Match.ParsedYear != 0 {
			rows = append(rows, []string{"Year", strconv.Itoa(result.Match.ParsedYear)})
		}
		rows = append(rows, []string{"Folder", result.Match.FolderPath})
	}
	return rows
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
