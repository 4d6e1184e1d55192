package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"matchlock/internal/catalog"
	"matchlock/internal/config"
)

func newResultsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "results [batch-id]",
		Short: "Show recorded batches, or the outcomes of one batch",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *catalog.Store) error {
				if len(args) == 0 {
					return listBatches(cmd, store)
				}
				return listOutcomes(cmd, store, strings.TrimSpace(args[0]))
			})
		},
	}
}

func listBatches(cmd *cobra.Command, store *catalog.Store) error {
	batches, err := store.ListBatches(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(batches) == 0 {
		fmt.Fprintln(out, "No batches recorded")
		return nil
	}
	rows := make([][]string, 0, len(batches))
	for _, batch := range batches {
		rows = append(rows, []string{
			batch.BatchID,
			strconv.Itoa(batch.Total),
			strconv.Itoa(batch.Ambiguous),
			batch.StartedAt.Format("2006-01-02 15:04:05"),
		})
	}
	fmt.Fprint(out, renderTable(
		[]string{"Batch", "Total", "Ambiguous", "Started"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignLeft},
	))
	fmt.Fprintln(out)
	return nil
}

func listOutcomes(cmd *cobra.Command, store *catalog.Store, batchID string) error {
	outcomes, err := store.OutcomesByBatch(cmd.Context(), batchID)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(outcomes) == 0 {
		fmt.Fprintf(out, "No outcomes recorded for batch %s\n", batchID)
		return nil
	}
	rows := make([][]string, 0, len(outcomes))
	for _, outcome := range outcomes {
		entryID := ""
		if outcome.EntryID != 0 {
			entryID = strconv.FormatInt(outcome.EntryID, 10)
		}
		note := ""
		if outcome.Ambiguous {
			note = string(outcome.AmbiguousReason)
		}
		rows = append(rows, []string{
			outcome.RequestID,
			outcome.RequestTitle,
			string(outcome.Method),
			strconv.FormatFloat(outcome.Confidence, 'f', 2, 64),
			entryID,
			note,
		})
	}
	fmt.Fprint(out, renderTable(
		[]string{"Request", "Title", "Method", "Confidence", "Entry", "Note"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
	))
	fmt.Fprintln(out)
	return nil
}
