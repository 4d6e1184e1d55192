package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"matchlock/internal/catalog"
	"matchlock/internal/config"
	"matchlock/internal/events"
	"matchlock/internal/logging"
	"matchlock/internal/match"
	"matchlock/internal/runner"
)

func newBatchCommand(ctx *commandContext) *cobra.Command {
	batchCmd := &cobra.Command{
		Use:   "batch",
		Short: "Run matching batches",
	}

	batchCmd.AddCommand(newBatchRunCommand(ctx))

	return batchCmd
}

func newBatchRunCommand(ctx *commandContext) *cobra.Command {
	var (
		batchID string
		workers int
		quiet   bool
	)

	cmd := &cobra.Command{
		Use:   "run <requests.json>",
		Short: "Resolve a JSON file of references against the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			requests, err := loadRequests(args[0])
			if err != nil {
				return err
			}

			return ctx.withStore(func(cfg *config.Config, store *catalog.Store) error {
				release, err := store.AcquireBatchLock()
				if err != nil {
					return err
				}
				defer release()

				logger, err := logging.NewFromConfig(cfg)
				if err != nil {
					return fmt.Errorf("setup logging: %w", err)
				}

				hub := events.NewHub(cfg.Matching.EventBuffer,
					events.WithGraceWindow(time.Duration(cfg.Matching.EventGraceSeconds)*time.Second))

				out := cmd.OutOrStdout()
				if !quiet {
					unsubscribe := hub.Subscribe(func(evt events.Event) {
						printEvent(out, evt)
					})
					defer unsubscribe()
				}

				run := runner.New(store, store, hub, logger,
					runner.WithWorkers(resolveWorkers(workers, cfg)),
					runner.WithEngineOptions(match.WithFuzzyTuning(cfg.Matching.FuzzyThreshold, cfg.Matching.FuzzyMargin)),
				)

				summary, err := run.Run(cmd.Context(), batchID, requests)
				if err != nil {
					return err
				}

				fmt.Fprint(out, renderTable(
					[]string{"Batch", "Total", "Ambiguous"},
					[][]string{{summary.BatchID, strconv.Itoa(summary.Total), strconv.Itoa(summary.Ambiguous)}},
					[]columnAlignment{alignLeft, alignRight, alignRight},
				))
				fmt.Fprintln(out)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&batchID, "batch-id", "", "Batch identifier (generated when empty)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Worker pool width (defaults to configuration)")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Suppress per-result progress output")

	return cmd
}

func loadRequests(path string) ([]match.Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read requests file: %w", err)
	}
	var requests []match.Request
	if err := json.Unmarshal(data, &requests); err != nil {
		return nil, fmt.Errorf("parse requests file %s: %w", path, err)
	}
	if len(requests) == 0 {
		return nil, fmt.Errorf("requests file %s contains no requests", path)
	}
	return requests, nil
}

func resolveWorkers(flagValue int, cfg *config.Config) int {
	if flagValue > 0 {
		return flagValue
	}
	return cfg.Matching.Workers
}

func printEvent(out io.Writer, evt events.Event) {
	switch payload := evt.Payload.(type) {
	case runner.ResultPayload:
		line := fmt.Sprintf("%s  %s  %s  %.2f", payload.Result.RequestID, payload.Result.Method, ambiguityNote(payload.Result), payload.Result.Confidence)
		if !payload.Recorded {
			line += "  (not recorded)"
		}
		fmt.Fprintln(out, line)
	case runner.CancelledPayload:
		fmt.Fprintf(out, "batch %s cancelled after %d results: %s\n", payload.BatchID, payload.Total, payload.Reason)
	case runner.Summary:
		fmt.Fprintf(out, "batch %s complete: %d results, %d ambiguous\n", payload.BatchID, payload.Total, payload.Ambiguous)
	}
}

func ambiguityNote(result match.Result) string {
	if result.Ambiguous {
		return "ambiguous"
	}
	return "ok"
}
