package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"matchlock/internal/catalog"
	"matchlock/internal/config"
	"matchlock/internal/logging"
	"matchlock/internal/match"
	"matchlock/internal/textutil"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage catalog entries",
	}

	catalogCmd.AddCommand(newCatalogListCommand(ctx))
	catalogCmd.AddCommand(newCatalogAddCommand(ctx))
	catalogCmd.AddCommand(newCatalogScanCommand(ctx))
	catalogCmd.AddCommand(newCatalogRemoveCommand(ctx))

	return catalogCmd
}

func newCatalogListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List catalog entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *catalog.Store) error {
				entries, err := store.LoadSnapshot(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintln(out, "Catalog is empty")
					return nil
				}
				rows := make([][]string, 0, len(entries))
				for _, entry := range entries {
					year := ""
					if entry.ParsedYear != 0 {
						year = strconv.Itoa(entry.ParsedYear)
					}
					rows = append(rows, []string{
						strconv.FormatInt(entry.ID, 10),
						entry.ParsedTitle,
						year,
						entry.ExternalID,
						entry.FolderPath,
					})
				}
				fmt.Fprint(out, renderTable(
					[]string{"ID", "Title", "Year", "External ID", "Folder"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft, alignLeft},
				))
				fmt.Fprintln(out)
				return nil
			})
		},
	}
}

func newCatalogAddCommand(ctx *commandContext) *cobra.Command {
	var (
		title      string
		year       int
		externalID string
	)

	cmd := &cobra.Command{
		Use:   "add <folder-path>",
		Short: "Add a catalog entry for a library folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *catalog.Store) error {
				folder := strings.TrimSpace(args[0])
				if folder == "" {
					return fmt.Errorf("folder path is required")
				}

				entry := match.Entry{
					FolderPath:  folder,
					ParsedTitle: strings.TrimSpace(title),
					ParsedYear:  year,
					ExternalID:  strings.TrimSpace(externalID),
				}
				if entry.ParsedTitle == "" {
					parsedTitle, parsedYear := textutil.ParseFolderName(filepath.Base(folder))
					entry.ParsedTitle = textutil.CleanTitle(parsedTitle)
					if entry.ParsedYear == 0 {
						entry.ParsedYear = parsedYear
					}
				}

				created, err := store.AddEntry(cmd.Context(), entry)
				if err != nil {
					return fmt.Errorf("add entry: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added entry %d: %s\n", created.ID, created.ParsedTitle)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Title override (derived from the folder name when empty)")
	cmd.Flags().IntVar(&year, "year", 0, "Release year override")
	cmd.Flags().StringVar(&externalID, "external-id", "", "External catalog identifier")

	return cmd
}

func newCatalogScanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "scan [root...]",
		Short: "Scan library roots and upsert entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *catalog.Store) error {
				roots := args
				if len(roots) == 0 {
					roots = cfg.Library.Roots
				}
				if len(roots) == 0 {
					return fmt.Errorf("no library roots configured; pass roots as arguments or set library.roots")
				}

				logger, err := logging.NewFromConfig(cfg)
				if err != nil {
					return fmt.Errorf("setup logging: %w", err)
				}

				result, err := store.ScanRoots(cmd.Context(), roots, logger)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Scan complete: %d added, %d updated, %d skipped\n",
					result.Added, result.Updated, result.Skipped)
				return nil
			})
		},
	}
}

func newCatalogRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <entry-id>",
		Short: "Remove a catalog entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(strings.TrimSpace(args[0]), 10, 64)
			if err != nil {
				return fmt.Errorf("invalid entry id %q", args[0])
			}
			return ctx.withStore(func(cfg *config.Config, store *catalog.Store) error {
				removed, err := store.RemoveEntry(cmd.Context(), id)
				if err != nil {
					return err
				}
				if !removed {
					return fmt.Errorf("entry %d not found", id)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed entry %d\n", id)
				return nil
			})
		},
	}
}

