package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"matchlock/internal/logging"
	"matchlock/internal/match"
	"matchlock/internal/textutil"
)

// ScanResult reports what a library scan changed.
type ScanResult struct {
	Added   int
	Updated int
	Skipped int
}

// ScanRoots imports library folders into the catalog. Each top-level
// directory under a root becomes one entry keyed by its absolute path;
// rescanning refreshes parsed titles and years without duplicating rows.
func (s *Store) ScanRoots(ctx context.Context, roots []string, logger *slog.Logger) (ScanResult, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	var result ScanResult
	for _, root := range roots {
		dirEntries, err := os.ReadDir(root)
		if err != nil {
			return result, fmt.Errorf("read library root %q: %w", root, err)
		}
		for _, dirEntry := range dirEntries {
			if err := ctx.Err(); err != nil {
				return result, err
			}
			if !dirEntry.IsDir() || strings.HasPrefix(dirEntry.Name(), ".") {
				result.Skipped++
				continue
			}
			entry := entryFromFolder(root, dirEntry.Name())
			if entry.ParsedTitle == "" {
				logger.Warn("skipping folder with no parseable title",
					logging.String("folder", dirEntry.Name()))
				result.Skipped++
				continue
			}
			created, err := s.UpsertByFolderPath(ctx, entry)
			if err != nil {
				return result, err
			}
			if created {
				result.Added++
				logger.Info("catalog entry added",
					logging.String("folder_path", entry.FolderPath),
					logging.String("parsed_title", entry.ParsedTitle),
					logging.Int("parsed_year", entry.ParsedYear))
			} else {
				result.Updated++
			}
		}
	}
	return result, nil
}

func entryFromFolder(root, name string) match.Entry {
	title, year := textutil.ParseFolderName(name)
	// Release-style names (dots or underscores, no spaces) get cleaned and
	// title-cased; human-readable folder names keep their casing.
	if !strings.Contains(title, " ") && strings.ContainsAny(title, "._") {
		title = textutil.CleanTitle(title)
	}
	return match.Entry{
		FolderPath:  filepath.Join(root, name),
		ParsedTitle: strings.TrimSpace(title),
		ParsedYear:  year,
	}
}
