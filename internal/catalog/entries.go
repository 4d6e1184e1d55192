package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"matchlock/internal/match"
)

const entryColumns = "id, folder_path, parsed_title, parsed_year, external_id"

// AddEntry inserts a catalog entry and returns it with its assigned id.
func (s *Store) AddEntry(ctx context.Context, entry match.Entry) (match.Entry, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO catalog_entries (folder_path, parsed_title, parsed_year, external_id, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?)`,
		nullableString(entry.FolderPath),
		nullableString(entry.ParsedTitle),
		nullableInt64(int64(entry.ParsedYear)),
		nullableString(entry.ExternalID),
		now,
		now,
	)
	if err != nil {
		return match.Entry{}, fmt.Errorf("insert entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return match.Entry{}, fmt.Errorf("last insert id: %w", err)
	}
	entry.ID = id
	return entry, nil
}

// UpsertByFolderPath inserts an entry, or refreshes the parsed title/year of
// the existing entry at the same folder path. Reports whether a new row was
// created.
func (s *Store) UpsertByFolderPath(ctx context.Context, entry match.Entry) (bool, error) {
	if entry.FolderPath == "" {
		return false, errors.New("entry folder path is required")
	}
	var existingID int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM catalog_entries WHERE folder_path = ? ORDER BY id LIMIT 1`,
		entry.FolderPath,
	).Scan(&existingID)
	if errors.Is(err, sql.ErrNoRows) {
		_, insertErr := s.AddEntry(ctx, entry)
		return true, insertErr
	}
	if err != nil {
		return false, fmt.Errorf("find entry by folder path: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE catalog_entries SET parsed_title = ?, parsed_year = ?, updated_at = ? WHERE id = ?`,
		nullableString(entry.ParsedTitle),
		nullableInt64(int64(entry.ParsedYear)),
		time.Now().UTC().Format(time.RFC3339Nano),
		existingID,
	)
	if err != nil {
		return false, fmt.Errorf("update entry: %w", err)
	}
	return false, nil
}

// GetEntry fetches one catalog entry by id. Returns nil when absent.
func (s *Store) GetEntry(ctx context.Context, id int64) (*match.Entry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM catalog_entries WHERE id = ?`, id)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return &entry, nil
}

// RemoveEntry deletes a catalog entry. Reports whether a row was removed.
func (s *Store) RemoveEntry(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM catalog_entries WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("remove entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// LoadSnapshot reads every catalog entry in one consistent query. The batch
// runner calls this once per batch; the snapshot is never re-queried
// mid-batch.
func (s *Store) LoadSnapshot(ctx context.Context) ([]match.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+entryColumns+` FROM catalog_entries ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	defer rows.Close()

	var entries []match.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (match.Entry, error) {
	var (
		entry      match.Entry
		folderPath sql.NullString
		title      sql.NullString
		year       sql.NullInt64
		externalID sql.NullString
	)
	if err := row.Scan(&entry.ID, &folderPath, &title, &year, &externalID); err != nil {
		return match.Entry{}, err
	}
	entry.FolderPath = stringOrEmpty(folderPath)
	entry.ParsedTitle = stringOrEmpty(title)
	entry.ParsedYear = int(int64OrZero(year))
	entry.ExternalID = stringOrEmpty(externalID)
	return entry, nil
}
