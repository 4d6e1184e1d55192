package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"matchlock/internal/match"
)

const outcomeColumns = "id, batch_id, request_id, entry_id, confidence, method, ambiguous, ambiguous_reason, request_title, request_year, created_at"

// RecordOutcome persists one resolved request. Called concurrently by batch
// workers; SQLite serializes the writes.
func (s *Store) RecordOutcome(ctx context.Context, outcome Outcome) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO match_outcomes (
            batch_id, request_id, entry_id, confidence, method,
            ambiguous, ambiguous_reason, request_title, request_year, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		outcome.BatchID,
		outcome.RequestID,
		nullableInt64(outcome.EntryID),
		outcome.Confidence,
		string(outcome.Method),
		boolToInt(outcome.Ambiguous),
		nullableString(string(outcome.AmbiguousReason)),
		outcome.RequestTitle,
		nullableInt64(int64(outcome.RequestYear)),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record outcome: %w", err)
	}
	return nil
}

// OutcomesByBatch returns a batch's persisted outcomes ordered by insertion.
func (s *Store) OutcomesByBatch(ctx context.Context, batchID string) ([]Outcome, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+outcomeColumns+` FROM match_outcomes WHERE batch_id = ? ORDER BY id`,
		batchID,
	)
	if err != nil {
		return nil, fmt.Errorf("query outcomes: %w", err)
	}
	defer rows.Close()

	var outcomes []Outcome
	for rows.Next() {
		outcome, err := scanOutcome(rows)
		if err != nil {
			return nil, err
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes, rows.Err()
}

// ListBatches summarizes every batch with persisted outcomes, newest first.
func (s *Store) ListBatches(ctx context.Context) ([]BatchSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT batch_id, COUNT(1), SUM(ambiguous), MIN(created_at)
         FROM match_outcomes GROUP BY batch_id ORDER BY MIN(created_at) DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query batches: %w", err)
	}
	defer rows.Close()

	var summaries []BatchSummary
	for rows.Next() {
		var (
			summary   BatchSummary
			ambiguous sql.NullInt64
			started   string
		)
		if err := rows.Scan(&summary.BatchID, &summary.Total, &ambiguous, &started); err != nil {
			return nil, fmt.Errorf("scan batch summary: %w", err)
		}
		summary.Ambiguous = int(int64OrZero(ambiguous))
		if ts, parseErr := time.Parse(time.RFC3339Nano, started); parseErr == nil {
			summary.StartedAt = ts
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

func scanOutcome(row rowScanner) (Outcome, error) {
	var (
		outcome   Outcome
		entryID   sql.NullInt64
		ambiguous int
		reason    sql.NullString
		year      sql.NullInt64
		created   string
	)
	err := row.Scan(
		&outcome.ID,
		&outcome.BatchID,
		&outcome.RequestID,
		&entryID,
		&outcome.Confidence,
		&outcome.Method,
		&ambiguous,
		&reason,
		&outcome.RequestTitle,
		&year,
		&created,
	)
	if err != nil {
		return Outcome{}, fmt.Errorf("scan outcome: %w", err)
	}
	outcome.EntryID = int64OrZero(entryID)
	outcome.Ambiguous = ambiguous != 0
	outcome.AmbiguousReason = match.AmbiguityReason(stringOrEmpty(reason))
	outcome.RequestYear = int(int64OrZero(year))
	if ts, parseErr := time.Parse(time.RFC3339Nano, created); parseErr == nil {
		outcome.CreatedAt = ts
	}
	return outcome, nil
}
