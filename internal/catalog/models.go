package catalog

import (
	"database/sql"
	"time"

	"matchlock/internal/match"
)

// Outcome is one persisted match result, annotated with the batch it ran in
// and the request's title/year for auditability.
type Outcome struct {
	ID              int64
	BatchID         string
	RequestID       string
	EntryID         int64 // 0 when the result carried no match
	Confidence      float64
	Method          match.Method
	Ambiguous       bool
	AmbiguousReason match.AmbiguityReason
	RequestTitle    string
	RequestYear     int
	CreatedAt       time.Time
}

// OutcomeFromResult builds the persistable record for one resolved request.
func OutcomeFromResult(batchID string, req match.Request, result match.Result) Outcome {
	outcome := Outcome{
		BatchID:         batchID,
		RequestID:       result.RequestID,
		Confidence:      result.Confidence,
		Method:          result.Method,
		Ambiguous:       result.Ambiguous,
		AmbiguousReason: result.AmbiguousReason,
		RequestTitle:    req.Title,
		RequestYear:     req.Year,
	}
	if result.Match != nil {
		outcome.EntryID = result.Match.EntryID
	}
	return outcome
}

// BatchSummary aggregates the persisted outcomes of one batch.
type BatchSummary struct {
	BatchID   string
	Total     int
	Ambiguous int
	StartedAt time.Time
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableInt64(value int64) any {
	if value == 0 {
		return nil
	}
	return value
}

func stringOrEmpty(value sql.NullString) string {
	if value.Valid {
		return value.String
	}
	return ""
}

func int64OrZero(value sql.NullInt64) int64 {
	if value.Valid {
		return value.Int64
	}
	return 0
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
