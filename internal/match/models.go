package match

// Method identifies which strategy produced a result.
type Method string

const (
	MethodPath       Method = "path"
	MethodExternalID Method = "externalId"
	MethodTitleYear  Method = "titleYear"
	MethodTitleOnly  Method = "titleOnly"
	MethodFuzzy      Method = "fuzzy"
	MethodNone       Method = "none"
)

// AmbiguityReason enumerates why a strategy found candidates but could not
// commit to one.
type AmbiguityReason string

const (
	// AmbiguityDuplicatePath flags a data-integrity anomaly: several catalog
	// entries share an identical folder path.
	AmbiguityDuplicatePath AmbiguityReason = "duplicate folder path"
	// AmbiguityTitleYearClash means year and title both match multiple entries.
	AmbiguityTitleYearClash AmbiguityReason = "year and title both match multiple entries"
	// AmbiguityYearMismatch means the title matched but the declared year
	// matched none of the title-matching entries.
	AmbiguityYearMismatch AmbiguityReason = "year mismatch"
	// AmbiguityTitleFuzzy means too many similarly titled entries to pick one.
	AmbiguityTitleFuzzy AmbiguityReason = "title fuzzy"
)

// Entry is one read-only snapshot row from the catalog. Zero values stand in
// for absent fields: an entry with no parsed year carries ParsedYear 0.
type Entry struct {
	ID          int64
	FolderPath  string
	ParsedTitle string
	ParsedYear  int
	ExternalID  string
}

// Request is a caller's loosely identified media reference. Title is
// required; everything else is an optional hint.
type Request struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Year           int    `json:"year,omitempty"`
	ExternalID     string `json:"external_id,omitempty"`
	FolderPathHint string `json:"folder_path_hint,omitempty"`
}

// Candidate identifies the catalog entry a result committed to.
type Candidate struct {
	EntryID     int64  `json:"entry_id"`
	FolderPath  string `json:"folder_path,omitempty"`
	ParsedTitle string `json:"parsed_title,omitempty"`
	ParsedYear  int    `json:"parsed_year,omitempty"`
}

// Result is the outcome of resolving one request. Match is nil unless the
// strategy committed to (or best-guessed) a specific entry.
type Result struct {
	RequestID       string          `json:"request_id"`
	Match           *Candidate      `json:"match,omitempty"`
	Confidence      float64         `json:"confidence"`
	Method          Method          `json:"method"`
	Ambiguous       bool            `json:"ambiguous"`
	AmbiguousReason AmbiguityReason `json:"ambiguous_reason,omitempty"`
}

func candidateFor(entry Entry) *Candidate {
	return &Candidate{
		EntryID:     entry.ID,
		FolderPath:  entry.FolderPath,
		ParsedTitle: entry.ParsedTitle,
		ParsedYear:  entry.ParsedYear,
	}
}

func noneResult(requestID string) Result {
	return Result{RequestID: requestID, Method: MethodNone}
}
