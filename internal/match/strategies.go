package match

import (
	"matchlock/internal/textutil"
)

// outcome is the tagged return of one strategy attempt: either a committed
// result or a decline that lets the chain fall through.
type outcome struct {
	committed bool
	result    Result
}

func commit(result Result) outcome {
	return outcome{committed: true, result: result}
}

func decline() outcome {
	return outcome{}
}

// Strategy confidence levels. A unique path or external-identifier hit is
// certain; title-based matches degrade as the evidence weakens.
const (
	confidenceExact          = 1.0
	confidenceTitleYear      = 0.9
	confidenceTitleOnly      = 0.7
	confidenceYearMismatch   = 0.4
	confidenceAmbiguousCrowd = 0.3
)

// matchByPath resolves by exact, case-sensitive folder path comparison.
// Multiple entries sharing one path is a catalog anomaly reported as
// ambiguous rather than silently picking one.
func (e *Engine) matchByPath(req Request) outcome {
	if req.FolderPathHint == "" {
		return decline()
	}
	var hits []Entry
	for _, entry := range e.entries {
		if entry.FolderPath != "" && entry.FolderPath == req.FolderPathHint {
			hits = append(hits, entry)
		}
	}
	switch len(hits) {
	case 0:
		return decline()
	case 1:
		return commit(Result{
			RequestID:  req.ID,
			Match:      candidateFor(hits[0]),
			Confidence: confidenceExact,
			Method:     MethodPath,
		})
	default:
		return commit(Result{
			RequestID:       req.ID,
			Confidence:      confidenceAmbiguousCrowd,
			Method:          MethodPath,
			Ambiguous:       true,
			AmbiguousReason: AmbiguityDuplicatePath,
		})
	}
}

// matchByExternalID resolves by exact external identifier. Anything other
// than exactly one hit declines.
func (e *Engine) matchByExternalID(req Request) outcome {
	if req.ExternalID == "" {
		return decline()
	}
	var hit Entry
	count := 0
	for _, entry := range e.entries {
		if entry.ExternalID != "" && entry.ExternalID == req.ExternalID {
			hit = entry
			count++
		}
	}
	if count != 1 {
		return decline()
	}
	return commit(Result{
		RequestID:  req.ID,
		Match:      candidateFor(hit),
		Confidence: confidenceExact,
		Method:     MethodExternalID,
	})
}

// matchByTitleYear requires a normalized title match plus an exact year match.
func (e *Engine) matchByTitleYear(req Request) outcome {
	if req.Year == 0 {
		return decline()
	}
	normalized := textutil.NormalizeTitle(req.Title)
	if normalized == "" {
		return decline()
	}
	var hits []Entry
	for _, entry := range e.entries {
		if entry.ParsedYear != req.Year {
			continue
		}
		if textutil.NormalizeTitle(entry.ParsedTitle) == normalized {
			hits = append(hits, entry)
		}
	}
	switch len(hits) {
	case 0:
		return decline()
	case 1:
		return commit(Result{
			RequestID:  req.ID,
			Match:      candidateFor(hits[0]),
			Confidence: confidenceTitleYear,
			Method:     MethodTitleYear,
		})
	default:
		return commit(Result{
			RequestID:       req.ID,
			Confidence:      confidenceAmbiguousCrowd,
			Method:          MethodTitleYear,
			Ambiguous:       true,
			AmbiguousReason: AmbiguityTitleYearClash,
		})
	}
}

// matchByTitle resolves by normalized title alone. With several same-titled
// entries the request's year (if any) distinguishes "the declared year fits
// nothing" from "nothing to choose between".
func (e *Engine) matchByTitle(req Request) outcome {
	normalized := textutil.NormalizeTitle(req.Title)
	if normalized == "" {
		return decline()
	}
	var hits []Entry
	for _, entry := range e.entries {
		if entry.ParsedTitle == "" {
			continue
		}
		if textutil.NormalizeTitle(entry.ParsedTitle) == normalized {
			hits = append(hits, entry)
		}
	}
	switch {
	case len(hits) == 0:
		return decline()
	case len(hits) == 1:
		return commit(Result{
			RequestID:  req.ID,
			Match:      candidateFor(hits[0]),
			Confidence: confidenceTitleOnly,
			Method:     MethodTitleOnly,
		})
	case req.Year != 0:
		// Reaching here with a year means the title+year strategy already
		// found no entry carrying that year.
		return commit(Result{
			RequestID:       req.ID,
			Confidence:      confidenceYearMismatch,
			Method:          MethodTitleOnly,
			Ambiguous:       true,
			AmbiguousReason: AmbiguityYearMismatch,
		})
	default:
		return commit(Result{
			RequestID:       req.ID,
			Confidence:      confidenceAmbiguousCrowd,
			Method:          MethodTitleOnly,
			Ambiguous:       true,
			AmbiguousReason: AmbiguityTitleFuzzy,
		})
	}
}

// matchByFuzzy is the last resort: edit-distance similarity over every
// parsed title, committing only when one candidate clears the threshold and
// beats the runner-up by a clear margin.
func (e *Engine) matchByFuzzy(req Request) outcome {
	var (
		best       Entry
		bestScore  float64
		second     float64
		aboveCount int
	)
	for _, entry := range e.entries {
		if entry.ParsedTitle == "" {
			continue
		}
		score := textutil.Similarity(req.Title, entry.ParsedTitle)
		if score >= e.fuzzyThreshold {
			aboveCount++
		}
		if score > bestScore {
			second = bestScore
			best = entry
			bestScore = score
		} else if score > second {
			second = score
		}
	}
	if aboveCount == 0 {
		return decline()
	}
	if aboveCount == 1 && bestScore-second >= e.fuzzyMargin {
		return commit(Result{
			RequestID:  req.ID,
			Match:      candidateFor(best),
			Confidence: bestScore,
			Method:     MethodFuzzy,
		})
	}
	// Tie or narrow margin: report the top candidate as a best guess.
	return commit(Result{
		RequestID:       req.ID,
		Match:           candidateFor(best),
		Confidence:      bestScore,
		Method:          MethodFuzzy,
		Ambiguous:       true,
		AmbiguousReason: AmbiguityTitleFuzzy,
	})
}
