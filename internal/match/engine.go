package match

import "strings"

// Fuzzy-strategy tuning defaults. Tunable, not contractual: callers with
// unusually noisy catalogs can loosen them via options.
const (
	DefaultFuzzyThreshold = 0.8
	DefaultFuzzyMargin    = 0.1
)

// Engine resolves match requests against an immutable catalog snapshot.
// Construct one per batch; Resolve is pure and safe for concurrent use.
type Engine struct {
	entries        []Entry
	fuzzyThreshold float64
	fuzzyMargin    float64
}

// Option configures optional Engine behavior.
type Option func(*Engine)

// WithFuzzyTuning overrides the fuzzy similarity threshold and tie margin.
// Values outside their valid range are ignored.
func WithFuzzyTuning(threshold, margin float64) Option {
	return func(e *Engine) {
		if threshold > 0 && threshold <= 1 {
			e.fuzzyThreshold = threshold
		}
		if margin >= 0 && margin <= 1 {
			e.fuzzyMargin = margin
		}
	}
}

// NewEngine constructs an engine over a copy of the provided snapshot.
func NewEngine(entries []Entry, opts ...Option) *Engine {
	snapshot := make([]Entry, len(entries))
	copy(snapshot, entries)
	e := &Engine{
		entries:        snapshot,
		fuzzyThreshold: DefaultFuzzyThreshold,
		fuzzyMargin:    DefaultFuzzyMargin,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Size reports the number of snapshot entries.
func (e *Engine) Size() int {
	return len(e.entries)
}

// Resolve runs the strategy chain and returns the first committed result.
// A request with an empty title is malformed and yields the "none" result
// rather than an error, so one bad item cannot abort a batch. When every
// strategy declines, the result is "none": no information, explicitly
// distinct from ambiguous.
func (e *Engine) Resolve(req Request) Result {
	if strings.TrimSpace(req.Title) == "" {
		return noneResult(req.ID)
	}
	strategies := []func(Request) outcome{
		e.matchByPath,
		e.matchByExternalID,
		e.matchByTitleYear,
		e.matchByTitle,
		e.matchByFuzzy,
	}
	for _, strategy := range strategies {
		if out := strategy(req); out.committed {
			return out.result
		}
	}
	return noneResult(req.ID)
}

// ResolveBatch resolves requests sequentially in input order. Concurrency
// across requests belongs to the queue runner, not the engine.
func (e *Engine) ResolveBatch(reqs []Request) []Result {
	results := make([]Result, len(reqs))
	for i, req := range reqs {
		results[i] = e.Resolve(req)
	}
	return results
}
