// Package match implements the disambiguation engine that resolves loosely
// identified media references against a catalog snapshot.
//
// Resolution runs a fixed-priority chain of pure strategies: folder path,
// external identifier, title plus year, title only, then fuzzy similarity.
// The first strategy to produce a result wins; a strategy that cannot commit
// declines and the chain falls through. "Found but ambiguous" is a committed
// result, structurally distinct from a decline.
//
// The engine holds an immutable snapshot for its lifetime and is safe for
// concurrent use.
package match
