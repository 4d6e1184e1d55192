// Package textutil provides text processing utilities for title comparison.
//
// The primary use cases are:
//   - Normalizing titles for comparison (case folding, punctuation stripping)
//   - Computing edit-distance similarity between normalized titles
//   - Parsing display titles and release years out of library folder names
//
// Normalization is lossy on purpose: two titles that normalize to the same
// string are considered equal by the exact-title matching strategies.
package textutil
