// Package runner drives batches of match requests through the
// disambiguation engine with a bounded worker pool.
//
// One run loads a catalog snapshot, constructs one engine for the whole
// batch, and feeds every request into a channel the workers drain. Each
// resolved request is persisted and published to the event hub as it
// completes; the run finishes with a terminal complete or cancelled event.
// Cancellation is cooperative: workers stop taking new requests once the
// context is done, but never interrupt an item mid-flight.
package runner
