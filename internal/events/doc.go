// Package events provides an in-process broadcast hub for batch progress.
//
// A Hub buffers recent events and replays them, in publish order, to
// subscribers that register late, so an observer connecting after a fast
// batch has finished still sees the full event history. Hubs are constructed
// and passed explicitly; there are no package-level singletons, so tests can
// instantiate isolated hubs.
package events
