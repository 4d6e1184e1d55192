// Package logging constructs the slog loggers used across matchlock and
// provides small attribute helpers so call sites stay terse.
package logging
