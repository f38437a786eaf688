// Package logging builds the slog loggers used across clipforge.
//
// It provides a console handler for interactive use, a JSON handler for
// machine-readable logs, multi-destination output (stdout plus log file), and
// small attribute helpers so call sites stay terse.
package logging
