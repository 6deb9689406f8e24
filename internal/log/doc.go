// Package log provides logging utilities for scriptmap.
// Its RedactHandler wraps any slog.Handler and masks credential-bearing
// query parameter values in logged URLs, so API keys embedded in script
// tags never leak into log output.
package log
