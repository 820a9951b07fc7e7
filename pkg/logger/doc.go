// Package logger provides structured logging with configurable log levels.
// It wraps log/slog, choosing a JSON handler in prod and a text handler
// elsewhere, and writes to any io.Writer so logs can be kept off a terminal
// that is busy drawing the dashboard.
package logger
