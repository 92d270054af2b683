// Package logging is the structured logger shared by the server and the CLI.
// Call sites depend on the Logger interface; SlogLogger backs it with log/slog.
package logging

import "context"

// Logger takes a message plus alternating keys and values:
//
//	logger.Warn(ctx, "image url not resolved", "ref", ref, "error", err)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a logger that adds args to every record.
	With(args ...any) Logger
}
