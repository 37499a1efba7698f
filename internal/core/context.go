package core

import (
	"context"
	"log/slog"

	"github.com/JonMunkholm/vacancystats/internal/logging"
)

type contextKey string

const (
	ctxKeySource   contextKey = "run_source"
	ctxKeyClientIP contextKey = "run_client_ip"
)

// ContextWithSource records where the analyzed input came from
// (a file path or an uploaded file name) for run logging.
func ContextWithSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, ctxKeySource, source)
}

// ContextWithClientIP records the address of the client that triggered a run.
func ContextWithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, ctxKeyClientIP, ip)
}

// SourceFromContext returns the input source, or "" if none was set.
func SourceFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeySource).(string); ok {
		return v
	}
	return ""
}

// ClientIPFromContext returns the client address, or "" if none was set.
func ClientIPFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyClientIP).(string); ok {
		return v
	}
	return ""
}

// runLogger returns a request-scoped logger tagged with the run ID and any
// source or client recorded in ctx.
func runLogger(ctx context.Context, runID string) *slog.Logger {
	args := []any{"run_id", runID}
	if src := SourceFromContext(ctx); src != "" {
		args = append(args, "source", src)
	}
	if ip := ClientIPFromContext(ctx); ip != "" {
		args = append(args, "client_ip", ip)
	}
	return logging.WithFields(ctx, args...)
}
