package web

import (
	"context"
	"net/http"

	"github.com/JonMunkholm/vacancystats/internal/core"
)

// WithRequestMetadata adds the client IP and upload file name to context
// so analysis run logs can be traced back to the request.
func WithRequestMetadata(ctx context.Context, r *http.Request, fileName string) context.Context {
	ctx = core.ContextWithClientIP(ctx, clientIP(r)) // RemoteAddr already processed by TrustedRealIP
	if fileName != "" {
		ctx = core.ContextWithSource(ctx, fileName)
	}
	return ctx
}
