package web

import (
	"net/http"

	"github.com/JonMunkholm/modeest/internal/core"
	"github.com/JonMunkholm/modeest/internal/web/middleware"
)

// requestMetadata attaches the client IP and User-Agent for audit logging.
// It runs after TrustedRealIP so the IP is already resolved.
func requestMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := core.ContextWithRequestMeta(r.Context(), core.RequestMeta{
			IPAddress: middleware.ClientIP(r),
			UserAgent: r.UserAgent(),
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
