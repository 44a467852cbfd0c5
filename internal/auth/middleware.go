package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/osse101/gameinventory/internal/domain"
	"github.com/osse101/gameinventory/internal/logger"
)

type ctxKey string

const userInfoKey ctxKey = "userInfo"

// WithUserInfo returns a context carrying the caller's identity
func WithUserInfo(ctx context.Context, info domain.UserInfo) context.Context {
	return context.WithValue(ctx, userInfoKey, info)
}

// FromContext extracts the caller's identity from the context
func FromContext(ctx context.Context) (domain.UserInfo, bool) {
	info, ok := ctx.Value(userInfoKey).(domain.UserInfo)
	return info, ok
}

// Middleware authenticates requests with a bearer token and injects the
// decoded identity into the request context. Requests without a valid
// token are rejected with 401 before reaching any handler.
func Middleware(decoder *Decoder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := logger.FromContext(r.Context())

			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				log.Warn("Missing bearer token", "path", r.URL.Path)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			info, err := decoder.Decode(token)
			if err != nil {
				log.Warn("Token rejected", "path", r.URL.Path, "error", err)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserInfo(r.Context(), info)))
		})
	}
}
