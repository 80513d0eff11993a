package middleware

import (
	"context"
	"net/http"
	"strings"

	"medisync/internal/session"
	"medisync/pkg/response"
)

type contextKey string

const (
	SessionKey  contextKey = "session"
	RawTokenKey contextKey = "raw_token"
)

type AuthMiddleware struct {
	resolver *session.Resolver
}

func NewAuthMiddleware(resolver *session.Resolver) *AuthMiddleware {
	return &AuthMiddleware{resolver: resolver}
}

// Authenticate resolves the bearer token into a session. Every resolution
// failure looks the same to the caller: 401, no detail about why.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		sess := m.resolver.Resolve(r.Context(), parts[1])
		if sess == nil {
			response.Unauthorized(w, "Invalid or expired session")
			return
		}

		ctx := context.WithValue(r.Context(), SessionKey, sess)
		// Keep the raw token around so upstream calls can forward the
		// caller's identity.
		ctx = context.WithValue(ctx, RawTokenKey, parts[1])
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSessionFromContext extracts the resolved session from context
func GetSessionFromContext(ctx context.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(SessionKey).(*session.Session)
	return sess, ok
}

// GetRawTokenFromContext extracts the caller's bearer token from context
func GetRawTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(RawTokenKey).(string)
	return token, ok
}
