package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/udhekryqi/udhekryqi-backend/internal/auth"
)

type contextKey string

const claimsKey contextKey = "claims"

// RequireAuth validates the Authorization: Bearer header and injects the
// token claims into the request context. 401 on anything missing or invalid.
func RequireAuth(jwtSecret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				http.Error(w, "Missing or malformed Authorization header", http.StatusUnauthorized)
				return
			}

			claims, err := auth.ParseToken(strings.TrimPrefix(header, "Bearer "), jwtSecret)
			if err != nil {
				http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects non-admin subjects. Must run after RequireAuth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok || !auth.IsAdmin(claims.Role) {
			http.Error(w, "Admin access required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ClaimsFromContext returns the claims injected by RequireAuth.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok
}

// WithClaims returns a context carrying the given claims. Used by tests to
// exercise handlers without running the middleware.
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}
