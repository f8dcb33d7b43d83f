package middleware

import (
	"context"
	"net/http"
	"strings"

	"vendora/pkg/auth"
	"vendora/pkg/response"
)

// claimsKey is the unexported context key for authenticated token claims.
type claimsKey struct{}

// Auth requires a valid session token in the Authorization header
// ("Bearer <token>" or the bare token). The verified claims are stored in
// the request context for handlers via ClaimsFromCtx.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

		if token == "" {
			response.Unauthorized(w, "Access denied. No token provided")
			return
		}

		claims, err := auth.Verify(auth.PurposeSession, token)
		if err != nil {
			response.Unauthorized(w, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFromCtx returns the claims stored by Auth, or nil outside an
// authenticated request.
func ClaimsFromCtx(ctx context.Context) *auth.Claims {
	if c, ok := ctx.Value(claimsKey{}).(*auth.Claims); ok {
		return c
	}
	return nil
}
