package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/vasapolrittideah/social-api/shared/response"
)

// VerifyFunc turns a bearer token into claims.
type VerifyFunc[C any] func(ctx context.Context, token string) (*C, error)

type claimsKey[C any] struct{}

// ClaimsFromContext returns the claims stored by NewJWTMiddleware.
func ClaimsFromContext[C any](ctx context.Context) (*C, bool) {
	claims, ok := ctx.Value(claimsKey[C]{}).(*C)
	return claims, ok
}

// WithClaims stores claims in ctx.
func WithClaims[C any](ctx context.Context, claims *C) context.Context {
	return context.WithValue(ctx, claimsKey[C]{}, claims)
}

// NewJWTMiddleware rejects requests without a valid bearer token and stores
// the verified claims in the request context. missing is rendered when no
// token is present; verification errors are rendered as returned by verify.
func NewJWTMiddleware[C any](verify VerifyFunc[C], missing error) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := BearerToken(r)
			if !ok {
				response.Error(w, r, missing)
				return
			}

			claims, err := verify(r.Context(), token)
			if err != nil {
				response.Error(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// BearerToken extracts the token of an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
