package handler

import (
	"net/http"

	"github.com/vasapolrittideah/social-api/services/social-service/internal/model"
	"github.com/vasapolrittideah/social-api/services/social-service/internal/usecase"
	"github.com/vasapolrittideah/social-api/services/social-service/pkg/types"
	"github.com/vasapolrittideah/social-api/shared/middleware"
	"github.com/vasapolrittideah/social-api/shared/response"
)

// requireVerified rejects callers whose access token does not carry the
// verified status. It must run after the access token middleware.
func requireVerified(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFrom(r)
		if claims == nil {
			response.Error(w, r, usecase.ErrAccessTokenRequired)
			return
		}

		var status model.VerifyStatus
		if claims.Verify != nil {
			status = model.VerifyStatus(*claims.Verify)
		}

		switch status {
		case model.Verified:
			next.ServeHTTP(w, r)
		case model.Banned:
			response.Error(w, r, usecase.ErrUserBanned)
		default:
			response.Error(w, r, usecase.ErrUserNotVerified)
		}
	})
}

func claimsFrom(r *http.Request) *types.JWTClaims {
	claims, _ := middleware.ClaimsFromContext[types.JWTClaims](r.Context())
	return claims
}
