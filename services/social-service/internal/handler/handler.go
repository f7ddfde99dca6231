// Package handler exposes the social service over HTTP.
package handler

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/social-api/services/social-service/internal/config"
	"github.com/vasapolrittideah/social-api/services/social-service/internal/payload"
	"github.com/vasapolrittideah/social-api/services/social-service/internal/usecase"
	"github.com/vasapolrittideah/social-api/services/social-service/pkg/types"
	"github.com/vasapolrittideah/social-api/shared/apperror"
	"github.com/vasapolrittideah/social-api/shared/i18n"
	"github.com/vasapolrittideah/social-api/shared/middleware"
	"github.com/vasapolrittideah/social-api/shared/response"
	v "github.com/vasapolrittideah/social-api/shared/validation"
)

// Dependencies are the collaborators of the HTTP layer.
type Dependencies struct {
	Config    *config.Config
	Logger    *zerolog.Logger
	Bundle    *i18n.Bundle
	Validator *v.Engine
	Tokens    usecase.TokenUsecase
	Auth      usecase.AuthUsecase
	Users     usecase.UserUsecase
	Follow    usecase.FollowUsecase
	Media     usecase.MediaUsecase
}

type httpHandler struct {
	tokens usecase.TokenUsecase
	auth   usecase.AuthUsecase
	users  usecase.UserUsecase
	follow usecase.FollowUsecase
	media  usecase.MediaUsecase
	logger *zerolog.Logger
}

// NewRouter builds the complete HTTP handler: middleware stack, validation
// rules and every route mounted under APP_PREFIX.
func NewRouter(d Dependencies) http.Handler {
	h := &httpHandler{
		tokens: d.Tokens,
		auth:   d.Auth,
		users:  d.Users,
		follow: d.Follow,
		media:  d.Media,
		logger: d.Logger,
	}

	d.Validator.RegisterRule("unique_username", d.Users.UsernameAvailable)

	app := d.Config.App
	r := chi.NewRouter()
	r.Use(
		chimw.RequestID,
		chimw.RealIP,
		middleware.RequestLogger(d.Logger),
		middleware.Locale(d.Bundle),
		response.Recoverer,
		cors.Handler(cors.Options{
			AllowedOrigins:   app.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Accept-Language", "Authorization", "Content-Type"},
			ExposedHeaders:   []string{"X-Request-Id"},
			AllowCredentials: !slices.Contains(app.CORSOrigins, "*"),
			MaxAge:           300,
		}),
		httprate.Limit(
			app.RateLimitMax,
			app.RateLimitWindow,
			httprate.WithKeyFuncs(httprate.KeyByRealIP),
			httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
				response.Error(w, r, apperror.New(apperror.RateLimited))
			}),
		),
	)
	r.NotFound(response.NotFound)
	r.MethodNotAllowed(response.MethodNotAllowed)

	routes := func(r chi.Router) { h.routes(r, d.Validator) }
	if prefix := strings.TrimRight(app.Prefix, "/"); prefix != "" {
		r.Route(prefix, routes)
	} else {
		routes(r)
	}

	return r
}

func (h *httpHandler) routes(r chi.Router, e *v.Engine) {
	auth := middleware.NewJWTMiddleware(h.verifyAccessToken, usecase.ErrAccessTokenRequired)

	r.Get("/health", h.Health)

	r.With(v.Body[payload.RegisterRequest](e)).Post("/register", h.Register)
	r.With(v.Body[payload.LoginRequest](e)).Post("/login", h.Login)
	r.With(v.Body[payload.RefreshTokenRequest](e)).Post("/logout", h.Logout)
	r.With(v.Body[payload.RefreshTokenRequest](e)).Post("/refresh-token", h.RefreshToken)
	r.With(v.Body[payload.VerifyEmailRequest](e)).Post("/verify-email", h.VerifyEmail)
	r.With(auth).Post("/resend-verify-email", h.ResendVerifyEmail)
	r.With(v.Body[payload.ForgotPasswordRequest](e)).Post("/forgot-password", h.ForgotPassword)
	r.With(v.Body[payload.VerifyForgotPasswordRequest](e)).Post("/verify-forgot-password", h.VerifyForgotPassword)
	r.With(v.Body[payload.ResetPasswordRequest](e)).Post("/reset-password", h.ResetPassword)
	r.With(v.Body[payload.GoogleLoginRequest](e)).Post("/oauth/google", h.GoogleLogin)

	r.With(v.Params[payload.ProfileParams](e)).Get("/users/{username}", h.GetProfile)
	r.With(v.Params[payload.UserIDParams](e), v.Query[payload.PageQuery](e)).Get("/followers/{user_id}", h.ListFollowers)
	r.With(v.Params[payload.UserIDParams](e), v.Query[payload.PageQuery](e)).Get("/following/{user_id}", h.ListFollowing)

	r.Group(func(r chi.Router) {
		r.Use(auth)
		r.Get("/me", h.GetMe)

		r.Group(func(r chi.Router) {
			r.Use(requireVerified)
			r.With(v.Body[payload.UpdateMeRequest](e)).Patch("/me", h.UpdateMe)
			r.With(v.Body[payload.ChangePasswordRequest](e)).Put("/change-password", h.ChangePassword)
			r.With(v.Body[payload.FollowRequest](e)).Post("/follow", h.Follow)
			r.With(v.Params[payload.UserIDParams](e)).Delete("/follow/{user_id}", h.Unfollow)
			r.With(v.Body[payload.UploadURLRequest](e)).Post("/medias/upload-url", h.CreateUploadURL)
		})
	})
}

func (h *httpHandler) verifyAccessToken(ctx context.Context, token string) (*types.JWTClaims, error) {
	return h.tokens.Verify(ctx, types.AccessToken, token)
}
