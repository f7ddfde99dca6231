package handler

import (
	"net/http"

	"github.com/vasapolrittideah/social-api/services/social-service/internal/payload"
	"github.com/vasapolrittideah/social-api/services/social-service/internal/usecase"
	"github.com/vasapolrittideah/social-api/shared/response"
	v "github.com/vasapolrittideah/social-api/shared/validation"
)

func (h *httpHandler) Register(w http.ResponseWriter, r *http.Request) {
	req, _ := v.Data[payload.RegisterRequest](r.Context())

	user, err := h.auth.Register(r.Context(), usecase.RegisterParams{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		DateOfBirth: req.DateOfBirth,
	})
	if err != nil {
		response.Error(w, r, err)
		return
	}

	tokens, err := h.auth.Login(r.Context(), user)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	h.logger.Info().Str("user_id", user.ID.Hex()).Msg("user registered")
	response.Created(w, r, "success.register", tokens)
}

func (h *httpHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, _ := v.Data[payload.LoginRequest](r.Context())

	user, err := h.auth.VerifyCredentials(r.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	tokens, err := h.auth.Login(r.Context(), user)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.OK(w, r, "success.login", tokens)
}

func (h *httpHandler) Logout(w http.ResponseWriter, r *http.Request) {
	req, _ := v.Data[payload.RefreshTokenRequest](r.Context())

	if err := h.auth.Logout(r.Context(), req.RefreshToken); err != nil {
		response.Error(w, r, err)
		return
	}

	response.OK(w, r, "success.logout", nil)
}

func (h *httpHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	req, _ := v.Data[payload.RefreshTokenRequest](r.Context())

	tokens, err := h.auth.RefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.OK(w, r, "success.refresh_token", tokens)
}

func (h *httpHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	req, _ := v.Data[payload.VerifyEmailRequest](r.Context())

	claims, err := h.auth.VerifyEmailToken(r.Context(), req.EmailVerifyToken)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	tokens, err := h.auth.VerifyEmail(r.Context(), claims.UserID)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.OK(w, r, "success.verify_email", tokens)
}

func (h *httpHandler) ResendVerifyEmail(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.ResendVerifyEmail(r.Context(), claimsFrom(r).UserID); err != nil {
		response.Error(w, r, err)
		return
	}

	response.OK(w, r, "success.resend_verify_email", nil)
}

func (h *httpHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	req, _ := v.Data[payload.ForgotPasswordRequest](r.Context())

	if err := h.auth.ForgotPassword(r.Context(), req.Email); err != nil {
		response.Error(w, r, err)
		return
	}

	response.OK(w, r, "success.forgot_password", nil)
}

func (h *httpHandler) VerifyForgotPassword(w http.ResponseWriter, r *http.Request) {
	req, _ := v.Data[payload.VerifyForgotPasswordRequest](r.Context())

	if _, err := h.auth.VerifyForgotPassword(r.Context(), req.ForgotPasswordToken); err != nil {
		response.Error(w, r, err)
		return
	}

	response.OK(w, r, "success.verify_forgot_password", nil)
}

func (h *httpHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	req, _ := v.Data[payload.ResetPasswordRequest](r.Context())

	err := h.auth.ResetPassword(r.Context(), usecase.ResetPasswordParams{
		Token:    req.ForgotPasswordToken,
		Password: req.Password,
	})
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.OK(w, r, "success.reset_password", nil)
}

func (h *httpHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	req, _ := v.Data[payload.ChangePasswordRequest](r.Context())

	err := h.auth.ChangePassword(r.Context(), usecase.ChangePasswordParams{
		UserID:      claimsFrom(r).UserID,
		OldPassword: req.OldPassword,
		Password:    req.Password,
	})
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.OK(w, r, "success.change_password", nil)
}

func (h *httpHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	req, _ := v.Data[payload.GoogleLoginRequest](r.Context())

	tokens, created, err := h.auth.GoogleLogin(r.Context(), req.IDToken)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.OK(w, r, "success.oauth", payload.GoogleLoginResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		NewUser:      created,
	})
}
