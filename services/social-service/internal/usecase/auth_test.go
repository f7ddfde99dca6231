package usecase

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vasapolrittideah/social-api/services/social-service/internal/model"
	"github.com/vasapolrittideah/social-api/services/social-service/pkg/types"
	"github.com/vasapolrittideah/social-api/shared/provider"
)

func tokenFromLink(t *testing.T, body string) string {
	t.Helper()
	u, err := url.Parse(body)
	require.NoError(t, err)
	token := u.Query().Get("token")
	require.NotEmpty(t, token)
	return token
}

func TestAuthUsecase_Register(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.register(t, "alice@example.com")
	assert.Equal(t, model.Unverified, user.Verify)
	assert.NotEmpty(t, user.EmailVerifyToken)
	assert.NotEmpty(t, user.Username)
	assert.NotEqual(t, "Secret123!", user.PasswordHash)

	mail := env.mail.last(t)
	assert.Equal(t, []string{"alice@example.com"}, mail.To)
	assert.Equal(t, user.EmailVerifyToken, tokenFromLink(t, mail.Body))
	assert.True(t, strings.HasPrefix(mail.Body, "http://localhost:3000/verify-email?"))

	_, err := env.auth.Register(ctx, RegisterParams{Email: "alice@example.com", Password: "Other123!"})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestAuthUsecase_RegisterSurvivesMailFailure(t *testing.T) {
	env := newTestEnv(t)
	env.mail.err = errors.New("smtp down")

	user := env.register(t, "bob@example.com")
	assert.NotEmpty(t, user.ID.Hex())
}

func TestAuthUsecase_VerifyCredentialsAndLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, "alice@example.com")

	_, err := env.auth.VerifyCredentials(ctx, "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.auth.VerifyCredentials(ctx, "nobody@example.com", "Secret123!")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	user, err := env.auth.VerifyCredentials(ctx, "alice@example.com", "Secret123!")
	require.NoError(t, err)

	tokens, err := env.auth.Login(ctx, user)
	require.NoError(t, err)

	claims, err := env.tokens.Verify(ctx, types.AccessToken, tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, int(model.Unverified), *claims.Verify)

	_, err = env.tokens.Verify(ctx, types.RefreshToken, tokens.RefreshToken)
	require.NoError(t, err)
}

func TestAuthUsecase_LoginBanned(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "alice@example.com")
	user.Verify = model.Banned

	_, err := env.auth.Login(context.Background(), user)
	assert.ErrorIs(t, err, ErrUserBanned)
}

func TestAuthUsecase_LogoutIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.register(t, "alice@example.com")

	tokens, err := env.auth.Login(ctx, user)
	require.NoError(t, err)

	require.NoError(t, env.auth.Logout(ctx, tokens.RefreshToken))
	require.NoError(t, env.auth.Logout(ctx, tokens.RefreshToken))

	_, err = env.auth.RefreshToken(ctx, tokens.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)

	err = env.auth.Logout(ctx, "garbage")
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestAuthUsecase_RefreshToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.verified(t, "alice@example.com")

	first, err := env.auth.Login(ctx, user)
	require.NoError(t, err)

	second, err := env.auth.RefreshToken(ctx, first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	claims, err := env.tokens.Verify(ctx, types.AccessToken, second.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int(model.Verified), *claims.Verify)

	_, err = env.auth.RefreshToken(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestAuthUsecase_VerifyEmailTwice(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.register(t, "alice@example.com")

	claims, err := env.auth.VerifyEmailToken(ctx, user.EmailVerifyToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.UserID)

	tokens, err := env.auth.VerifyEmail(ctx, user.ID.Hex())
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)

	_, err = env.auth.VerifyEmail(ctx, user.ID.Hex())
	assert.ErrorIs(t, err, ErrEmailAlreadyVerified)

	_, err = env.auth.VerifyEmailToken(ctx, user.EmailVerifyToken)
	assert.ErrorIs(t, err, ErrEmailAlreadyVerified)

	got, err := env.repos.Users.GetUser(ctx, user.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, model.Verified, got.Verify)
	assert.Empty(t, got.EmailVerifyToken)
}

func TestAuthUsecase_ResendVerifyEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.register(t, "alice@example.com")

	// Tokens issued within the same second differ only by their id.
	require.NoError(t, env.auth.ResendVerifyEmail(ctx, user.ID.Hex()))
	resent := tokenFromLink(t, env.mail.last(t).Body)
	assert.NotEqual(t, user.EmailVerifyToken, resent)

	_, err := env.auth.VerifyEmailToken(ctx, user.EmailVerifyToken)
	assert.ErrorIs(t, err, ErrEmailVerifyTokenInvalid)

	_, err = env.auth.VerifyEmailToken(ctx, resent)
	require.NoError(t, err)

	_, err = env.auth.VerifyEmail(ctx, user.ID.Hex())
	require.NoError(t, err)

	err = env.auth.ResendVerifyEmail(ctx, user.ID.Hex())
	assert.ErrorIs(t, err, ErrEmailAlreadyVerified)
}

func TestAuthUsecase_ForgotAndResetPassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.verified(t, "alice@example.com")

	session, err := env.auth.Login(ctx, user)
	require.NoError(t, err)

	require.NoError(t, env.auth.ForgotPassword(ctx, "nobody@example.com"))
	require.NoError(t, env.auth.ForgotPassword(ctx, "alice@example.com"))

	mail := env.mail.last(t)
	assert.True(t, strings.HasPrefix(mail.Body, "http://localhost:3000/reset-password?"))
	token := tokenFromLink(t, mail.Body)

	claims, err := env.auth.VerifyForgotPassword(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.UserID)

	require.NoError(t, env.auth.ResetPassword(ctx, ResetPasswordParams{Token: token, Password: "NewSecret1!"}))

	_, err = env.auth.VerifyCredentials(ctx, "alice@example.com", "Secret123!")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = env.auth.VerifyCredentials(ctx, "alice@example.com", "NewSecret1!")
	require.NoError(t, err)

	// The token is single use and existing sessions are gone.
	err = env.auth.ResetPassword(ctx, ResetPasswordParams{Token: token, Password: "Another1!"})
	assert.ErrorIs(t, err, ErrForgotPasswordTokenInvalid)

	_, err = env.auth.RefreshToken(ctx, session.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestAuthUsecase_ResetPasswordExpiredToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.verified(t, "alice@example.com")

	token, err := env.tokens.Issue(ctx, types.ForgotPasswordToken,
		TokenPayload{UserID: user.ID.Hex(), Verify: model.Verified},
		ExpiresAt(time.Now().Add(-time.Hour)),
	)
	require.NoError(t, err)

	err = env.auth.ResetPassword(ctx, ResetPasswordParams{Token: token, Password: "NewSecret1!"})
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestAuthUsecase_ChangePassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.verified(t, "alice@example.com")

	err := env.auth.ChangePassword(ctx, ChangePasswordParams{
		UserID:      user.ID.Hex(),
		OldPassword: "wrong",
		Password:    "NewSecret1!",
	})
	assert.ErrorIs(t, err, ErrOldPasswordIncorrect)

	require.NoError(t, env.auth.ChangePassword(ctx, ChangePasswordParams{
		UserID:      user.ID.Hex(),
		OldPassword: "Secret123!",
		Password:    "NewSecret1!",
	}))

	_, err = env.auth.VerifyCredentials(ctx, "alice@example.com", "NewSecret1!")
	require.NoError(t, err)
}

func TestAuthUsecase_GoogleLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.google.err = provider.ErrInvalidGoogleAudience
	_, _, err := env.auth.GoogleLogin(ctx, "id-token")
	assert.ErrorIs(t, err, ErrGoogleTokenInvalid)

	env.google.err = nil
	env.google.account = &provider.GoogleAccount{Subject: "g-1", Email: "carol@example.com"}
	_, _, err = env.auth.GoogleLogin(ctx, "id-token")
	assert.ErrorIs(t, err, ErrGoogleEmailUnverified)

	env.google.account.EmailVerified = true
	tokens, created, err := env.auth.GoogleLogin(ctx, "id-token")
	require.NoError(t, err)
	assert.True(t, created)

	claims, err := env.tokens.Verify(ctx, types.AccessToken, tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int(model.Verified), *claims.Verify)

	_, created, err = env.auth.GoogleLogin(ctx, "id-token")
	require.NoError(t, err)
	assert.False(t, created)

	user, err := env.repos.Users.GetUserByEmail(ctx, "carol@example.com")
	require.NoError(t, err)
	assert.Equal(t, claims.UserID, user.ID.Hex())
}

func TestAuthUsecase_GoogleLoginDisabled(t *testing.T) {
	env := newTestEnv(t)
	a := env.auth.(*authUsecase)
	a.google = nil

	_, _, err := a.GoogleLogin(context.Background(), "id-token")
	assert.ErrorIs(t, err, ErrOAuthDisabled)
}
